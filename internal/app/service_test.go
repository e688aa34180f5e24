package app

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	"guandan/internal/domain"
	"guandan/internal/domain/domaintest"
)

func newPlayers(ids ...string) []*domain.Player {
	out := make([]*domain.Player, len(ids))
	for i, id := range ids {
		out[i] = domain.NewPlayer(id, id, domain.PlayerHuman)
	}
	return out
}

// startWithHands starts a game for u1..u4 and replaces the dealt hands.
func startWithHands(t *testing.T, hands ...string) (*Service, *Table) {
	t.Helper()
	svc := NewService(rand.New(rand.NewSource(7)))
	table, _, err := svc.StartGame(newPlayers("u1", "u2", "u3", "u4"))
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	for i, h := range hands {
		id := table.seats[i].UserID
		if err := table.seats[i].SetHandCards(domaintest.Cards(id, h)); err != nil {
			t.Fatalf("set hand %s: %v", id, err)
		}
	}
	return svc, table
}

func mustPlay(t *testing.T, svc *Service, table *Table, id, cards string) []Event {
	t.Helper()
	evs, err := svc.PlayCards(table, id, domaintest.Cards(id, cards))
	if err != nil {
		t.Fatalf("%s plays %s: %v", id, cards, err)
	}
	return evs
}

func mustPass(t *testing.T, svc *Service, table *Table, id string) []Event {
	t.Helper()
	evs, err := svc.PassTurn(table, id)
	if err != nil {
		t.Fatalf("%s passes: %v", id, err)
	}
	return evs
}

func findEvent(evs []Event, kind EventKind) (Event, bool) {
	for _, ev := range evs {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func TestStartGameDealsHands(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))

	table, evs, err := svc.StartGame(newPlayers("u1", "u2", "u3", "u4"))
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	if table.Phase() != domain.PhasePlaying {
		t.Fatalf("phase = %s, want playing", table.Phase())
	}
	if got := table.CurrentRound(); got.Number != 1 || got.CurrentPlayerID != "u1" {
		t.Fatalf("round = %+v, want round 1 led by u1", got)
	}

	handEvents := 0
	seen := make(map[string]bool)
	for _, ev := range evs {
		if ev.Kind != EventHandDealt {
			continue
		}
		handEvents++
		payload := ev.Payload.(HandDealtPayload)
		if len(payload.Hand) != HandSize {
			t.Fatalf("hand size = %d, want %d", len(payload.Hand), HandSize)
		}
		if len(ev.Recipients) != 1 || ev.Recipients[0] != payload.UserID {
			t.Fatalf("hand of %s sent to %v", payload.UserID, ev.Recipients)
		}
		for _, c := range payload.Hand {
			if seen[c.ID] {
				t.Fatalf("card %s dealt twice", c.ID)
			}
			seen[c.ID] = true
		}
	}
	if handEvents != 4 {
		t.Fatalf("hand events = %d, want 4", handEvents)
	}
	for i, p := range table.ActivePlayers() {
		if p.Position == nil || *p.Position != i {
			t.Fatalf("%s not seated at %d", p.UserID, i)
		}
	}
}

func TestStartGameNeedsFullTable(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	if _, _, err := svc.StartGame(newPlayers("u1", "u2", "u3")); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("err = %v, want ErrTooFewPlayers", err)
	}
	if _, _, err := svc.StartGame(newPlayers("u1", "u2", "u3", "u4", "u5")); !errors.Is(err, ErrTableFull) {
		t.Fatalf("err = %v, want ErrTableFull", err)
	}
}

func TestTurnOrderAndRoundResolution(t *testing.T) {
	svc, table := startWithHands(t, "3S 4S", "5S 6S", "7S 8S", "9S 10S")

	if _, err := svc.PassTurn(table, "u1"); !errors.Is(err, ErrCannotPass) {
		t.Fatalf("pass on lead err = %v, want ErrCannotPass", err)
	}
	if _, err := svc.PlayCards(table, "u3", domaintest.Cards("u3", "7S")); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out of turn err = %v, want ErrNotYourTurn", err)
	}
	if _, err := svc.PlayCards(table, "u1", domaintest.Cards("u1", "3S 4S")); !errors.Is(err, ErrIllegalPlay) {
		t.Fatalf("non-pattern err = %v, want ErrIllegalPlay", err)
	}
	if _, err := svc.PlayCards(table, "u1", domaintest.Cards("u1", "AS")); !errors.Is(err, domain.ErrCardNotInHand) {
		t.Fatalf("missing card err = %v, want ErrCardNotInHand", err)
	}
	if _, err := svc.PlayCards(table, "nobody", nil); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown player err = %v, want ErrUnknownPlayer", err)
	}

	mustPlay(t, svc, table, "u1", "3S")
	if table.CurrentRound().CurrentPlayerID != "u2" || table.Leader() != "u1" {
		t.Fatalf("after play: turn %s leader %s", table.CurrentRound().CurrentPlayerID, table.Leader())
	}
	if _, err := svc.PlayCards(table, "u2", domaintest.Cards("u2", "5S 6S")); !errors.Is(err, ErrIllegalPlay) {
		t.Fatalf("wrong family err = %v, want ErrIllegalPlay", err)
	}

	mustPass(t, svc, table, "u2")
	mustPass(t, svc, table, "u3")
	evs := mustPass(t, svc, table, "u4")

	ev, ok := findEvent(evs, EventRoundResolved)
	if !ok {
		t.Fatalf("expected round resolved after three passes, got %v", evs)
	}
	payload := ev.Payload.(RoundResolvedPayload)
	if payload.Round != 1 || payload.WinnerID != "u1" || payload.NextLeaderID != "u1" {
		t.Fatalf("resolved = %+v", payload)
	}
	if table.CurrentRound().Number != 2 || table.CurrentPattern() != nil {
		t.Fatalf("round not reset: %+v current %v", table.CurrentRound(), table.CurrentPattern())
	}
	if len(table.Plays()) != 4 {
		t.Fatalf("plays = %d, want 4", len(table.Plays()))
	}
}

func TestPartnerLeadsAfterLeaderGoesOut(t *testing.T) {
	svc, table := startWithHands(t, "3S", "5S 6S", "7S 8S", "9S 10S")

	evs := mustPlay(t, svc, table, "u1", "3S")
	out, ok := findEvent(evs, EventPlayerOut)
	if !ok || out.Payload.(PlayerOutPayload).Place != 1 {
		t.Fatalf("expected u1 out in first place, got %v", evs)
	}

	mustPass(t, svc, table, "u2")
	mustPass(t, svc, table, "u3")
	evs = mustPass(t, svc, table, "u4")

	ev, ok := findEvent(evs, EventRoundResolved)
	if !ok {
		t.Fatalf("expected round resolved, got %v", evs)
	}
	if next := ev.Payload.(RoundResolvedPayload).NextLeaderID; next != "u3" {
		t.Fatalf("next leader = %s, want partner u3", next)
	}
}

func TestGameEndsWhenOneSeatHoldsCards(t *testing.T) {
	svc, table := startWithHands(t, "3S", "4S", "5S", "6S 7S")

	mustPlay(t, svc, table, "u1", "3S")
	mustPlay(t, svc, table, "u2", "4S")
	evs := mustPlay(t, svc, table, "u3", "5S")

	ev, ok := findEvent(evs, EventGameEnded)
	if !ok {
		t.Fatalf("expected game ended event, got %v", evs)
	}
	if table.Phase() != domain.PhaseEnded {
		t.Fatalf("phase = %s, want ended", table.Phase())
	}

	want := []string{"u1", "u2", "u3", "u4"}
	got := ev.Payload.(GameEndedPayload).FinishOrder
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("finish order = %v, want %v", got, want)
		}
	}
	scores := table.Scores()
	if scores["u1"] != 3 || scores["u2"] != 2 || scores["u3"] != 1 || scores["u4"] != 0 {
		t.Fatalf("scores = %v", scores)
	}

	if _, err := svc.PassTurn(table, "u4"); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("err = %v, want ErrNotPlaying", err)
	}
}
