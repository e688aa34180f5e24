package app

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"guandan/internal/domain"
)

// Service contains the table use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying    = errors.New("table not in playing phase")
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrUnknownPlayer = errors.New("player not found")
	ErrIllegalPlay   = errors.New("illegal play")
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrTableFull     = errors.New("too many players for one table")
	ErrCannotPass    = errors.New("cannot pass when leading")
)

// StartGame seats players in the given order, deals two shuffled decks and
// opens round 1 with the first seat to lead.
func (s *Service) StartGame(players []*domain.Player) (*Table, []Event, error) {
	var seats []*domain.Player
	for _, p := range players {
		if p != nil {
			seats = append(seats, p)
		}
	}
	if len(seats) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}
	if len(seats) > domain.TableSize {
		return nil, nil, fmt.Errorf("%w: %d seats", ErrTableFull, len(seats))
	}

	deck := domain.ShuffleDeck(domain.NewDeck(DecksPerGame), s.rng)
	events := make([]Event, 0, len(seats)+1)

	for i, p := range seats {
		p.EndSession()
		if err := p.SetPosition(i); err != nil {
			return nil, nil, fmt.Errorf("seat %s: %w", p.UserID, err)
		}
		if err := p.SetHandCards(deck[i*HandSize : (i+1)*HandSize]); err != nil {
			return nil, nil, fmt.Errorf("deal %s: %w", p.UserID, err)
		}
		if err := p.SetReady(); err != nil {
			return nil, nil, fmt.Errorf("seat %s: %w", p.UserID, err)
		}
		p.StartSession()

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: p.UserID, Hand: p.HandCards()},
			Recipients: []string{p.UserID},
		})
	}

	t := &Table{
		phase:  domain.PhasePlaying,
		seats:  seats,
		round:  domain.Round{Number: 1, CurrentPlayerID: seats[0].UserID},
		scores: make(map[string]int, len(seats)),
	}
	for _, p := range seats {
		t.scores[p.UserID] = 0
	}

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Phase: t.phase, FirstTurnUserID: t.round.CurrentPlayerID},
	})
	return t, events, nil
}

// PlayCards applies a play by the seat whose turn it is and emits the resulting events.
func (s *Service) PlayCards(t *Table, actorUserID string, cards []domain.Card) ([]Event, error) {
	p, err := s.actor(t, actorUserID)
	if err != nil {
		return nil, err
	}

	pattern, err := domain.IdentifyPattern(cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIllegalPlay, err)
	}
	if !pattern.CanBeat(t.current) {
		return nil, fmt.Errorf("%w: %s does not beat %s", ErrIllegalPlay, pattern, t.current)
	}
	if err := p.PlayCards(cards); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIllegalPlay, err)
	}
	if err := p.EndTurn(); err != nil {
		return nil, err
	}

	t.plays = append(t.plays, domain.Play{
		PlayerID: actorUserID,
		Choice:   domain.ChoicePlay,
		Cards:    pattern.Cards,
		Pattern:  pattern,
		Round:    t.round.Number,
	})
	t.current = pattern
	t.leader = actorUserID
	t.passes = 0

	over := t.holders() <= 1
	next := ""
	if !over {
		next = t.nextHolder(actorUserID)
		t.round.CurrentPlayerID = next
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			UserID:         actorUserID,
			Cards:          pattern.Cards,
			Pattern:        pattern,
			NextTurnUserID: next,
		},
	}}
	if p.HandSize() == 0 {
		events = append(events, s.finish(t, p))
	}
	if over {
		events = append(events, s.endGame(t))
	}
	return events, nil
}

// PassTurn records a pass. When every other seat still holding cards has
// passed on the leader's play, the round resolves and the leader (or, if the
// leader went out, the leader's partner) opens the next round.
func (s *Service) PassTurn(t *Table, actorUserID string) ([]Event, error) {
	if _, err := s.actor(t, actorUserID); err != nil {
		return nil, err
	}
	if t.current == nil {
		return nil, ErrCannotPass
	}

	t.plays = append(t.plays, domain.Play{
		PlayerID: actorUserID,
		Choice:   domain.ChoicePass,
		Round:    t.round.Number,
	})
	t.passes++

	needed := t.holders()
	if holding(t.Player(t.leader)) {
		needed--
	}
	if t.passes < needed {
		t.round.CurrentPlayerID = t.nextHolder(actorUserID)
		return []Event{{
			Kind:    EventTurnPassed,
			Payload: TurnPassedPayload{UserID: actorUserID, NextTurnUserID: t.round.CurrentPlayerID},
		}}, nil
	}

	resolved := s.resolveRound(t)
	return []Event{
		{
			Kind:    EventTurnPassed,
			Payload: TurnPassedPayload{UserID: actorUserID, NextTurnUserID: t.round.CurrentPlayerID},
		},
		resolved,
	}, nil
}

func (s *Service) actor(t *Table, id string) (*domain.Player, error) {
	if t.phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	p := t.Player(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	if t.round.CurrentPlayerID != id {
		return nil, fmt.Errorf("%w: %s, waiting on %s", ErrNotYourTurn, id, t.round.CurrentPlayerID)
	}
	return p, nil
}

func (s *Service) resolveRound(t *Table) Event {
	winner := t.leader
	next := winner
	if !holding(t.Player(winner)) {
		if partner := t.partnerOf(winner); holding(partner) {
			next = partner.UserID
		} else {
			next = t.nextHolder(winner)
		}
	}

	ev := Event{
		Kind:    EventRoundResolved,
		Payload: RoundResolvedPayload{Round: t.round.Number, WinnerID: winner, NextLeaderID: next},
	}
	t.round = domain.Round{Number: t.round.Number + 1, CurrentPlayerID: next}
	t.current = nil
	t.leader = ""
	t.passes = 0
	return ev
}

func (s *Service) finish(t *Table, p *domain.Player) Event {
	t.finishOrder = append(t.finishOrder, p.UserID)
	place := len(t.finishOrder)
	if place <= len(finishPoints) {
		t.scores[p.UserID] += finishPoints[place-1]
	}
	return Event{Kind: EventPlayerOut, Payload: PlayerOutPayload{UserID: p.UserID, Place: place}}
}

func (s *Service) endGame(t *Table) Event {
	for _, p := range t.seats {
		if holding(p) {
			s.finish(t, p)
		}
	}
	t.phase = domain.PhaseEnded
	t.round.CurrentPlayerID = ""
	for _, p := range t.seats {
		p.EndSession()
	}
	return Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{FinishOrder: t.FinishOrder(), Scores: t.Scores()},
	}
}
