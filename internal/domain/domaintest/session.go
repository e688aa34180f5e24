// Package domaintest provides an in-memory domain.Session for tests.
package domaintest

import (
	"fmt"
	"strings"

	"guandan/internal/domain"
)

// Session is a mutable domain.Session. Fields are read directly by the interface methods.
type Session struct {
	GamePhase domain.Phase
	Round     domain.Round
	Log       []domain.Play
	Score     map[string]int
	Players   []*domain.Player
	Current   *domain.Pattern
}

// NewSession seats the given ids at positions 0..n-1 in ready state, each
// holding the matching hand from hands (may be shorter than ids).
func NewSession(ids []string, hands ...[]domain.Card) *Session {
	s := &Session{
		GamePhase: domain.PhasePlaying,
		Round:     domain.Round{Number: 1},
		Score:     make(map[string]int),
	}
	for i, id := range ids {
		p := domain.NewPlayer(id, id, domain.PlayerAI)
		_ = p.SetPosition(i)
		if i < len(hands) {
			_ = p.SetHandCards(hands[i])
		}
		_ = p.SetReady()
		p.StartSession()
		s.Players = append(s.Players, p)
	}
	if len(ids) > 0 {
		s.Round.CurrentPlayerID = ids[0]
	}
	return s
}

func (s *Session) Phase() domain.Phase             { return s.GamePhase }
func (s *Session) CurrentRound() domain.Round      { return s.Round }
func (s *Session) Plays() []domain.Play            { return s.Log }
func (s *Session) Scores() map[string]int          { return s.Score }
func (s *Session) Room() domain.Room               { return s }
func (s *Session) CurrentPattern() *domain.Pattern { return s.Current }

// ActivePlayers implements domain.Room.
func (s *Session) ActivePlayers() []*domain.Player {
	var out []*domain.Player
	for _, p := range s.Players {
		if !p.IsEliminated {
			out = append(out, p)
		}
	}
	return out
}

// Record appends a play for id in the current round and, for plays, sets the table pattern.
func (s *Session) Record(id string, p *domain.Pattern) {
	pl := domain.Play{PlayerID: id, Choice: domain.ChoicePass, Round: s.Round.Number}
	if p != nil {
		pl.Choice = domain.ChoicePlay
		pl.Cards = p.Cards
		pl.Pattern = p
		s.Current = p
	}
	s.Log = append(s.Log, pl)
}

var suitLetters = map[byte]domain.Suit{'S': domain.SuitSpade, 'H': domain.SuitHeart, 'C': domain.SuitClub, 'D': domain.SuitDiamond}

// Cards parses a compact card list like "3S 10H SJ BJ". Identities are prefix+index.
func Cards(prefix, s string) []domain.Card {
	var out []domain.Card
	for i, tok := range strings.Fields(s) {
		id := fmt.Sprintf("%s%d", prefix, i)
		switch tok {
		case "SJ":
			out = append(out, domain.NewJoker(id, domain.JokerSmall))
			continue
		case "BJ":
			out = append(out, domain.NewJoker(id, domain.JokerBig))
			continue
		}
		out = append(out, domain.MustCard(id, suitLetters[tok[len(tok)-1]], tok[:len(tok)-1]))
	}
	return out
}

// Pattern identifies a compact card list and panics on failure.
func Pattern(s string) *domain.Pattern {
	p, err := domain.IdentifyPattern(Cards("p", s))
	if err != nil {
		panic(err)
	}
	return p
}
