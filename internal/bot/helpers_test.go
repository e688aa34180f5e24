package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"guandan/internal/domain"
	"guandan/internal/domain/domaintest"
)

// ruleStub validates with the recognizer and can be told to fail enumeration.
type ruleStub struct {
	err      error
	panicMsg string
}

func (r *ruleStub) ValidatePlay(_ string, cards []domain.Card, current *domain.Pattern, _ domain.Session) Validation {
	p, err := domain.IdentifyPattern(cards)
	if err != nil {
		return Validation{Message: err.Error()}
	}
	if !p.CanBeat(current) {
		return Validation{Message: "does not beat the table"}
	}
	return Validation{Valid: true}
}

func (r *ruleStub) LegalPlays(hand []domain.Card, current *domain.Pattern, _ domain.Session) ([]*domain.Pattern, error) {
	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	if r.err != nil {
		return nil, r.err
	}
	return domain.LegalPatterns(hand, current), nil
}

func (r *ruleStub) CanBeat(p, current *domain.Pattern) bool {
	return p.CanBeat(current)
}

var errEnumeration = errors.New("recognizer offline")

// seatAgent puts a at position pos of s with the given hand, ready to act.
func seatAgent(t *testing.T, a *Agent, s *domaintest.Session, pos int, hand string) {
	t.Helper()
	require.NoError(t, a.SetPosition(pos))
	require.NoError(t, a.SetHandCards(domaintest.Cards(a.UserID, hand)))
	require.NoError(t, a.SetReady())
	a.StartSession()
	s.Players[pos] = a.Player
}

func newTable() *domaintest.Session {
	return domaintest.NewSession([]string{"ai-1", "b", "c", "d"},
		nil,
		domaintest.Cards("b", "3S 4S 5S 6S 7S 8S 9S 10S JS QS"),
		domaintest.Cards("c", "3H 4H 5H 6H 7H 8H 9H 10H JH QH"),
		domaintest.Cards("d", "3D 4D 5D 6D 7D 8D 9D 10D JD QD"),
	)
}

func option(score float64, pattern string) PlayOption {
	p := domaintest.Pattern(pattern)
	return PlayOption{
		Choice:     domain.ChoicePlay,
		Cards:      p.Cards,
		Pattern:    p,
		Score:      score,
		Validation: Validation{Valid: true},
	}
}
