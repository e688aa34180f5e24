package app

import (
	"fmt"

	"guandan/internal/bot"
	"guandan/internal/domain"
)

// Rules is the reference rule service. It validates with the pattern
// recognizer and enumerates with the pattern generator.
type Rules struct{}

func NewRules() *Rules {
	return &Rules{}
}

// ValidatePlay checks that cards form a pattern that beats current and, when
// session is given, that playerID holds every card.
func (r *Rules) ValidatePlay(playerID string, cards []domain.Card, current *domain.Pattern, session domain.Session) bot.Validation {
	if session != nil {
		p := domain.FindPlayer(session, playerID)
		if p == nil {
			return bot.Validation{Message: fmt.Sprintf("unknown player %s", playerID)}
		}
		hand, err := domain.NewCardCollection(p.HandCards()...)
		if err != nil {
			return bot.Validation{Message: err.Error()}
		}
		if !hand.ContainsAll(cards) {
			return bot.Validation{Message: domain.ErrCardNotInHand.Error()}
		}
	}

	pattern, err := domain.IdentifyPattern(cards)
	if err != nil {
		return bot.Validation{Message: err.Error()}
	}
	if !pattern.CanBeat(current) {
		return bot.Validation{Message: fmt.Sprintf("%s does not beat %s", pattern, current)}
	}
	return bot.Validation{Valid: true}
}

func (r *Rules) LegalPlays(hand []domain.Card, current *domain.Pattern, _ domain.Session) ([]*domain.Pattern, error) {
	return domain.LegalPatterns(hand, current), nil
}

func (r *Rules) CanBeat(p, current *domain.Pattern) bool {
	return p.CanBeat(current)
}

var _ bot.RuleService = (*Rules)(nil)
