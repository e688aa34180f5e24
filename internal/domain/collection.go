package domain

import (
	"fmt"
	"sort"
)

// CardCollection is an ordered container of cards owned by a single player.
// Identities are unique; value duplicates (two red fives) are allowed.
type CardCollection struct {
	cards []Card
}

// NewCardCollection copies cards into a new collection. It fails on duplicate identities.
func NewCardCollection(cards ...Card) (*CardCollection, error) {
	cc := &CardCollection{cards: make([]Card, 0, len(cards))}
	for _, c := range cards {
		if err := cc.Add(c); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

// Add appends a card. Cards with an empty ID are not identity-checked.
func (cc *CardCollection) Add(c Card) error {
	if c.ID != "" {
		for _, existing := range cc.cards {
			if existing.ID == c.ID {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, c.ID)
			}
		}
	}
	cc.cards = append(cc.cards, c)
	return nil
}

// Remove drops the card with the given identity.
func (cc *CardCollection) Remove(id string) error {
	for i, c := range cc.cards {
		if c.ID == id {
			cc.cards = append(cc.cards[:i], cc.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// RemoveValue drops the first value-equal card and reports whether one was found.
func (cc *CardCollection) RemoveValue(c Card) bool {
	for i, existing := range cc.cards {
		if existing.Equals(c) {
			cc.cards = append(cc.cards[:i], cc.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Contains tests membership by value-equality.
func (cc *CardCollection) Contains(c Card) bool {
	for _, existing := range cc.cards {
		if existing.Equals(c) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every card is present, counting duplicates.
func (cc *CardCollection) ContainsAll(cards []Card) bool {
	pool := append([]Card{}, cc.cards...)
	for _, c := range cards {
		found := false
		for i, p := range pool {
			if p.Equals(c) {
				pool = append(pool[:i], pool[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Sort orders the collection by value, keeping the relative order of equal cards.
func (cc *CardCollection) Sort(ascending bool) {
	sort.SliceStable(cc.cards, func(i, j int) bool {
		if ascending {
			return cc.cards[i].Compare(cc.cards[j]) < 0
		}
		return cc.cards[i].Compare(cc.cards[j]) > 0
	})
}

// GroupBySuit buckets the cards by suit, preserving collection order.
func (cc *CardCollection) GroupBySuit() map[Suit][]Card {
	groups := make(map[Suit][]Card)
	for _, c := range cc.cards {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

// Cards returns a copy of the cards.
func (cc *CardCollection) Cards() []Card {
	out := make([]Card, len(cc.cards))
	copy(out, cc.cards)
	return out
}

func (cc *CardCollection) Len() int {
	return len(cc.cards)
}

// Clear empties the collection.
func (cc *CardCollection) Clear() {
	cc.cards = cc.cards[:0]
}
