package domain

import (
	"sort"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// CardsPerDeck is a full 54-card deck including both jokers.
const CardsPerDeck = 54

// NewDeck returns decks*54 cards in ascending order, each with a fresh identity.
func NewDeck(decks int) []Card {
	deck := make([]Card, 0, decks*CardsPerDeck)
	for d := 0; d < decks; d++ {
		for _, r := range Ranks {
			for _, s := range Suits {
				deck = append(deck, MustCard(uuid.NewString(), s, r))
			}
		}
		deck = append(deck, NewJoker(uuid.NewString(), JokerSmall), NewJoker(uuid.NewString(), JokerBig))
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders a hand ascending by value, jokers last. The sort is stable.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Compare(cards[j]) < 0
	})
}
