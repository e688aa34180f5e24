package domain

import (
	"fmt"
	"strings"
)

// Suit is the suit of a card. Jokers carry SuitJoker.
type Suit string

const (
	SuitSpade   Suit = "spade"
	SuitHeart   Suit = "heart"
	SuitClub    Suit = "club"
	SuitDiamond Suit = "diamond"
	SuitJoker   Suit = "joker"
)

// JokerType distinguishes the two jokers. Empty for ranked cards.
type JokerType string

const (
	JokerNone  JokerType = ""
	JokerSmall JokerType = "small"
	JokerBig   JokerType = "big"
)

// Card values. 2 ranks above the ace, jokers above every ranked card.
const (
	ValueJack       = 11
	ValueQueen      = 12
	ValueKing       = 13
	ValueAce        = 14
	ValueTwo        = 15
	ValueSmallJoker = 16
	ValueBigJoker   = 17
)

// Card is an immutable playing card. ID is only used for hand bookkeeping;
// game logic compares cards by suit and rank.
type Card struct {
	ID    string    `json:"id"`
	Suit  Suit      `json:"suit"`
	Rank  string    `json:"rank"`
	Value int       `json:"value"`
	Joker JokerType `json:"jokerType,omitempty"`
}

var rankValues = map[string]int{
	"3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": ValueJack, "Q": ValueQueen, "K": ValueKing, "A": ValueAce, "2": ValueTwo,
}

// Ranks lists the ranked faces in ascending order.
var Ranks = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

// Suits lists the four ranked suits.
var Suits = []Suit{SuitSpade, SuitHeart, SuitClub, SuitDiamond}

// NewCard builds a ranked card. It returns an error for unknown ranks or the joker suit.
func NewCard(id string, suit Suit, rank string) (Card, error) {
	if suit == SuitJoker {
		return Card{}, fmt.Errorf("%w: use NewJoker for jokers", ErrInvalidCard)
	}
	v, ok := rankValues[rank]
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, rank)
	}
	return Card{ID: id, Suit: suit, Rank: rank, Value: v}, nil
}

// MustCard is NewCard for static tables and tests.
func MustCard(id string, suit Suit, rank string) Card {
	c, err := NewCard(id, suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// NewJoker builds a small or big joker.
func NewJoker(id string, joker JokerType) Card {
	if joker == JokerBig {
		return Card{ID: id, Suit: SuitJoker, Rank: "BJ", Value: ValueBigJoker, Joker: JokerBig}
	}
	return Card{ID: id, Suit: SuitJoker, Rank: "SJ", Value: ValueSmallJoker, Joker: JokerSmall}
}

// IsJoker reports whether the card is either joker.
func (c Card) IsJoker() bool {
	return c.Suit == SuitJoker
}

// Equals compares by suit and rank, ignoring identity.
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// Compare orders cards by value. Ties between suits of the same rank compare equal.
func (c Card) Compare(other Card) int {
	a, b := c.order(), other.order()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (c Card) order() int {
	switch c.Joker {
	case JokerSmall:
		return ValueSmallJoker
	case JokerBig:
		return ValueBigJoker
	}
	return c.Value
}

func (c Card) String() string {
	if c.IsJoker() {
		return c.Rank
	}
	return c.Rank + strings.ToUpper(string(c.Suit[:1]))
}
