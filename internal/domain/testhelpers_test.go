package domain

import (
	"fmt"
	"strings"
)

var suitLetters = map[byte]Suit{'S': SuitSpade, 'H': SuitHeart, 'C': SuitClub, 'D': SuitDiamond}

// parseCards builds cards from a compact form like "3S 10H SJ BJ".
func parseCards(s string) []Card {
	var out []Card
	for i, tok := range strings.Fields(s) {
		id := fmt.Sprintf("c%d", i)
		switch tok {
		case "SJ":
			out = append(out, NewJoker(id, JokerSmall))
			continue
		case "BJ":
			out = append(out, NewJoker(id, JokerBig))
			continue
		}
		suit := suitLetters[tok[len(tok)-1]]
		out = append(out, MustCard(id, suit, tok[:len(tok)-1]))
	}
	return out
}

func mustPattern(s string) *Pattern {
	p, err := IdentifyPattern(parseCards(s))
	if err != nil {
		panic(err)
	}
	return p
}
