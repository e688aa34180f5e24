package internal

import "guandan/internal/domain"

// Base strength per pattern family. Bombs and rockets sit far above the rest.
var typeStrength = map[domain.PatternType]float64{
	domain.PatternSingle:         10,
	domain.PatternPair:           15,
	domain.PatternTriple:         20,
	domain.PatternFullHouse:      30,
	domain.PatternStraight:       32,
	domain.PatternPairStraight:   38,
	domain.PatternTripleStraight: 42,
	domain.PatternBomb:           65,
	domain.PatternRocket:         85,
}

const (
	rankSpan     = 20.0
	lengthBonus  = 2.0
	bombLenBonus = 5.0
)

// PatternStrength maps a pattern onto [0,100]: family base, plus how high its
// main rank sits between 3 and the big joker, plus a small length term.
func PatternStrength(p *domain.Pattern) float64 {
	if p == nil {
		return 0
	}
	score := typeStrength[p.Type]
	score += rankSpan * float64(p.MainRank-3) / float64(domain.ValueBigJoker-3)

	switch p.Type {
	case domain.PatternBomb:
		score += bombLenBonus * float64(p.Length-4)
	case domain.PatternRocket:
		score += bombLenBonus * float64(p.Length-2)
	case domain.PatternStraight, domain.PatternPairStraight, domain.PatternTripleStraight:
		score += lengthBonus * float64(p.Length-5)
	}
	return Clamp(score, 0, 100)
}

// IsHighCard reports whether a card is an ace or better.
func IsHighCard(c domain.Card) bool {
	return c.IsJoker() || c.Value >= domain.ValueAce
}

// HighCardRatio is the share of cards in p that are aces or better.
func HighCardRatio(p *domain.Pattern) float64 {
	if p == nil || len(p.Cards) == 0 {
		return 0
	}
	n := 0
	for _, c := range p.Cards {
		if IsHighCard(c) {
			n++
		}
	}
	return float64(n) / float64(len(p.Cards))
}

// Clamp bounds v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
