package internal

import "guandan/internal/domain"

// HandProfile summarizes a hand's structure by value counts.
type HandProfile struct {
	TotalCards int
	Singles    int
	Pairs      int
	Triples    int
	Bombs      int
	BombCards  int
	Jokers     int
	Rocket     bool
	Twos       int
	HighCards  int
}

// ProfileHand counts value groups in a hand. Jokers are tallied separately
// and never form groups here.
func ProfileHand(hand []domain.Card) HandProfile {
	profile := HandProfile{TotalCards: len(hand)}
	if len(hand) == 0 {
		return profile
	}

	counts := make(map[int]int)
	small, big := false, false
	for _, c := range hand {
		if c.IsJoker() {
			profile.Jokers++
			profile.HighCards++
			small = small || c.Joker == domain.JokerSmall
			big = big || c.Joker == domain.JokerBig
			continue
		}
		if c.Value == domain.ValueTwo {
			profile.Twos++
		}
		if IsHighCard(c) {
			profile.HighCards++
		}
		counts[c.Value]++
	}

	profile.Rocket = small && big

	for _, count := range counts {
		switch {
		case count >= 4:
			profile.Bombs++
			profile.BombCards += count
		case count == 3:
			profile.Triples++
		case count == 2:
			profile.Pairs++
		default:
			profile.Singles++
		}
	}
	return profile
}

// HasBomb reports whether the hand can produce a bomb or a rocket.
func (p HandProfile) HasBomb() bool {
	return p.Bombs > 0 || p.Rocket
}

// BombUnits counts the separate bombs the hand holds, the rocket included.
func (p HandProfile) BombUnits() int {
	n := p.Bombs
	if p.Rocket {
		n++
	}
	return n
}
