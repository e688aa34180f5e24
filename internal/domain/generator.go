package domain

import "sort"

const maxStraightLen = 12

// LegalPatterns returns every distinct combination in hand that can be played
// over current (nil when leading). Combinations are deduplicated by value, so
// two red fives produce one single five. The result is ordered by family,
// length and main rank.
func LegalPatterns(hand []Card, current *Pattern) []*Pattern {
	sorted := make([]Card, len(hand))
	copy(sorted, hand)
	SortHand(sorted)

	groups, values := groupByValue(sorted)
	seen := make(map[string]bool)
	var out []*Pattern

	add := func(cards []Card) {
		p, err := IdentifyPattern(cards)
		if err != nil || !p.CanBeat(current) {
			return
		}
		sig := p.Signature()
		if seen[sig] {
			return
		}
		seen[sig] = true
		out = append(out, p)
	}

	for _, v := range values {
		g := groups[v]
		add(g[:1])
		if len(g) >= 2 {
			add(g[:2])
		}
		if len(g) >= 3 {
			add(g[:3])
		}
		for k := 4; k <= len(g); k++ {
			add(g[:k])
		}
	}

	findFullHouses(groups, values, add)
	findRuns(groups, values, 1, minStraight, add)
	findRuns(groups, values, 2, minPairStraight, add)
	findRuns(groups, values, 3, minTripleStraight, add)
	findRockets(groups, add)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return typeIndex(a.Type) < typeIndex(b.Type)
		}
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		return a.MainRank < b.MainRank
	})
	return out
}

func groupByValue(sorted []Card) (map[int][]Card, []int) {
	groups := make(map[int][]Card)
	var values []int
	for _, c := range sorted {
		v := c.order()
		if _, ok := groups[v]; !ok {
			values = append(values, v)
		}
		groups[v] = append(groups[v], c)
	}
	return groups, values
}

func findFullHouses(groups map[int][]Card, values []int, add func([]Card)) {
	for _, t := range values {
		if len(groups[t]) < 3 || t >= ValueSmallJoker {
			continue
		}
		for _, p := range values {
			if p == t || len(groups[p]) < 2 || p >= ValueSmallJoker {
				continue
			}
			cards := append(append([]Card{}, groups[t][:3]...), groups[p][:2]...)
			add(cards)
		}
	}
}

// findRuns emits every consecutive run of ranked values (2 excluded) where each
// value contributes width cards and the run has at least minLen values.
func findRuns(groups map[int][]Card, values []int, width, minLen int, add func([]Card)) {
	for start := 3; start < ValueTwo; start++ {
		var cards []Card
		for v := start; v < ValueTwo && v-start < maxStraightLen; v++ {
			if len(groups[v]) < width {
				break
			}
			cards = append(cards, groups[v][:width]...)
			if v-start+1 >= minLen {
				add(append([]Card{}, cards...))
			}
		}
	}
}

func findRockets(groups map[int][]Card, add func([]Card)) {
	smalls, bigs := groups[ValueSmallJoker], groups[ValueBigJoker]
	if len(smalls) == 0 || len(bigs) == 0 {
		return
	}
	add([]Card{smalls[0], bigs[0]})
	all := append(append([]Card{}, smalls...), bigs...)
	if len(all) > 2 {
		add(all)
	}
}

func typeIndex(t PatternType) int {
	for i, pt := range PatternTypes {
		if pt == t {
			return i
		}
	}
	return len(PatternTypes)
}
