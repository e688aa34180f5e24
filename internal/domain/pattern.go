package domain

import "fmt"

// PatternType is the family of a recognized combination.
type PatternType string

const (
	PatternSingle         PatternType = "single"
	PatternPair           PatternType = "pair"
	PatternTriple         PatternType = "triple"
	PatternFullHouse      PatternType = "full_house"      // triple plus a pair
	PatternStraight       PatternType = "straight"        // five or more consecutive ranks
	PatternPairStraight   PatternType = "pair_straight"   // three or more consecutive pairs
	PatternTripleStraight PatternType = "triple_straight" // two or more consecutive triples
	PatternBomb           PatternType = "bomb"            // four or more of one rank
	PatternRocket         PatternType = "rocket"          // jokers only, both kinds present
)

// PatternTypes lists every family, weakest first.
var PatternTypes = []PatternType{
	PatternSingle, PatternPair, PatternTriple, PatternFullHouse, PatternStraight,
	PatternPairStraight, PatternTripleStraight, PatternBomb, PatternRocket,
}

const (
	minStraight       = 5
	minPairStraight   = 3
	minTripleStraight = 2
)

// Pattern is a recognized legal combination. Cards are sorted ascending.
type Pattern struct {
	Type     PatternType `json:"type"`
	Cards    []Card      `json:"cards"`
	MainRank int         `json:"mainRank"`
	Length   int         `json:"length"`
}

// IsBomb reports whether the pattern beats ordinary families regardless of rank.
func (p *Pattern) IsBomb() bool {
	return p != nil && (p.Type == PatternBomb || p.Type == PatternRocket)
}

// CanBeat reports whether p may be played over other. A nil other means the
// table is open and anything may lead.
func (p *Pattern) CanBeat(other *Pattern) bool {
	if p == nil {
		return false
	}
	if other == nil {
		return true
	}

	switch {
	case p.Type == PatternRocket:
		if other.Type == PatternRocket {
			return p.Length > other.Length
		}
		return true
	case other.Type == PatternRocket:
		return false
	case p.Type == PatternBomb && other.Type != PatternBomb:
		return true
	case p.Type == PatternBomb:
		if p.Length != other.Length {
			return p.Length > other.Length
		}
		return p.MainRank > other.MainRank
	case other.Type == PatternBomb:
		return false
	}

	return p.Type == other.Type && p.Length == other.Length && p.MainRank > other.MainRank
}

// Signature identifies a pattern by value content, ignoring card identity and suits.
func (p *Pattern) Signature() string {
	if p == nil {
		return "pass"
	}
	sig := fmt.Sprintf("%s/%d/%d:", p.Type, p.MainRank, p.Length)
	for _, c := range p.Cards {
		sig += fmt.Sprintf("%d.", c.order())
	}
	return sig
}

func (p *Pattern) String() string {
	if p == nil {
		return "pass"
	}
	return fmt.Sprintf("%s%v", p.Type, p.Cards)
}

// IdentifyPattern recognizes the combination formed by cards. The input slice
// is not modified.
func IdentifyPattern(cards []Card) (*Pattern, error) {
	n := len(cards)
	if n == 0 {
		return nil, ErrEmptyPattern
	}

	sorted := make([]Card, n)
	copy(sorted, cards)
	SortHand(sorted)

	p := &Pattern{Cards: sorted, Length: n}

	jokers, smalls, bigs := 0, 0, 0
	for _, c := range sorted {
		switch c.Joker {
		case JokerSmall:
			jokers++
			smalls++
		case JokerBig:
			jokers++
			bigs++
		}
	}

	if n == 1 {
		p.Type = PatternSingle
		p.MainRank = sorted[0].order()
		return p, nil
	}

	if jokers > 0 {
		switch {
		case jokers != n:
			return nil, fmt.Errorf("%w: jokers cannot mix with ranked cards", ErrInvalidPattern)
		case smalls > 0 && bigs > 0:
			p.Type = PatternRocket
			p.MainRank = ValueBigJoker
			return p, nil
		case n == 2:
			p.Type = PatternPair
			p.MainRank = sorted[0].order()
			return p, nil
		}
		return nil, fmt.Errorf("%w: %d jokers of one kind", ErrInvalidPattern, n)
	}

	counts, values := countValues(sorted)

	if len(values) == 1 {
		p.MainRank = values[0]
		switch n {
		case 2:
			p.Type = PatternPair
		case 3:
			p.Type = PatternTriple
		default:
			p.Type = PatternBomb
		}
		return p, nil
	}

	if n == 5 && len(values) == 2 {
		for _, v := range values {
			if counts[v] == 3 {
				p.Type = PatternFullHouse
				p.MainRank = v
				return p, nil
			}
		}
	}

	if run, ok := uniformRun(counts, values); ok {
		top := values[len(values)-1]
		switch {
		case run == 1 && len(values) >= minStraight:
			p.Type = PatternStraight
		case run == 2 && len(values) >= minPairStraight:
			p.Type = PatternPairStraight
		case run == 3 && len(values) >= minTripleStraight:
			p.Type = PatternTripleStraight
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, sorted)
		}
		p.MainRank = top
		return p, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, sorted)
}

// countValues returns per-value counts and the distinct values ascending.
// Input must already be sorted.
func countValues(sorted []Card) (map[int]int, []int) {
	counts := make(map[int]int)
	var values []int
	for _, c := range sorted {
		v := c.order()
		if counts[v] == 0 {
			values = append(values, v)
		}
		counts[v]++
	}
	return counts, values
}

// uniformRun reports the shared multiplicity of a consecutive value run that
// never touches the 2. ok is false for gaps, mixed multiplicities or 2s.
func uniformRun(counts map[int]int, values []int) (int, bool) {
	run := counts[values[0]]
	for i, v := range values {
		if v >= ValueTwo || counts[v] != run {
			return 0, false
		}
		if i > 0 && v != values[i-1]+1 {
			return 0, false
		}
	}
	return run, true
}
