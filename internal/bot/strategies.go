package bot

import (
	"fmt"
	"time"

	"guandan/internal/bot/brain"
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

// NewStrategy builds the strategy of the given kind.
func NewStrategy(kind StrategyKind, difficulty Difficulty, skillLevel int, seed uint32) (Strategy, error) {
	if _, err := ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}
	switch kind {
	case StrategyRandom:
		return NewRandomStrategy(difficulty, seed), nil
	case StrategyGreedy:
		return NewGreedyStrategy(difficulty)
	case StrategyMemory:
		return NewMemoryStrategy(difficulty, skillLevel), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
}

// baseStrategy carries the bookkeeping every strategy shares.
type baseStrategy struct {
	kind       StrategyKind
	difficulty Difficulty
	tuning     StrategyTuning
	state      StrategyState
	totalTime  time.Duration
}

func newBase(kind StrategyKind, difficulty Difficulty, tuning StrategyTuning) baseStrategy {
	return baseStrategy{kind: kind, difficulty: difficulty, tuning: tuning}
}

func (b *baseStrategy) Kind() StrategyKind     { return b.kind }
func (b *baseStrategy) Difficulty() Difficulty { return b.difficulty }
func (b *baseStrategy) State() StrategyState   { return b.state }
func (b *baseStrategy) sealed()                {}

func (b *baseStrategy) ResetState() {
	b.state = StrategyState{}
	b.totalTime = 0
}

// SuccessRate is the share of decisions whose choice cleared the threshold and was valid.
func (b *baseStrategy) SuccessRate() float64 {
	if b.state.DecisionCount == 0 {
		return 0
	}
	return float64(b.state.SuccessfulDecisions) / float64(b.state.DecisionCount)
}

// minScore is the difficulty threshold on the 0..100 scale.
func (b *baseStrategy) minScore() float64 {
	return b.tuning.MinConfidence(b.difficulty) * 100
}

// eligible returns the indices of options at or above the threshold.
func (b *baseStrategy) eligible(options []PlayOption) []int {
	threshold := b.minScore()
	var out []int
	for i, o := range options {
		if o.Score >= threshold {
			out = append(out, i)
		}
	}
	return out
}

// emptyPass is the synthetic option returned when nothing was offered.
func (b *baseStrategy) emptyPass() PlayOption {
	return PlayOption{
		Choice:     domain.ChoicePass,
		Score:      b.tuning.PassScore,
		Reason:     fmt.Sprintf("%s: no options, passing", b.kind),
		Validation: Validation{Valid: true},
	}
}

// record updates the decision counters for one SelectBestPlay call.
func (b *baseStrategy) record(start time.Time, chosen PlayOption) {
	elapsed := time.Since(start)
	b.state.DecisionCount++
	b.state.LastDecisionTime = elapsed
	b.totalTime += elapsed
	b.state.AverageDecisionTime = b.totalTime / time.Duration(b.state.DecisionCount)
	if chosen.Score >= b.minScore() && (chosen.IsPass() || chosen.Validation.Valid) {
		b.state.SuccessfulDecisions++
	}
}

// argmax returns the index of the highest-scoring option among idx, the
// earliest on ties. idx nil means every option.
func argmax(options []PlayOption, idx []int) int {
	if idx == nil {
		idx = make([]int, len(options))
		for i := range options {
			idx[i] = i
		}
	}
	best := idx[0]
	for _, i := range idx[1:] {
		if options[i].Score > options[best].Score {
			best = i
		}
	}
	return best
}

func clampScore(v float64) float64 {
	return internal.Clamp(v, 0, 100)
}

// ownHandSize is the hand size of the memory owner in session, or -1 if not seated.
func ownHandSize(session domain.Session, ownerID string) int {
	p := domain.FindPlayer(session, ownerID)
	if p == nil {
		return -1
	}
	return p.HandSize()
}

// ownProfile profiles the memory owner's hand in session. ok is false when
// the owner is not seated.
func ownProfile(session domain.Session, memory *brain.GameMemory) (internal.HandProfile, bool) {
	if session == nil || memory == nil {
		return internal.HandProfile{}, false
	}
	p := domain.FindPlayer(session, memory.OwnerID)
	if p == nil {
		return internal.HandProfile{}, false
	}
	return internal.ProfileHand(p.HandCards()), true
}

func roundNumber(session domain.Session) int {
	if session == nil {
		return 0
	}
	return session.CurrentRound().Number
}

func currentPattern(session domain.Session) *domain.Pattern {
	if session == nil {
		return nil
	}
	return session.CurrentPattern()
}
