package bot

import (
	"fmt"
	"time"

	"guandan/internal/bot/brain"
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

// BestChoice is one entry of the greedy selection history.
type BestChoice struct {
	PatternType domain.PatternType `json:"patternType"`
	Score       float64            `json:"score"`
}

// GreedyStrategy favors strong plays that take the table. Its two scalars
// drift with outcomes and game phase, and evaluations are memoized.
type GreedyStrategy struct {
	baseStrategy
	greedyTendency float64
	riskTolerance  float64
	cache          *evalCache
	bestChoices    []BestChoice
}

func NewGreedyStrategy(difficulty Difficulty) (*GreedyStrategy, error) {
	cache, err := newEvalCache(greedyCacheSize)
	if err != nil {
		return nil, err
	}
	return &GreedyStrategy{
		baseStrategy:   newBase(StrategyGreedy, difficulty, GreedyTuning),
		greedyTendency: greedyInitialTendency,
		riskTolerance:  greedyInitialRisk,
		cache:          cache,
	}, nil
}

func (s *GreedyStrategy) GreedyTendency() float64 { return s.greedyTendency }
func (s *GreedyStrategy) RiskTolerance() float64  { return s.riskTolerance }

// CacheStats reports the evaluation cache.
func (s *GreedyStrategy) CacheStats() CacheStats {
	return s.cache.stats()
}

// BestChoices returns the recent selection history, oldest first.
func (s *GreedyStrategy) BestChoices() []BestChoice {
	return append([]BestChoice(nil), s.bestChoices...)
}

func (s *GreedyStrategy) EvaluatePlay(p *domain.Pattern, session domain.Session, memory *brain.GameMemory) float64 {
	if p == nil {
		return 0
	}
	profile, seated := ownProfile(session, memory)
	key := fmt.Sprintf("%s|b%d", evalKey(p, session, memory, s.greedyTendency, s.riskTolerance), profile.BombUnits())
	if score, ok := s.cache.get(key); ok {
		return score
	}

	t := s.greedyTendency
	score := internal.PatternStrength(p)*(0.5+0.5*t) + float64(len(p.Cards))*t*greedyCardWeight
	if current := currentPattern(session); current != nil && p.CanBeat(current) {
		score += greedyDominationBonus
	}
	if p.IsBomb() {
		penalty := greedyBombPenalty * (1 - s.riskTolerance)
		if seated && profile.BombUnits() > 1 {
			penalty *= greedySpareBombFactor
		}
		score -= penalty
	}
	score = clampScore(score)

	s.cache.set(key, score)
	return score
}

func (s *GreedyStrategy) EvaluatePass(session domain.Session, memory *brain.GameMemory) float64 {
	score := GreedyTuning.PassScore
	current := currentPattern(session)
	if current.IsBomb() {
		score += greedyPassBombBonus
	}
	if profile, ok := ownProfile(session, memory); ok && current != nil && !current.IsBomb() &&
		profile.HasBomb() && profile.TotalCards > greedyShortHandSize {
		score += greedyPassKeepBombs * (1 - s.riskTolerance)
	}
	if memory != nil {
		if n := ownHandSize(session, memory.OwnerID); n >= 0 && n <= greedyShortHandSize {
			score += greedyPassShortHand
		}
	}
	if round := roundNumber(session); round > greedyLateRound {
		score += internal.Clamp(float64(round-greedyLateRound), 0, 10)
	}
	return clampScore(score)
}

func (s *GreedyStrategy) SelectBestPlay(options []PlayOption, session domain.Session, _ *brain.GameMemory) PlayOption {
	start := time.Now()
	if len(options) == 0 {
		chosen := s.emptyPass()
		s.record(start, chosen)
		return chosen
	}

	var (
		idx    int
		reason string
	)
	eligible := s.eligible(options)
	switch {
	case len(eligible) == 0:
		idx = argmax(options, nil)
		reason = "nothing cleared the threshold, best overall"
	default:
		idx = argmax(options, eligible)
		reason = "best eligible"
		if current := currentPattern(session); current != nil {
			if dom := dominating(options, eligible, current); len(dom) > 0 {
				idx = argmax(options, dom)
				reason = "best dominating"
			}
		}
	}

	chosen := options[idx]
	chosen.Reason = fmt.Sprintf("greedy: %s %s (score %.1f, tendency %.2f)", reason, describe(chosen), chosen.Score, s.greedyTendency)

	entry := BestChoice{Score: chosen.Score}
	if chosen.Pattern != nil {
		entry.PatternType = chosen.Pattern.Type
	}
	s.bestChoices = append(s.bestChoices, entry)
	if len(s.bestChoices) > greedyHistorySize {
		s.bestChoices = s.bestChoices[len(s.bestChoices)-greedyHistorySize:]
	}

	s.record(start, chosen)
	return chosen
}

// UpdateMemory adapts the tendency to the outcome of the owner's own plays.
// Plays whose round has not resolved are ignored unless they were invalid.
func (s *GreedyStrategy) UpdateMemory(record brain.PlayRecord, _ domain.Session, memory *brain.GameMemory) {
	if memory != nil && record.PlayerID != memory.OwnerID {
		return
	}
	switch {
	case !record.Valid:
		s.greedyTendency = internal.Clamp(s.greedyTendency-greedyOutcomeStep, 0, 1)
	case !record.Resolved:
	case record.Won:
		s.greedyTendency = internal.Clamp(s.greedyTendency+greedyOutcomeStep, 0, 1)
	default:
		s.greedyTendency = internal.Clamp(s.greedyTendency-greedyOutcomeStep, 0, 1)
	}
}

// UpdateGameState grows both scalars early in the game and shrinks them late.
func (s *GreedyStrategy) UpdateGameState(snapshot brain.Snapshot, _ *brain.GameMemory) {
	var step float64
	switch snapshot.Phase {
	case internal.PhaseEarly:
		step = greedyPhaseStep
	case internal.PhaseLate:
		step = -greedyPhaseStep
	default:
		return
	}
	s.greedyTendency = internal.Clamp(s.greedyTendency+step, 0, 1)
	s.riskTolerance = internal.Clamp(s.riskTolerance+step, 0, 1)
}

func (s *GreedyStrategy) ResetState() {
	s.baseStrategy.ResetState()
	s.greedyTendency = greedyInitialTendency
	s.riskTolerance = greedyInitialRisk
	s.bestChoices = nil
	s.cache.clear()
}

// Close releases the evaluation cache.
func (s *GreedyStrategy) Close() error {
	s.cache.close()
	return nil
}

func dominating(options []PlayOption, idx []int, current *domain.Pattern) []int {
	var out []int
	for _, i := range idx {
		if p := options[i].Pattern; !options[i].IsPass() && p.CanBeat(current) {
			out = append(out, i)
		}
	}
	return out
}

func describe(o PlayOption) string {
	if o.IsPass() || o.Pattern == nil {
		return "pass"
	}
	return string(o.Pattern.Type)
}
