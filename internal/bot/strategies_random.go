package bot

import (
	"fmt"
	"time"

	"guandan/internal/bot/brain"
	"guandan/internal/domain"
)

const passDrawKey = "pass"

// RandomStrategy scores options with a seeded generator. Two strategies built
// with the same seed produce the same scores for the same calls.
type RandomStrategy struct {
	baseStrategy
	rng               *lcg
	recentDraws       map[string][]float64
	indexDistribution map[int]int
}

func NewRandomStrategy(difficulty Difficulty, seed uint32) *RandomStrategy {
	return &RandomStrategy{
		baseStrategy:      newBase(StrategyRandom, difficulty, RandomTuning),
		rng:               newLCG(seed),
		recentDraws:       make(map[string][]float64),
		indexDistribution: make(map[int]int),
	}
}

// ResetRandomGenerator reseeds the generator. Histories are kept.
func (s *RandomStrategy) ResetRandomGenerator(seed uint32) {
	s.rng.reset(seed)
}

func (s *RandomStrategy) EvaluatePlay(p *domain.Pattern, _ domain.Session, _ *brain.GameMemory) float64 {
	if p == nil {
		return 0
	}
	r := s.draw(string(p.Type))
	return clampScore(randomPlayBase + randomPlaySpread*r + randomTypeBonus[p.Type])
}

func (s *RandomStrategy) EvaluatePass(session domain.Session, _ *brain.GameMemory) float64 {
	r := s.draw(passDrawKey)
	round := roundNumber(session)
	if round > randomPassRounds {
		round = randomPassRounds
	}
	return clampScore(randomPassBase + randomPassSpread*r + float64(round))
}

func (s *RandomStrategy) SelectBestPlay(options []PlayOption, _ domain.Session, _ *brain.GameMemory) PlayOption {
	start := time.Now()
	if len(options) == 0 {
		chosen := s.emptyPass()
		s.record(start, chosen)
		return chosen
	}

	var idx int
	if eligible := s.eligible(options); len(eligible) > 0 {
		idx = eligible[s.rng.intn(len(eligible))]
	} else {
		idx = argmax(options, nil)
	}
	s.indexDistribution[idx]++

	chosen := options[idx]
	before := chosen.Score
	chosen.Score = clampScore(before + (s.rng.float64()*2-1)*randomJitter)
	chosen.Reason = fmt.Sprintf("random: picked option %d of %d (score %.1f -> %.1f)", idx, len(options), before, chosen.Score)

	s.record(start, chosen)
	return chosen
}

func (s *RandomStrategy) UpdateMemory(brain.PlayRecord, domain.Session, *brain.GameMemory) {}

func (s *RandomStrategy) UpdateGameState(brain.Snapshot, *brain.GameMemory) {}

func (s *RandomStrategy) ResetState() {
	s.baseStrategy.ResetState()
	s.recentDraws = make(map[string][]float64)
	s.indexDistribution = make(map[int]int)
}

// RecentDraws returns up to the last ten draws used for a pattern type, oldest first.
func (s *RandomStrategy) RecentDraws(t domain.PatternType) []float64 {
	return append([]float64(nil), s.recentDraws[string(t)]...)
}

// IndexDistribution returns how often each option index has been selected.
func (s *RandomStrategy) IndexDistribution() map[int]int {
	out := make(map[int]int, len(s.indexDistribution))
	for k, v := range s.indexDistribution {
		out[k] = v
	}
	return out
}

func (s *RandomStrategy) draw(key string) float64 {
	r := s.rng.float64()
	ring := append(s.recentDraws[key], r)
	if len(ring) > randomRingSize {
		ring = ring[len(ring)-randomRingSize:]
	}
	s.recentDraws[key] = ring
	return r
}
