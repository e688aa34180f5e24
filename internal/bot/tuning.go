package bot

import "guandan/internal/domain"

// StrategyTuning holds the per-strategy constants that shape selection.
type StrategyTuning struct {
	// Thresholds maps a difficulty to the minimum confidence in [0,1] an option needs.
	Thresholds map[Difficulty]float64
	// PassScore is returned when a strategy is offered no options at all.
	PassScore float64
}

// MinConfidence returns the threshold for d, falling back to intermediate.
func (t StrategyTuning) MinConfidence(d Difficulty) float64 {
	if v, ok := t.Thresholds[d]; ok {
		return v
	}
	return t.Thresholds[DifficultyIntermediate]
}

var RandomTuning = StrategyTuning{
	Thresholds: map[Difficulty]float64{
		DifficultyBeginner:     0.4,
		DifficultyIntermediate: 0.6,
		DifficultyAdvanced:     0.7,
		DifficultyExpert:       0.8,
	},
	PassScore: 50,
}

var GreedyTuning = StrategyTuning{
	Thresholds: map[Difficulty]float64{
		DifficultyBeginner:     0.3,
		DifficultyIntermediate: 0.45,
		DifficultyAdvanced:     0.55,
		DifficultyExpert:       0.65,
	},
	PassScore: 30,
}

var MemoryTuning = StrategyTuning{
	Thresholds: map[Difficulty]float64{
		DifficultyBeginner:     0.35,
		DifficultyIntermediate: 0.5,
		DifficultyAdvanced:     0.6,
		DifficultyExpert:       0.7,
	},
	PassScore: 40,
}

// Random scoring bands.
const (
	randomPlayBase   = 30.0
	randomPlaySpread = 40.0
	randomPassBase   = 20.0
	randomPassSpread = 30.0
	randomPassRounds = 10
	randomJitter     = 5.0
	randomRingSize   = 10
)

var randomTypeBonus = map[domain.PatternType]float64{
	domain.PatternSingle:         0,
	domain.PatternPair:           2,
	domain.PatternTriple:         4,
	domain.PatternFullHouse:      5,
	domain.PatternStraight:       6,
	domain.PatternPairStraight:   7,
	domain.PatternTripleStraight: 8,
	domain.PatternBomb:           15,
	domain.PatternRocket:         20,
}

// Greedy adaptation.
const (
	greedyInitialTendency = 0.8
	greedyInitialRisk     = 0.3
	greedyOutcomeStep     = 0.05
	greedyPhaseStep       = 0.02
	greedyCardWeight      = 1.5
	greedyDominationBonus = 15.0
	greedyBombPenalty     = 25.0
	greedyPassBombBonus   = 20.0
	greedyPassShortHand   = 10.0
	greedyPassKeepBombs   = 8.0
	greedySpareBombFactor = 0.5
	greedyShortHandSize   = 3
	greedyLateRound       = 10
	greedyCacheSize       = 100
	greedyHistorySize     = 100
)

// Memory weighting.
const (
	memoryCardWeight       = 1.2
	memoryDominationBonus  = 10.0
	memoryLateBonus        = 5.0
	memoryOpponentPenalty  = 20.0
	memoryPartnerBonus     = 15.0
	memoryTeamworkCutoff   = 0.6
	memoryBombOnPartner    = 20.0
	memoryLastBombFactor   = 1.5
	memoryPassPartnerBonus = 25.0
	memoryPassBombBonus    = 10.0
	memoryEvidenceFloor    = 0.3
	memoryEvidenceScale    = 40.0
)
