package bot

import (
	"fmt"
	"time"

	"guandan/internal/bot/brain"
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

// MemoryStrategy weights options by what the seat has learned about the
// table: it avoids families opponents favor and follows a cooperative
// partner's preferences.
type MemoryStrategy struct {
	baseStrategy
	skillLevel int
	observed   int
	late       bool
}

// NewMemoryStrategy builds a memory-weighted strategy. skillLevel is clamped to [0,100].
func NewMemoryStrategy(difficulty Difficulty, skillLevel int) *MemoryStrategy {
	if skillLevel < 0 {
		skillLevel = 0
	}
	if skillLevel > 100 {
		skillLevel = 100
	}
	return &MemoryStrategy{
		baseStrategy: newBase(StrategyMemory, difficulty, MemoryTuning),
		skillLevel:   skillLevel,
	}
}

func (s *MemoryStrategy) SkillLevel() int { return s.skillLevel }

// MemoryWeight scales every memory-derived adjustment. It grows with skill
// and with the amount of evidence observed, and stays in [0,1].
func (s *MemoryStrategy) MemoryWeight() float64 {
	skill := 0.5 + float64(s.skillLevel)/200
	evidence := internal.Clamp(memoryEvidenceFloor+float64(s.observed)/memoryEvidenceScale, 0, 1)
	return skill * evidence
}

func (s *MemoryStrategy) EvaluatePlay(p *domain.Pattern, session domain.Session, memory *brain.GameMemory) float64 {
	if p == nil {
		return 0
	}
	score := internal.PatternStrength(p)*0.6 + float64(len(p.Cards))*memoryCardWeight
	if current := currentPattern(session); current != nil && p.CanBeat(current) {
		score += memoryDominationBonus
		if s.late {
			score += memoryLateBonus
		}
	}
	if memory == nil || session == nil {
		return clampScore(score)
	}

	w := s.MemoryWeight()
	est := brain.NewEstimator(memory)

	score -= memoryOpponentPenalty * est.OpponentAffinity(session, p.Type) * w

	if partner, ok := est.Partner(session); ok {
		teamwork := partner.PlayHabits.TeamworkTendency
		if teamwork > memoryTeamworkCutoff {
			score += memoryPartnerBonus * partner.Preference(p.Type) * teamwork * w
		}
	}
	if p.IsBomb() && est.PartnerWinning(session) {
		penalty := memoryBombOnPartner * w
		if profile, ok := ownProfile(session, memory); ok && profile.BombUnits() <= 1 {
			penalty *= memoryLastBombFactor
		}
		score -= penalty
	}
	return clampScore(score)
}

func (s *MemoryStrategy) EvaluatePass(session domain.Session, memory *brain.GameMemory) float64 {
	score := MemoryTuning.PassScore
	if currentPattern(session).IsBomb() {
		score += memoryPassBombBonus
	}
	if memory != nil && session != nil && brain.NewEstimator(memory).PartnerWinning(session) {
		score += memoryPassPartnerBonus * s.MemoryWeight()
	}
	return clampScore(score)
}

func (s *MemoryStrategy) SelectBestPlay(options []PlayOption, _ domain.Session, _ *brain.GameMemory) PlayOption {
	start := time.Now()
	if len(options) == 0 {
		chosen := s.emptyPass()
		s.record(start, chosen)
		return chosen
	}

	reason := "best eligible"
	eligible := s.eligible(options)
	if len(eligible) == 0 {
		eligible = nil
		reason = "nothing cleared the threshold, best overall"
	}
	chosen := options[argmax(options, eligible)]
	chosen.Reason = fmt.Sprintf("memory: %s %s (score %.1f, weight %.2f)", reason, describe(chosen), chosen.Score, s.MemoryWeight())

	s.record(start, chosen)
	return chosen
}

// UpdateMemory counts observations of other seats as evidence.
func (s *MemoryStrategy) UpdateMemory(record brain.PlayRecord, _ domain.Session, memory *brain.GameMemory) {
	if memory != nil && record.PlayerID == memory.OwnerID {
		return
	}
	s.observed++
}

func (s *MemoryStrategy) UpdateGameState(snapshot brain.Snapshot, _ *brain.GameMemory) {
	s.late = snapshot.Phase == internal.PhaseLate
}

func (s *MemoryStrategy) ResetState() {
	s.baseStrategy.ResetState()
	s.observed = 0
	s.late = false
}
