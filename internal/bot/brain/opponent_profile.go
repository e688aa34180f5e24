package brain

import (
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

const (
	neutralHabit = 0.5
	// habitAlpha is the weight of one observation in the moving averages.
	habitAlpha = 0.2
)

// PlayHabits are inferred tendencies of a seat, each in [0,1].
type PlayHabits struct {
	PlayBigCardsProbability float64 `json:"playBigCardsProbability"`
	KeepBombsProbability    float64 `json:"keepBombsProbability"`
	TakeRisksProbability    float64 `json:"takeRisksProbability"`
	TeamworkTendency        float64 `json:"teamworkTendency"`
}

// PlayerMemory tracks the behavioral history of one seat.
type PlayerMemory struct {
	PlayerID           string                         `json:"playerId"`
	PatternPreferences map[domain.PatternType]float64 `json:"patternPreferences"`
	PlayHabits         PlayHabits                     `json:"playHabits"`
	Observations       int                            `json:"observations"`
}

// NewPlayerMemory returns a memory with neutral habits and no preferences.
func NewPlayerMemory(id string) *PlayerMemory {
	return &PlayerMemory{
		PlayerID:           id,
		PatternPreferences: make(map[domain.PatternType]float64),
		PlayHabits: PlayHabits{
			PlayBigCardsProbability: neutralHabit,
			KeepBombsProbability:    neutralHabit,
			TakeRisksProbability:    neutralHabit,
			TeamworkTendency:        neutralHabit,
		},
	}
}

func (pm *PlayerMemory) clone() *PlayerMemory {
	out := *pm
	out.PatternPreferences = make(map[domain.PatternType]float64, len(pm.PatternPreferences))
	for t, v := range pm.PatternPreferences {
		out.PatternPreferences[t] = v
	}
	return &out
}

// HabitsUpdate carries the habit fields to overwrite. Nil fields are left alone.
type HabitsUpdate struct {
	PlayBigCardsProbability *float64 `json:"playBigCardsProbability,omitempty"`
	KeepBombsProbability    *float64 `json:"keepBombsProbability,omitempty"`
	TakeRisksProbability    *float64 `json:"takeRisksProbability,omitempty"`
	TeamworkTendency        *float64 `json:"teamworkTendency,omitempty"`
}

// PlayerMemoryUpdate is a partial update. Preferences are merged key by key.
type PlayerMemoryUpdate struct {
	PatternPreferences map[domain.PatternType]float64 `json:"patternPreferences,omitempty"`
	PlayHabits         *HabitsUpdate                  `json:"playHabits,omitempty"`
}

// Float is a helper for building partial updates.
func Float(v float64) *float64 {
	return &v
}

// Merge applies u field by field. Values are clamped to [0,1].
func (pm *PlayerMemory) Merge(u PlayerMemoryUpdate) {
	if pm.PatternPreferences == nil {
		pm.PatternPreferences = make(map[domain.PatternType]float64)
	}
	for t, v := range u.PatternPreferences {
		pm.PatternPreferences[t] = internal.Clamp(v, 0, 1)
	}
	if u.PlayHabits == nil {
		return
	}
	h := u.PlayHabits
	if h.PlayBigCardsProbability != nil {
		pm.PlayHabits.PlayBigCardsProbability = internal.Clamp(*h.PlayBigCardsProbability, 0, 1)
	}
	if h.KeepBombsProbability != nil {
		pm.PlayHabits.KeepBombsProbability = internal.Clamp(*h.KeepBombsProbability, 0, 1)
	}
	if h.TakeRisksProbability != nil {
		pm.PlayHabits.TakeRisksProbability = internal.Clamp(*h.TakeRisksProbability, 0, 1)
	}
	if h.TeamworkTendency != nil {
		pm.PlayHabits.TeamworkTendency = internal.Clamp(*h.TeamworkTendency, 0, 1)
	}
}

// Observation is a play record with the table context it was made in.
type Observation struct {
	Record PlayRecord
	// Answered is the pattern the seat faced, nil when it led.
	Answered *domain.Pattern
	// PartnerWinning is set when the seat's partner held the table at the time.
	PartnerWinning bool
}

// Observe folds one observation into the moving averages.
func (pm *PlayerMemory) Observe(o Observation) {
	pm.Observations++
	h := &pm.PlayHabits

	if o.Record.Choice == domain.ChoicePass || o.Record.Pattern == nil {
		if o.PartnerWinning {
			h.TeamworkTendency = ema(h.TeamworkTendency, 1, habitAlpha)
		}
		return
	}

	p := o.Record.Pattern
	for t := range pm.PatternPreferences {
		if t != p.Type {
			pm.PatternPreferences[t] = ema(pm.PatternPreferences[t], 0, habitAlpha)
		}
	}
	pm.PatternPreferences[p.Type] = ema(pm.PatternPreferences[p.Type], 1, habitAlpha)

	big := 0.0
	if internal.HighCardRatio(p) >= 0.5 {
		big = 1
	}
	h.PlayBigCardsProbability = ema(h.PlayBigCardsProbability, big, habitAlpha)

	if p.IsBomb() {
		h.KeepBombsProbability = ema(h.KeepBombsProbability, 0, habitAlpha)
		if o.Answered != nil && !o.Answered.IsBomb() {
			h.TakeRisksProbability = ema(h.TakeRisksProbability, 1, habitAlpha)
		}
	} else {
		h.KeepBombsProbability = ema(h.KeepBombsProbability, 1, habitAlpha/4)
		if o.Answered != nil {
			h.TakeRisksProbability = ema(h.TakeRisksProbability, 0, habitAlpha/2)
		}
	}

	if o.PartnerWinning {
		h.TeamworkTendency = ema(h.TeamworkTendency, 0, habitAlpha)
	}
}

// Preference returns the affinity for a pattern family, 0 when never seen.
func (pm *PlayerMemory) Preference(t domain.PatternType) float64 {
	return pm.PatternPreferences[t]
}

// FavoriteType returns the family with the highest affinity.
func (pm *PlayerMemory) FavoriteType() (domain.PatternType, float64) {
	var best domain.PatternType
	bestV := -1.0
	for _, t := range domain.PatternTypes {
		if v, ok := pm.PatternPreferences[t]; ok && v > bestV {
			best, bestV = t, v
		}
	}
	if bestV < 0 {
		return "", 0
	}
	return best, bestV
}

func ema(prev, target, alpha float64) float64 {
	return internal.Clamp(prev*(1-alpha)+target*alpha, 0, 1)
}
