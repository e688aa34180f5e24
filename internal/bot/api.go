package bot

import (
	"errors"
	"fmt"
	"time"

	"guandan/internal/bot/brain"
	"guandan/internal/domain"
)

var (
	ErrUnknownStrategy   = errors.New("unknown strategy")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidCount      = errors.New("invalid seat count")
)

// Difficulty orders how demanding a seat is about the options it accepts.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Difficulties lists every level, easiest first.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// StrategyKind names one of the concrete strategies.
type StrategyKind string

const (
	StrategyRandom StrategyKind = "random"
	StrategyGreedy StrategyKind = "greedy"
	StrategyMemory StrategyKind = "memory"
)

// ParseStrategyKind validates a strategy name.
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch k := StrategyKind(s); k {
	case StrategyRandom, StrategyGreedy, StrategyMemory:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Validation is the rule service's verdict on a proposed play.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// RuleService is the authoritative game-law collaborator.
type RuleService interface {
	ValidatePlay(playerID string, cards []domain.Card, current *domain.Pattern, session domain.Session) Validation
	// LegalPlays enumerates every combination in hand that may be played over current.
	LegalPlays(hand []domain.Card, current *domain.Pattern, session domain.Session) ([]*domain.Pattern, error)
	CanBeat(p, current *domain.Pattern) bool
}

// PlayOption is a scored candidate action.
type PlayOption struct {
	Choice     domain.Choice   `json:"choice"`
	Cards      []domain.Card   `json:"cards,omitempty"`
	Pattern    *domain.Pattern `json:"pattern,omitempty"`
	Score      float64         `json:"score"`
	Reason     string          `json:"reason"`
	Validation Validation      `json:"validation"`
}

// IsPass reports whether the option passes the turn.
func (o PlayOption) IsPass() bool {
	return o.Choice == domain.ChoicePass
}

// Decision is one entry of an agent's decision history.
type Decision struct {
	Round       int           `json:"round"`
	Option      PlayOption    `json:"option"`
	OptionCount int           `json:"optionCount"`
	Strategy    StrategyKind  `json:"strategy"`
	Elapsed     time.Duration `json:"elapsed"`
	At          time.Time     `json:"at"`
}

// StrategyState is the uniform introspection record of a strategy.
type StrategyState struct {
	DecisionCount       int           `json:"decisionCount"`
	SuccessfulDecisions int           `json:"successfulDecisions"`
	AverageDecisionTime time.Duration `json:"averageDecisionTime"`
	LastDecisionTime    time.Duration `json:"lastDecisionTime"`
}

// Strategy is a policy that scores options and picks one. The set of
// implementations is closed: Random, Greedy and Memory.
type Strategy interface {
	Kind() StrategyKind
	Difficulty() Difficulty

	// EvaluatePlay scores playing p in [0,100].
	EvaluatePlay(p *domain.Pattern, session domain.Session, memory *brain.GameMemory) float64
	// EvaluatePass scores passing in [0,100].
	EvaluatePass(session domain.Session, memory *brain.GameMemory) float64
	// SelectBestPlay picks one option. Options below the difficulty threshold
	// are ignored unless none clear it, in which case the best overall wins.
	// An empty slice yields a pass with the strategy's default score.
	SelectBestPlay(options []PlayOption, session domain.Session, memory *brain.GameMemory) PlayOption

	// UpdateMemory is called once per observed play, own or not.
	UpdateMemory(record brain.PlayRecord, session domain.Session, memory *brain.GameMemory)
	// UpdateGameState is called once per round.
	UpdateGameState(snapshot brain.Snapshot, memory *brain.GameMemory)

	State() StrategyState
	ResetState()
	SuccessRate() float64

	sealed()
}
