package bot

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"guandan/internal/bot/brain"
	"guandan/internal/domain"
)

// MaxDecisionHistory bounds the decisions an agent remembers.
const MaxDecisionHistory = 50

// AgentConfig describes how an AI seat plays.
type AgentConfig struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Strategy   StrategyKind `json:"strategy"`
	Difficulty Difficulty   `json:"difficulty"`
	SkillLevel int          `json:"skillLevel"`
	Seed       uint32       `json:"seed"`
}

// Agent is an AI seat: a Player driven by a Strategy, with its own memory.
type Agent struct {
	*domain.Player

	cfg      AgentConfig
	strategy Strategy
	rules    RuleService
	memory   *brain.GameMemory
	history  []Decision
}

// Create builds an agent and its strategy from cfg.
func Create(cfg AgentConfig, rules RuleService) (*Agent, error) {
	strategy, err := NewStrategy(cfg.Strategy, cfg.Difficulty, cfg.SkillLevel, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("create agent %s: %w", cfg.ID, err)
	}
	return NewAgent(domain.NewPlayer(cfg.ID, cfg.Name, domain.PlayerAI), cfg, strategy, rules), nil
}

// NewAgent binds an existing seat to a strategy.
func NewAgent(player *domain.Player, cfg AgentConfig, strategy Strategy, rules RuleService) *Agent {
	cfg.ID = player.UserID
	cfg.Strategy = strategy.Kind()
	cfg.Difficulty = strategy.Difficulty()
	return &Agent{
		Player:   player,
		cfg:      cfg,
		strategy: strategy,
		rules:    rules,
		memory:   brain.NewMemory(player.UserID),
	}
}

func (a *Agent) Config() AgentConfig           { return a.cfg }
func (a *Agent) Strategy() Strategy            { return a.strategy }
func (a *Agent) GameMemory() *brain.GameMemory { return a.memory }

// DecisionHistory returns the recent decisions, oldest first.
func (a *Agent) DecisionHistory() []Decision {
	return append([]Decision(nil), a.history...)
}

// GetPossiblePlays lists the scored options for the current table. It never
// fails: any error or panic from the rule service degrades to a single pass.
func (a *Agent) GetPossiblePlays(session domain.Session) (options []PlayOption) {
	current := currentPattern(session)
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("seat", a.UserID).Interface("panic", r).Msg("play enumeration failed, passing")
			options = []PlayOption{a.passOption(session, "enumeration failed")}
		}
	}()

	patterns, err := a.rules.LegalPlays(a.HandCards(), current, session)
	if err != nil {
		log.Warn().Str("seat", a.UserID).Err(err).Msg("play enumeration failed, passing")
		return []PlayOption{a.passOption(session, "enumeration failed")}
	}

	for _, p := range patterns {
		v := a.rules.ValidatePlay(a.UserID, p.Cards, current, session)
		if !v.Valid {
			continue
		}
		options = append(options, PlayOption{
			Choice:     domain.ChoicePlay,
			Cards:      p.Cards,
			Pattern:    p,
			Score:      a.strategy.EvaluatePlay(p, session, a.memory),
			Reason:     fmt.Sprintf("%s: %s", a.strategy.Kind(), p.Type),
			Validation: v,
		})
	}

	if current != nil || len(options) == 0 {
		options = append(options, a.passOption(session, "pass"))
	}
	return options
}

func (a *Agent) passOption(session domain.Session, reason string) PlayOption {
	return PlayOption{
		Choice:     domain.ChoicePass,
		Score:      a.strategy.EvaluatePass(session, a.memory),
		Reason:     fmt.Sprintf("%s: %s", a.strategy.Kind(), reason),
		Validation: Validation{Valid: true},
	}
}

// Decide picks this seat's action. It does not touch the hand; the table
// applies the returned option.
func (a *Agent) Decide(session domain.Session) (PlayOption, error) {
	if !a.CanPlay() {
		return PlayOption{}, fmt.Errorf("decide for %s: %w", a.UserID, domain.ErrCannotPlay)
	}
	if a.State == domain.StateReady {
		if err := a.StartThinking(); err != nil {
			return PlayOption{}, err
		}
	}

	start := time.Now()
	options := a.GetPossiblePlays(session)
	choice := a.strategy.SelectBestPlay(options, session, a.memory)
	round := roundNumber(session)

	a.history = append(a.history, Decision{
		Round:       round,
		Option:      choice,
		OptionCount: len(options),
		Strategy:    a.strategy.Kind(),
		Elapsed:     time.Since(start),
		At:          time.Now(),
	})
	if len(a.history) > MaxDecisionHistory {
		a.history = a.history[len(a.history)-MaxDecisionHistory:]
	}

	record := brain.PlayRecord{
		PlayerID:  a.UserID,
		Cards:     choice.Cards,
		Pattern:   choice.Pattern,
		Choice:    choice.Choice,
		Round:     round,
		Valid:     choice.IsPass() || choice.Validation.Valid,
		Timestamp: time.Now(),
	}
	a.memory.AddPlayRecord(record)
	a.strategy.UpdateMemory(record, session, a.memory)

	if err := a.EndTurn(); err != nil {
		return PlayOption{}, err
	}

	log.Debug().
		Str("seat", a.UserID).
		Str("strategy", string(a.strategy.Kind())).
		Str("choice", describe(choice)).
		Float64("score", choice.Score).
		Int("options", len(options)).
		Msg(choice.Reason)
	return choice, nil
}

// AmendLastDecision replaces the most recent decision and its play record
// with the option the table actually applied, e.g. a forced lead after a
// pass that was not allowed.
func (a *Agent) AmendLastDecision(applied PlayOption) {
	if n := len(a.history); n > 0 {
		a.history[n-1].Option = applied
	}
	for i := len(a.memory.PlayRecords) - 1; i >= 0; i-- {
		r := &a.memory.PlayRecords[i]
		if r.PlayerID != a.UserID {
			continue
		}
		if r.Resolved {
			return
		}
		r.Choice = applied.Choice
		r.Cards = applied.Cards
		r.Pattern = applied.Pattern
		r.Valid = true
		return
	}
}

// Observed is another seat's accepted action together with the table it faced.
type Observed struct {
	Record brain.PlayRecord
	// Answered is the pattern the seat had to beat, nil when it led.
	Answered *domain.Pattern
	// Leader is the seat holding the round before the action.
	Leader string
}

// ObservePlay feeds another seat's action into memory and the strategy.
// Own actions are already recorded by Decide and are ignored here.
func (a *Agent) ObservePlay(o Observed, session domain.Session) {
	if o.Record.PlayerID == a.UserID {
		return
	}
	a.memory.AddPlayRecord(o.Record)

	partner := brain.PartnerID(session, o.Record.PlayerID)
	a.memory.EnsurePlayer(o.Record.PlayerID).Observe(brain.Observation{
		Record:         o.Record,
		Answered:       o.Answered,
		PartnerWinning: partner != "" && o.Leader == partner,
	})
	a.strategy.UpdateMemory(o.Record, session, a.memory)
}

// ResolveRound marks the plays of round as resolved with winnerID as the
// taker and reports this seat's own outcome to the strategy.
func (a *Agent) ResolveRound(round int, winnerID string, session domain.Session) {
	lastOwn := -1
	for i := range a.memory.PlayRecords {
		r := &a.memory.PlayRecords[i]
		if r.Round != round || r.Choice != domain.ChoicePlay || r.Resolved {
			continue
		}
		r.Resolved = true
		r.Won = r.PlayerID == winnerID
		if r.PlayerID == a.UserID {
			lastOwn = i
		}
	}
	if lastOwn >= 0 {
		a.strategy.UpdateMemory(a.memory.PlayRecords[lastOwn], session, a.memory)
	}
}

// ObserveRound records a round summary and lets the strategy react to the phase.
func (a *Agent) ObserveRound(snapshot brain.Snapshot) {
	a.memory.AddSnapshot(snapshot)
	a.strategy.UpdateGameState(snapshot, a.memory)
}

// UpdatePlayerMemory merges a partial update into the memory kept for id.
func (a *Agent) UpdatePlayerMemory(id string, update brain.PlayerMemoryUpdate) *brain.PlayerMemory {
	return a.memory.UpdatePlayerMemory(id, update)
}

// SetStrategy swaps the policy. Memory and history are kept.
func (a *Agent) SetStrategy(s Strategy) {
	if c, ok := a.strategy.(io.Closer); ok && a.strategy != s {
		_ = c.Close()
	}
	a.strategy = s
	a.cfg.Strategy = s.Kind()
	a.cfg.Difficulty = s.Difficulty()
}

// ClearGameMemory empties snapshots, play records and player memories together.
func (a *Agent) ClearGameMemory() {
	a.memory.Reset()
}

// Close releases strategy resources.
func (a *Agent) Close() error {
	if c, ok := a.strategy.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// AgentSnapshot is the persistent form of an agent.
type AgentSnapshot struct {
	Player  domain.PlayerSnapshot `json:"player"`
	Config  AgentConfig           `json:"config"`
	Memory  *brain.GameMemory     `json:"memory"`
	History []Decision            `json:"history"`
}

// Snapshot returns a copy of the agent's state. Changing it does not affect the agent.
func (a *Agent) Snapshot() AgentSnapshot {
	return AgentSnapshot{
		Player:  a.ToSnapshot(),
		Config:  a.cfg,
		Memory:  a.memory.Clone(),
		History: a.DecisionHistory(),
	}
}

// RestoreSnapshot replaces memory and history with the snapshot's. The seat
// and strategy are left as they are.
func (a *Agent) RestoreSnapshot(s AgentSnapshot) {
	if s.Memory != nil {
		a.memory = s.Memory.Clone()
		a.memory.OwnerID = a.UserID
		if a.memory.PlayerMemories == nil {
			a.memory.PlayerMemories = make(map[string]*brain.PlayerMemory)
		}
	}
	a.history = append([]Decision(nil), s.History...)
}

// AgentFromSnapshot rebuilds an agent, its seat and its strategy.
func AgentFromSnapshot(s AgentSnapshot, rules RuleService) (*Agent, error) {
	player, err := domain.PlayerFromSnapshot(s.Player)
	if err != nil {
		return nil, err
	}
	strategy, err := NewStrategy(s.Config.Strategy, s.Config.Difficulty, s.Config.SkillLevel, s.Config.Seed)
	if err != nil {
		return nil, err
	}
	a := NewAgent(player, s.Config, strategy, rules)
	a.RestoreSnapshot(s)
	return a, nil
}
