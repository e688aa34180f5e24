package bot

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"guandan/internal/domain"
)

const aiIDPrefix = "ai-"

// FactoryConfig holds the defaults applied to new seats.
type FactoryConfig struct {
	DefaultStrategy   StrategyKind `json:"defaultStrategy" mapstructure:"defaultStrategy"`
	DefaultDifficulty Difficulty   `json:"defaultDifficulty" mapstructure:"defaultDifficulty"`
	DefaultSkillLevel int          `json:"defaultSkillLevel" mapstructure:"defaultSkillLevel"`
	EnableAutoFill    bool         `json:"enableAutoFill" mapstructure:"enableAutoFill"`
	MaxAIPlayers      int          `json:"maxAIPlayers" mapstructure:"maxAIPlayers"`
}

// DefaultFactoryConfig is random / intermediate / 50 / auto-fill on / 3 seats.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		DefaultStrategy:   StrategyRandom,
		DefaultDifficulty: DifficultyIntermediate,
		DefaultSkillLevel: 50,
		EnableAutoFill:    true,
		MaxAIPlayers:      3,
	}
}

// FactoryConfigUpdate is a partial config. Nil fields keep the current value.
type FactoryConfigUpdate struct {
	DefaultStrategy   *StrategyKind
	DefaultDifficulty *Difficulty
	DefaultSkillLevel *int
	EnableAutoFill    *bool
	MaxAIPlayers      *int
}

// SeatSpec describes one seat to create. Zero values fall back to the factory defaults.
type SeatSpec struct {
	Name       string
	Strategy   StrategyKind
	Difficulty Difficulty
	SkillLevel *int
}

// BatchOptions controls CreateAIPlayers.
type BatchOptions struct {
	StartIndex        int
	ExistingPlayerIDs []string
	// DifficultyDistribution maps a difficulty to a non-negative weight.
	DifficultyDistribution map[Difficulty]float64
}

// Factory creates AI seats. It is owned by one room service and is not
// safe for concurrent use.
type Factory struct {
	cfg   FactoryConfig
	rules RuleService
	rng   *rand.Rand
}

func NewFactory(cfg FactoryConfig, rules RuleService, seed uint64) *Factory {
	return &Factory{cfg: cfg, rules: rules, rng: rand.New(rand.NewSource(seed))}
}

func (f *Factory) Config() FactoryConfig {
	return f.cfg
}

// UpdateConfig merges u into the config and returns the result. An unknown
// strategy or difficulty rejects the whole update.
func (f *Factory) UpdateConfig(u FactoryConfigUpdate) (FactoryConfig, error) {
	if u.DefaultStrategy != nil {
		if _, err := ParseStrategyKind(string(*u.DefaultStrategy)); err != nil {
			return f.cfg, err
		}
	}
	if u.DefaultDifficulty != nil {
		if _, err := ParseDifficulty(string(*u.DefaultDifficulty)); err != nil {
			return f.cfg, err
		}
	}

	if u.DefaultStrategy != nil {
		f.cfg.DefaultStrategy = *u.DefaultStrategy
	}
	if u.DefaultDifficulty != nil {
		f.cfg.DefaultDifficulty = *u.DefaultDifficulty
	}
	if u.DefaultSkillLevel != nil {
		f.cfg.DefaultSkillLevel = *u.DefaultSkillLevel
	}
	if u.EnableAutoFill != nil {
		f.cfg.EnableAutoFill = *u.EnableAutoFill
	}
	if u.MaxAIPlayers != nil {
		f.cfg.MaxAIPlayers = *u.MaxAIPlayers
	}
	return f.cfg, nil
}

// CreateAIPlayer builds one seat.
func (f *Factory) CreateAIPlayer(id string, spec SeatSpec) (*Agent, error) {
	cfg := AgentConfig{
		ID:         id,
		Name:       spec.Name,
		Strategy:   spec.Strategy,
		Difficulty: spec.Difficulty,
		SkillLevel: f.cfg.DefaultSkillLevel,
		Seed:       f.rng.Uint32(),
	}
	if cfg.Strategy == "" {
		cfg.Strategy = f.cfg.DefaultStrategy
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = f.cfg.DefaultDifficulty
	}
	if spec.SkillLevel != nil {
		cfg.SkillLevel = *spec.SkillLevel
	}
	if cfg.Name == "" {
		cfg.Name = DisplayName(cfg.Difficulty)
	}

	agent, err := Create(cfg, f.rules)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("seat", id).
		Str("strategy", string(cfg.Strategy)).
		Str("difficulty", string(cfg.Difficulty)).
		Msg("ai seat created")
	return agent, nil
}

// CreateAIPlayers builds count seats with ids ai-{StartIndex+i}. An id that
// collides with an existing one gets a -1, -2... suffix. With a difficulty
// distribution the seats' difficulties follow the weights exactly.
func (f *Factory) CreateAIPlayers(count int, opts BatchOptions) ([]*Agent, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count == 0 {
		return nil, nil
	}

	var difficulties []Difficulty
	if len(opts.DifficultyDistribution) > 0 {
		var err error
		difficulties, err = f.apportion(count, opts.DifficultyDistribution)
		if err != nil {
			return nil, err
		}
	}

	taken := make(map[string]bool, len(opts.ExistingPlayerIDs)+count)
	for _, id := range opts.ExistingPlayerIDs {
		taken[id] = true
	}

	agents := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		id := uniqueID(fmt.Sprintf("%s%d", aiIDPrefix, opts.StartIndex+i), taken)
		taken[id] = true

		spec := SeatSpec{}
		if difficulties != nil {
			spec.Difficulty = difficulties[i]
		}
		agent, err := f.CreateAIPlayer(id, spec)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

// CalculateNeededAIPlayers returns how many AI seats fill a table with humanCount humans.
func (f *Factory) CalculateNeededAIPlayers(humanCount int) int {
	if !f.cfg.EnableAutoFill {
		return 0
	}
	n := domain.TableSize - humanCount
	if n > f.cfg.MaxAIPlayers {
		n = f.cfg.MaxAIPlayers
	}
	if n < 0 {
		n = 0
	}
	return n
}

// CreateForRoom fills the empty seats of a room whose humans are humanIDs.
func (f *Factory) CreateForRoom(humanIDs []string) ([]*Agent, error) {
	return f.CreateAIPlayers(f.CalculateNeededAIPlayers(len(humanIDs)), BatchOptions{
		StartIndex:        1,
		ExistingPlayerIDs: humanIDs,
	})
}

// apportion turns weights into exactly count difficulties using the largest
// remainder method, then shuffles them.
func (f *Factory) apportion(count int, weights map[Difficulty]float64) ([]Difficulty, error) {
	total := 0.0
	for d, w := range weights {
		if _, err := ParseDifficulty(string(d)); err != nil {
			return nil, err
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %v for %s", ErrInvalidCount, w, d)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: difficulty weights sum to zero", ErrInvalidCount)
	}

	type share struct {
		d     Difficulty
		n     int
		frac  float64
		order int
	}
	var shares []share
	assigned := 0
	for i, d := range Difficulties {
		w, ok := weights[d]
		if !ok {
			continue
		}
		exact := float64(count) * w / total
		n := int(math.Floor(exact))
		shares = append(shares, share{d: d, n: n, frac: exact - float64(n), order: i})
		assigned += n
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].frac != shares[j].frac {
			return shares[i].frac > shares[j].frac
		}
		return shares[i].order < shares[j].order
	})
	for i := 0; assigned < count; i = (i + 1) % len(shares) {
		shares[i].n++
		assigned++
	}

	out := make([]Difficulty, 0, count)
	for _, s := range shares {
		for k := 0; k < s.n; k++ {
			out = append(out, s.d)
		}
	}
	f.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func uniqueID(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if !taken[id] {
			return id
		}
	}
}
