package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"guandan/internal/bot"
)

// EnvPrefix prefixes every environment override, e.g. GUANDAN_AI_DEFAULTSTRATEGY.
const EnvPrefix = "GUANDAN"

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	AI       AIConfig       `mapstructure:"ai"`
	Redis    RedisConfig    `mapstructure:"redis"`
	SelfPlay SelfPlayConfig `mapstructure:"selfplay"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// AIConfig holds the seat factory defaults.
type AIConfig struct {
	DefaultStrategy   string `mapstructure:"defaultStrategy"`
	DefaultDifficulty string `mapstructure:"defaultDifficulty"`
	DefaultSkillLevel int    `mapstructure:"defaultSkillLevel"`
	EnableAutoFill    bool   `mapstructure:"enableAutoFill"`
	MaxAIPlayers      int    `mapstructure:"maxAIPlayers"`
	Seed              uint64 `mapstructure:"seed"`
}

// RedisConfig locates the memory snapshot store. An empty Addr disables it.
type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttlSeconds"`
}

func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

type SelfPlayConfig struct {
	Games int    `mapstructure:"games"`
	Seed  uint64 `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	def := bot.DefaultFactoryConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ai.defaultStrategy", string(def.DefaultStrategy))
	v.SetDefault("ai.defaultDifficulty", string(def.DefaultDifficulty))
	v.SetDefault("ai.defaultSkillLevel", def.DefaultSkillLevel)
	v.SetDefault("ai.enableAutoFill", def.EnableAutoFill)
	v.SetDefault("ai.maxAIPlayers", def.MaxAIPlayers)
	v.SetDefault("ai.seed", 0)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttlSeconds", 7*24*3600)
	v.SetDefault("selfplay.games", 10)
	v.SetDefault("selfplay.seed", 1)
}

// Load reads the YAML file at path, if any, over the defaults and applies
// GUANDAN_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Factory converts the ai section into factory defaults.
func (c *Config) Factory() (bot.FactoryConfig, error) {
	strategy, err := bot.ParseStrategyKind(c.AI.DefaultStrategy)
	if err != nil {
		return bot.FactoryConfig{}, fmt.Errorf("ai.defaultStrategy: %w", err)
	}
	difficulty, err := bot.ParseDifficulty(c.AI.DefaultDifficulty)
	if err != nil {
		return bot.FactoryConfig{}, fmt.Errorf("ai.defaultDifficulty: %w", err)
	}
	return bot.FactoryConfig{
		DefaultStrategy:   strategy,
		DefaultDifficulty: difficulty,
		DefaultSkillLevel: c.AI.DefaultSkillLevel,
		EnableAutoFill:    c.AI.EnableAutoFill,
		MaxAIPlayers:      c.AI.MaxAIPlayers,
	}, nil
}

// SetupLogging sets the global zerolog level and, when pretty, a console writer on stderr.
func SetupLogging(level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}
