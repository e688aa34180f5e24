package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"guandan/internal/bot"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guandan.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 7*24*time.Hour, cfg.Redis.TTL())

	fc, err := cfg.Factory()
	require.NoError(t, err)
	require.Equal(t, bot.DefaultFactoryConfig(), fc)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
ai:
  defaultStrategy: greedy
  defaultDifficulty: expert
  maxAIPlayers: 2
redis:
  addr: localhost:6379
  ttlSeconds: 60
selfplay:
  games: 3
`)
	t.Setenv("GUANDAN_AI_DEFAULTDIFFICULTY", "beginner")
	t.Setenv("GUANDAN_SELFPLAY_SEED", "99")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, time.Minute, cfg.Redis.TTL())
	require.Equal(t, 3, cfg.SelfPlay.Games)
	require.Equal(t, uint64(99), cfg.SelfPlay.Seed)

	fc, err := cfg.Factory()
	require.NoError(t, err)
	require.Equal(t, bot.StrategyGreedy, fc.DefaultStrategy)
	require.Equal(t, bot.DifficultyBeginner, fc.DefaultDifficulty, "environment wins over the file")
	require.Equal(t, 2, fc.MaxAIPlayers)
	require.Equal(t, 50, fc.DefaultSkillLevel)
	require.True(t, fc.EnableAutoFill)
}

func TestFactoryRejectsUnknownNames(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ai:\n  defaultStrategy: telepathic\n"))
	require.NoError(t, err)
	_, err = cfg.Factory()
	require.ErrorIs(t, err, bot.ErrUnknownStrategy)

	cfg, err = Load(writeConfig(t, "ai:\n  defaultDifficulty: nightmare\n"))
	require.NoError(t, err)
	_, err = cfg.Factory()
	require.ErrorIs(t, err, bot.ErrUnknownDifficulty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.NoError(t, SetupLogging("warn", false))
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	require.Error(t, SetupLogging("chatty", false))
}
