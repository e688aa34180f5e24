package nakama

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"guandan/internal/app"
	"guandan/internal/bot"
	"guandan/internal/config"
)

// InitModule loads the plugin config and registers the AI seat RPCs.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	cfg, err := config.Load(os.Getenv(configPathEnv))
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		return err
	}
	factoryCfg, err := cfg.Factory()
	if err != nil {
		logger.Error("Invalid AI config: %v", err)
		return err
	}

	seed := cfg.AI.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	svc := newSeatService(bot.NewFactory(factoryCfg, app.NewRules(), seed), NewNakamaMemoryStore(nk))
	if err := svc.register(initializer); err != nil {
		return err
	}

	logger.Info("Guandan AI module loaded (strategy=%s, difficulty=%s).", factoryCfg.DefaultStrategy, factoryCfg.DefaultDifficulty)
	return nil
}
