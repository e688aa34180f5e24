package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"guandan/internal/app"
	"guandan/internal/bot"
	"guandan/internal/config"
	"guandan/internal/domain"
	"guandan/internal/ports"
	"guandan/internal/ports/redis"
)

var (
	configFile string
	games      int
	seed       uint64
	redisAddr  string
	strategies []string
)

var rootCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Plays full games between four AI seats",
	Long: `selfplay seats four AI agents at one table and plays games until the
requested count is reached. With a redis address the agents' memory is
restored before the first game and saved after every game.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if err := config.SetupLogging(cfg.Log.Level, cfg.Log.Pretty); err != nil {
			return err
		}
		if cmd.Flags().Changed("games") {
			cfg.SelfPlay.Games = games
		}
		if cmd.Flags().Changed("seed") {
			cfg.SelfPlay.Seed = seed
		}
		if cmd.Flags().Changed("redis") {
			cfg.Redis.Addr = redisAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, cfg)
	},
}

func run(ctx context.Context, cfg *config.Config) error {
	factoryCfg, err := cfg.Factory()
	if err != nil {
		return err
	}
	factory := bot.NewFactory(factoryCfg, app.NewRules(), cfg.SelfPlay.Seed)

	agents := make([]*bot.Agent, 0, domain.TableSize)
	for i := 0; i < domain.TableSize; i++ {
		spec := bot.SeatSpec{}
		if i < len(strategies) {
			kind, err := bot.ParseStrategyKind(strategies[i])
			if err != nil {
				return err
			}
			spec.Strategy = kind
		}
		agent, err := factory.CreateAIPlayer(fmt.Sprintf("ai-%d", i+1), spec)
		if err != nil {
			return err
		}
		defer agent.Close()
		agents = append(agents, agent)
	}

	var store ports.MemoryStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = redis.NewMemoryStore(rdb, cfg.Redis.TTL())
	}

	runner := app.NewRunner(app.NewService(rand.New(rand.NewSource(cfg.SelfPlay.Seed))), agents, store)
	if err := runner.Restore(ctx); err != nil {
		return err
	}

	wins := make(map[string]int, len(agents))
	for game := 1; game <= cfg.SelfPlay.Games; game++ {
		result, err := runner.Play(ctx)
		if err != nil {
			return fmt.Errorf("game %d: %w", game, err)
		}
		wins[result.FinishOrder[0]]++
		log.Info().
			Int("game", game).
			Strs("finishOrder", result.FinishOrder).
			Int("rounds", result.Rounds).
			Int("turns", result.Turns).
			Msg("game finished")
	}

	for _, sum := range runner.Summaries() {
		log.Info().
			Str("seat", sum.Seat).
			Str("strategy", string(sum.Strategy)).
			Str("difficulty", string(sum.Difficulty)).
			Int("wins", wins[sum.Seat]).
			Float64("successRate", sum.SuccessRate).
			Float64("roundWinRate", sum.WinRate).
			Str("partnerFavorite", string(sum.PartnerFavorite)).
			Msg("seat summary")
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.Flags().IntVar(&games, "games", 10, "number of games to play")
	rootCmd.Flags().Uint64Var(&seed, "seed", 1, "seed for dealing and seat strategies")
	rootCmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the memory store")
	rootCmd.Flags().StringSliceVar(&strategies, "strategies", nil, "strategy per seat, e.g. random,greedy,memory,greedy")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("selfplay failed")
		os.Exit(1)
	}
}
