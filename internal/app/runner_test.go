package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"guandan/internal/bot"
	"guandan/internal/domain"
	"guandan/internal/ports"
)

type mapStore struct {
	saved map[string]bot.AgentSnapshot
	saves int
}

func (m *mapStore) Save(_ context.Context, seatID string, s bot.AgentSnapshot) error {
	if m.saved == nil {
		m.saved = make(map[string]bot.AgentSnapshot)
	}
	m.saved[seatID] = s
	m.saves++
	return nil
}

func (m *mapStore) Load(_ context.Context, seatID string) (bot.AgentSnapshot, error) {
	s, ok := m.saved[seatID]
	if !ok {
		return bot.AgentSnapshot{}, ports.ErrSnapshotNotFound
	}
	return s, nil
}

func (m *mapStore) Delete(_ context.Context, seatID string) error {
	delete(m.saved, seatID)
	return nil
}

func selfPlayTable(t *testing.T) []*bot.Agent {
	t.Helper()
	f := bot.NewFactory(bot.DefaultFactoryConfig(), NewRules(), 11)
	specs := []bot.SeatSpec{
		{Strategy: bot.StrategyRandom, Difficulty: bot.DifficultyBeginner},
		{Strategy: bot.StrategyGreedy, Difficulty: bot.DifficultyIntermediate},
		{Strategy: bot.StrategyMemory, Difficulty: bot.DifficultyAdvanced},
		{Strategy: bot.StrategyGreedy, Difficulty: bot.DifficultyExpert},
	}
	agents := make([]*bot.Agent, 0, len(specs))
	for i, spec := range specs {
		a, err := f.CreateAIPlayer(fmt.Sprintf("ai-%d", i+1), spec)
		require.NoError(t, err)
		agents = append(agents, a)
	}
	t.Cleanup(func() {
		for _, a := range agents {
			_ = a.Close()
		}
	})
	return agents
}

func TestRunnerPlaysFullGames(t *testing.T) {
	agents := selfPlayTable(t)
	store := &mapStore{}
	runner := NewRunner(NewService(rand.New(rand.NewSource(5))), agents, store)

	for game := 0; game < 2; game++ {
		result, err := runner.Play(context.Background())
		require.NoError(t, err)

		require.ElementsMatch(t, []string{"ai-1", "ai-2", "ai-3", "ai-4"}, result.FinishOrder)
		total := 0
		for _, v := range result.Scores {
			total += v
		}
		require.Equal(t, 6, total)
		require.Greater(t, result.Rounds, 1)
		require.Greater(t, result.Turns, result.Rounds)
	}
	require.Equal(t, 8, store.saves)

	for _, a := range agents {
		require.NotEmpty(t, a.DecisionHistory(), a.UserID)
		require.NotEmpty(t, a.GameMemory().Snapshots, a.UserID)
		require.Len(t, a.GameMemory().PlayerMemories, 3, "%s learns about every other seat", a.UserID)

		var resolved int
		for _, r := range a.GameMemory().RecordsFor(a.UserID) {
			if r.Resolved {
				resolved++
			}
		}
		require.Positive(t, resolved, a.UserID)
		require.Positive(t, a.Strategy().State().DecisionCount)
	}
}

func TestRunnerSummaries(t *testing.T) {
	agents := selfPlayTable(t)
	runner := NewRunner(NewService(rand.New(rand.NewSource(5))), agents, nil)
	_, err := runner.Play(context.Background())
	require.NoError(t, err)

	summaries := runner.Summaries()
	require.Len(t, summaries, 4)
	for i, s := range summaries {
		require.Equal(t, fmt.Sprintf("ai-%d", i+1), s.Seat)
		require.NotEmpty(t, s.Strategy)
		require.GreaterOrEqual(t, s.WinRate, 0.0)
		require.LessOrEqual(t, s.WinRate, 1.0)

		partner := summaries[(i+2)%4].Seat
		for _, r := range agents[i].GameMemory().RecordsFor(partner) {
			if r.Choice == domain.ChoicePlay {
				require.NotEmpty(t, s.PartnerFavorite, "%s has watched %s play", s.Seat, partner)
				require.Greater(t, s.PartnerAffinity, 0.0)
				break
			}
		}
	}
	require.Equal(t, bot.StrategyMemory, summaries[2].Strategy)
}

func TestRunnerRestoresMemory(t *testing.T) {
	store := &mapStore{}
	first := selfPlayTable(t)
	_, err := NewRunner(NewService(rand.New(rand.NewSource(9))), first, store).Play(context.Background())
	require.NoError(t, err)

	fresh := selfPlayTable(t)
	fresh[0].ClearGameMemory()
	require.NoError(t, NewRunner(NewService(nil), fresh, store).Restore(context.Background()))

	for i, a := range fresh {
		require.Equal(t, len(first[i].GameMemory().PlayRecords), len(a.GameMemory().PlayRecords), a.UserID)
		require.Equal(t, a.UserID, a.GameMemory().OwnerID)
	}

	empty := &mapStore{}
	require.NoError(t, NewRunner(NewService(nil), selfPlayTable(t), empty).Restore(context.Background()))
}

// brokenRules fails every enumeration, so its seat can only pass.
type brokenRules struct{ *Rules }

func (brokenRules) LegalPlays([]domain.Card, *domain.Pattern, domain.Session) ([]*domain.Pattern, error) {
	return nil, errors.New("enumeration unavailable")
}

func TestRunnerRecordsForcedLead(t *testing.T) {
	agents := selfPlayTable(t)
	broken, err := bot.Create(bot.AgentConfig{ID: "ai-1", Strategy: bot.StrategyGreedy, Difficulty: bot.DifficultyExpert, Seed: 1}, brokenRules{NewRules()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = broken.Close() })
	agents[0] = broken

	runner := NewRunner(NewService(rand.New(rand.NewSource(5))), agents, nil)
	players := make([]*domain.Player, len(agents))
	for i, a := range agents {
		players[i] = a.Player
	}
	table, _, err := runner.svc.StartGame(players)
	require.NoError(t, err)

	require.NoError(t, runner.turn(table))
	require.Equal(t, "ai-1", table.Leader(), "the seat that tried to pass on lead played instead")

	history := broken.DecisionHistory()
	require.Len(t, history, 1)
	require.Equal(t, domain.ChoicePlay, history[0].Option.Choice)

	own := broken.GameMemory().RecordsFor("ai-1")
	require.Len(t, own, 1)
	require.Equal(t, domain.ChoicePlay, own[0].Choice)
	require.NotNil(t, own[0].Pattern)
	require.Equal(t, domain.PatternSingle, own[0].Pattern.Type)

	others := agents[1].GameMemory().RecordsFor("ai-1")
	require.Len(t, others, 1)
	require.Equal(t, domain.ChoicePlay, others[0].Choice)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(NewService(rand.New(rand.NewSource(3))), selfPlayTable(t), nil).Play(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
