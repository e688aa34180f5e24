package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"guandan/internal/bot"
	"guandan/internal/bot/brain"
	"guandan/internal/domain"
	"guandan/internal/ports"
)

// maxTurns stops a game that fails to make progress.
const maxTurns = 5000

// GameResult summarizes one finished game.
type GameResult struct {
	FinishOrder []string
	Scores      map[string]int
	Rounds      int
	Turns       int
}

// Runner drives a table of AI seats turn by turn and feeds every seat the
// plays and round outcomes it observes.
type Runner struct {
	svc    *Service
	agents []*bot.Agent
	byID   map[string]*bot.Agent
	store  ports.MemoryStore
}

// NewRunner seats agents in order. store may be nil to skip persistence.
func NewRunner(svc *Service, agents []*bot.Agent, store ports.MemoryStore) *Runner {
	byID := make(map[string]*bot.Agent, len(agents))
	for _, a := range agents {
		byID[a.UserID] = a
	}
	return &Runner{svc: svc, agents: agents, byID: byID, store: store}
}

// Restore loads each seat's stored memory. Seats without a snapshot keep theirs.
func (r *Runner) Restore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	for _, a := range r.agents {
		snap, err := r.store.Load(ctx, a.UserID)
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("restore %s: %w", a.UserID, err)
		}
		a.RestoreSnapshot(snap)
	}
	return nil
}

// Play runs one game to the end and, with a store, saves every seat afterwards.
func (r *Runner) Play(ctx context.Context) (GameResult, error) {
	players := make([]*domain.Player, len(r.agents))
	for i, a := range r.agents {
		players[i] = a.Player
	}
	table, _, err := r.svc.StartGame(players)
	if err != nil {
		return GameResult{}, err
	}

	turns := 0
	for table.Phase() == domain.PhasePlaying {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if turns >= maxTurns {
			return GameResult{}, fmt.Errorf("game stalled after %d turns", turns)
		}
		turns++

		if err := r.turn(table); err != nil {
			return GameResult{}, err
		}
	}
	// The closing round ends with the game instead of three passes.
	if leader := table.Leader(); leader != "" {
		for _, a := range r.agents {
			a.ResolveRound(table.CurrentRound().Number, leader, table)
		}
	}

	result := GameResult{
		FinishOrder: table.FinishOrder(),
		Scores:      table.Scores(),
		Rounds:      table.CurrentRound().Number,
		Turns:       turns,
	}
	log.Info().
		Strs("finish_order", result.FinishOrder).
		Int("rounds", result.Rounds).
		Int("turns", result.Turns).
		Msg("game finished")

	if r.store != nil {
		for _, a := range r.agents {
			if err := r.store.Save(ctx, a.UserID, a.Snapshot()); err != nil {
				return result, fmt.Errorf("save %s: %w", a.UserID, err)
			}
		}
	}
	return result, nil
}

// SeatSummary is one seat's learning state between games.
type SeatSummary struct {
	Seat        string
	Strategy    bot.StrategyKind
	Difficulty  bot.Difficulty
	SuccessRate float64
	// WinRate is the share of the seat's own plays that took their round.
	WinRate float64
	// PartnerFavorite is the pattern family the seat believes its partner prefers.
	PartnerFavorite domain.PatternType
	PartnerAffinity float64
}

// Summaries reports every seat in seat order.
func (r *Runner) Summaries() []SeatSummary {
	out := make([]SeatSummary, 0, len(r.agents))
	for i, a := range r.agents {
		cfg := a.Config()
		s := SeatSummary{
			Seat:        a.UserID,
			Strategy:    cfg.Strategy,
			Difficulty:  cfg.Difficulty,
			SuccessRate: a.Strategy().SuccessRate(),
			WinRate:     brain.NewEstimator(a.GameMemory()).WinRate(a.UserID),
		}
		if len(r.agents) == domain.TableSize {
			partner := r.agents[(i+2)%domain.TableSize].UserID
			if pm, ok := a.GameMemory().PlayerMemory(partner); ok {
				s.PartnerFavorite, s.PartnerAffinity = pm.FavoriteType()
			}
		}
		out = append(out, s)
	}
	return out
}

func (r *Runner) turn(table *Table) error {
	id := table.CurrentRound().CurrentPlayerID
	agent, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}

	round := table.CurrentRound().Number
	answered := table.CurrentPattern()
	leader := table.Leader()

	choice, err := agent.Decide(table)
	if err != nil {
		return err
	}

	var events []Event
	if choice.IsPass() {
		events, err = r.svc.PassTurn(table, id)
		if errors.Is(err, ErrCannotPass) {
			// A seat whose enumeration failed may pass on lead; it leads its lowest card instead.
			lowest := agent.HandCards()[:1]
			log.Warn().Str("seat", id).Msg("pass on lead, playing lowest card")
			events, err = r.svc.PlayCards(table, id, lowest)
			if err == nil {
				pattern, _ := domain.IdentifyPattern(lowest)
				choice = bot.PlayOption{Choice: domain.ChoicePlay, Cards: lowest, Pattern: pattern, Validation: bot.Validation{Valid: true}}
				agent.AmendLastDecision(choice)
			}
		}
	} else {
		events, err = r.svc.PlayCards(table, id, choice.Cards)
	}
	if err != nil {
		return fmt.Errorf("apply %s for %s: %w", choice.Choice, id, err)
	}

	record := brain.PlayRecord{
		PlayerID:  id,
		Cards:     choice.Cards,
		Pattern:   choice.Pattern,
		Choice:    choice.Choice,
		Round:     round,
		Valid:     true,
		Timestamp: time.Now(),
	}
	for _, a := range r.agents {
		a.ObservePlay(bot.Observed{Record: record, Answered: answered, Leader: leader}, table)
	}

	for _, ev := range events {
		resolved, ok := ev.Payload.(RoundResolvedPayload)
		if !ok {
			continue
		}
		snapshot := brain.TakeSnapshot(table)
		for _, a := range r.agents {
			a.ResolveRound(resolved.Round, resolved.WinnerID, table)
			a.ObserveRound(snapshot)
		}
	}
	return nil
}
