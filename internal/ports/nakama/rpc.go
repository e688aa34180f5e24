package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"

	"guandan/internal/bot"
	"guandan/internal/ports"
)

const (
	codeInvalidArgument = 3
	codeInternal        = 13
)

// FillSeatsRequest asks for AI seats next to humanCount humans in one room.
type FillSeatsRequest struct {
	RoomID                 string             `json:"room_id"`
	HumanCount             int                `json:"human_count"`
	ExistingPlayerIDs      []string           `json:"existing_player_ids"`
	DifficultyDistribution map[string]float64 `json:"difficulty_distribution,omitempty"`
}

type SeatInfo struct {
	UserID     string `json:"user_id"`
	Nickname   string `json:"nickname"`
	Strategy   string `json:"strategy"`
	Difficulty string `json:"difficulty"`
	SkillLevel int    `json:"skill_level"`
}

type FillSeatsResponse struct {
	Seats []SeatInfo `json:"seats"`
}

type ResetSeatMemoryRequest struct {
	RoomID string `json:"room_id"`
	SeatID string `json:"seat_id"`
}

// seatKey scopes a seat's stored memory to its room. Seat ids repeat across rooms.
func seatKey(roomID, seatID string) string {
	return roomID + "/" + seatID
}

// seatService backs the AI RPCs. The factory is not safe for concurrent
// use, so calls are serialized.
type seatService struct {
	mu      sync.Mutex
	factory *bot.Factory
	store   ports.MemoryStore
}

func newSeatService(factory *bot.Factory, store ports.MemoryStore) *seatService {
	return &seatService{factory: factory, store: store}
}

func (s *seatService) register(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcFillSeats, s.rpcFillSeats); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcResetSeatMemory, s.rpcResetSeatMemory)
}

func (s *seatService) rpcFillSeats(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req FillSeatsRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid fill seats payload", codeInvalidArgument)
	}
	if req.RoomID == "" {
		return "", runtime.NewError("room_id is required", codeInvalidArgument)
	}
	if req.HumanCount < 0 {
		return "", runtime.NewError("human_count must not be negative", codeInvalidArgument)
	}

	var weights map[bot.Difficulty]float64
	if len(req.DifficultyDistribution) > 0 {
		weights = make(map[bot.Difficulty]float64, len(req.DifficultyDistribution))
		for name, w := range req.DifficultyDistribution {
			d, err := bot.ParseDifficulty(name)
			if err != nil {
				return "", runtime.NewError(err.Error(), codeInvalidArgument)
			}
			weights[d] = w
		}
	}

	s.mu.Lock()
	agents, err := s.factory.CreateAIPlayers(s.factory.CalculateNeededAIPlayers(req.HumanCount), bot.BatchOptions{
		StartIndex:             1,
		ExistingPlayerIDs:      req.ExistingPlayerIDs,
		DifficultyDistribution: weights,
	})
	s.mu.Unlock()
	if err != nil {
		logger.Warn("Fill seats rejected: %v", err)
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	defer func() {
		for _, a := range agents {
			_ = a.Close()
		}
	}()

	resp := FillSeatsResponse{Seats: make([]SeatInfo, 0, len(agents))}
	for _, a := range agents {
		cfg := a.Config()
		key := seatKey(req.RoomID, a.UserID)
		snap, err := s.store.Load(ctx, key)
		switch {
		case err == nil:
			a.RestoreSnapshot(snap)
		case !errors.Is(err, ports.ErrSnapshotNotFound):
			logger.Error("Failed to load memory for seat %s: %v", key, err)
			return "", runtime.NewError("failed to load seat memory", codeInternal)
		}
		if err := s.store.Save(ctx, key, a.Snapshot()); err != nil {
			logger.Error("Failed to save memory for seat %s: %v", key, err)
			return "", runtime.NewError("failed to store seat memory", codeInternal)
		}
		resp.Seats = append(resp.Seats, SeatInfo{
			UserID:     a.UserID,
			Nickname:   a.Nickname,
			Strategy:   string(cfg.Strategy),
			Difficulty: string(cfg.Difficulty),
			SkillLevel: cfg.SkillLevel,
		})
	}

	logger.Info("Filled %d AI seats for %d humans in room %s", len(resp.Seats), req.HumanCount, req.RoomID)
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *seatService) rpcResetSeatMemory(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req ResetSeatMemoryRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.RoomID == "" || req.SeatID == "" {
		return "", runtime.NewError("room_id and seat_id are required", codeInvalidArgument)
	}
	if !bot.IsAIPlayerID(req.SeatID) {
		return "", runtime.NewError("not an AI seat", codeInvalidArgument)
	}

	key := seatKey(req.RoomID, req.SeatID)
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Error("Failed to reset memory for seat %s: %v", key, err)
		return "", runtime.NewError("failed to reset seat memory", codeInternal)
	}
	logger.Info("Reset memory for seat %s", key)
	return "{}", nil
}
