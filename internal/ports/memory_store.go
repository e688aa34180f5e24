package ports

import (
	"context"
	"errors"

	"guandan/internal/bot"
)

// ErrSnapshotNotFound is returned by MemoryStore.Load when no snapshot is stored for a seat.
var ErrSnapshotNotFound = errors.New("memory snapshot not found")

// MemoryStore persists AI seat snapshots between games.
type MemoryStore interface {
	// Save stores the snapshot for seatID, replacing any previous one.
	Save(ctx context.Context, seatID string, snapshot bot.AgentSnapshot) error

	// Load returns the stored snapshot for seatID or ErrSnapshotNotFound.
	Load(ctx context.Context, seatID string) (bot.AgentSnapshot, error)

	// Delete removes the snapshot for seatID. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, seatID string) error
}
