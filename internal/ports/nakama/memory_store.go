package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"guandan/internal/bot"
	"guandan/internal/ports"
)

// storage is the part of runtime.NakamaModule the memory store uses.
type storage interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	StorageDelete(ctx context.Context, deletes []*runtime.StorageDelete) error
}

// NakamaMemoryStore implements ports.MemoryStore with Nakama storage objects
// owned by the system user, hidden from clients.
type NakamaMemoryStore struct {
	nk storage
}

// NewNakamaMemoryStore creates a new memory store adapter.
func NewNakamaMemoryStore(nk storage) *NakamaMemoryStore {
	return &NakamaMemoryStore{nk: nk}
}

func (s *NakamaMemoryStore) Save(ctx context.Context, seatID string, snapshot bot.AgentSnapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", seatID, err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      memoryCollection,
			Key:             seatID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := s.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", seatID, err)
	}
	return nil
}

func (s *NakamaMemoryStore) Load(ctx context.Context, seatID string) (bot.AgentSnapshot, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: memoryCollection, Key: seatID},
	})
	if err != nil {
		return bot.AgentSnapshot{}, fmt.Errorf("failed to load snapshot for %s: %w", seatID, err)
	}
	if len(objects) == 0 {
		return bot.AgentSnapshot{}, fmt.Errorf("%w: %s", ports.ErrSnapshotNotFound, seatID)
	}

	var snapshot bot.AgentSnapshot
	if err := json.Unmarshal([]byte(objects[0].Value), &snapshot); err != nil {
		return bot.AgentSnapshot{}, fmt.Errorf("failed to unmarshal snapshot for %s: %w", seatID, err)
	}
	return snapshot, nil
}

func (s *NakamaMemoryStore) Delete(ctx context.Context, seatID string) error {
	err := s.nk.StorageDelete(ctx, []*runtime.StorageDelete{
		{Collection: memoryCollection, Key: seatID},
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", seatID, err)
	}
	return nil
}

var _ ports.MemoryStore = (*NakamaMemoryStore)(nil)
