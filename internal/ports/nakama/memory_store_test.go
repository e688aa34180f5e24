package nakama

import (
	"context"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/require"

	"guandan/internal/bot"
	"guandan/internal/ports"
)

func TestNakamaMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	nk := newFakeNakama()
	store := NewNakamaMemoryStore(nk)

	agent, err := bot.Create(bot.AgentConfig{ID: "ai-1", Strategy: bot.StrategyMemory, Difficulty: bot.DifficultyExpert, SkillLevel: 80, Seed: 4}, nil)
	require.NoError(t, err)
	defer agent.Close()

	_, err = store.Load(ctx, "ai-1")
	require.ErrorIs(t, err, ports.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "ai-1", agent.Snapshot()))

	w := nk.objects[storageKey(memoryCollection, "ai-1", "")]
	require.NotNil(t, w, "snapshot is a system-owned object")
	require.Equal(t, runtime.STORAGE_PERMISSION_NO_READ, w.PermissionRead)
	require.Equal(t, runtime.STORAGE_PERMISSION_NO_WRITE, w.PermissionWrite)

	got, err := store.Load(ctx, "ai-1")
	require.NoError(t, err)
	require.Equal(t, agent.Config(), got.Config)
	require.Equal(t, "ai-1", got.Memory.OwnerID)

	require.NoError(t, store.Delete(ctx, "ai-1"))
	_, err = store.Load(ctx, "ai-1")
	require.ErrorIs(t, err, ports.ErrSnapshotNotFound)
}

func TestNakamaMemoryStoreErrors(t *testing.T) {
	ctx := context.Background()
	nk := newFakeNakama()
	store := NewNakamaMemoryStore(nk)

	nk.objects[storageKey(memoryCollection, "ai-2", "")] = &runtime.StorageWrite{
		Collection: memoryCollection,
		Key:        "ai-2",
		Value:      "not json",
	}
	_, err := store.Load(ctx, "ai-2")
	require.Error(t, err)
	require.NotErrorIs(t, err, ports.ErrSnapshotNotFound)

	nk.failing = true
	require.ErrorIs(t, store.Save(ctx, "ai-2", bot.AgentSnapshot{}), errStorageDown)
	_, err = store.Load(ctx, "ai-2")
	require.ErrorIs(t, err, errStorageDown)
	require.ErrorIs(t, store.Delete(ctx, "ai-2"), errStorageDown)
}
