package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"guandan/internal/bot"
	"guandan/internal/ports"
)

// memoryKeyPrefix namespaces seat snapshots: guandan:ai:memory:{seat_id} -> snapshot JSON
const memoryKeyPrefix = "guandan:ai:memory:"

// commands is the subset of the redis client the store needs.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// MemoryStore implements ports.MemoryStore on redis string keys with a TTL.
type MemoryStore struct {
	rdb commands
	ttl time.Duration
}

// NewMemoryStore wraps a redis client. A zero ttl keeps snapshots forever.
func NewMemoryStore(rdb commands, ttl time.Duration) *MemoryStore {
	return &MemoryStore{rdb: rdb, ttl: ttl}
}

// Connect dials redis and verifies the connection with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

func memoryKey(seatID string) string {
	return memoryKeyPrefix + seatID
}

func (s *MemoryStore) Save(ctx context.Context, seatID string, snapshot bot.AgentSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", seatID, err)
	}
	if err := s.rdb.Set(ctx, memoryKey(seatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", seatID, err)
	}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, seatID string) (bot.AgentSnapshot, error) {
	data, err := s.rdb.Get(ctx, memoryKey(seatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return bot.AgentSnapshot{}, fmt.Errorf("%w: %s", ports.ErrSnapshotNotFound, seatID)
	}
	if err != nil {
		return bot.AgentSnapshot{}, fmt.Errorf("failed to load snapshot for %s: %w", seatID, err)
	}

	var snapshot bot.AgentSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return bot.AgentSnapshot{}, fmt.Errorf("failed to unmarshal snapshot for %s: %w", seatID, err)
	}
	return snapshot, nil
}

func (s *MemoryStore) Delete(ctx context.Context, seatID string) error {
	return s.rdb.Del(ctx, memoryKey(seatID)).Err()
}

var _ ports.MemoryStore = (*MemoryStore)(nil)
