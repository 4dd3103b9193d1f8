package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// Revocations remembers logged-out token ids until they would expire anyway.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MemoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{entries: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, until := range m.entries {
		if !until.After(now) {
			delete(m.entries, id)
		}
	}
	m.entries[tokenID] = now.Add(ttl)
	return nil
}

func (m *MemoryRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.entries[tokenID]
	return ok && until.After(m.now()), nil
}

type RedisRevocations struct {
	client *redisv9.Client
}

func NewRedisRevocations(client *redisv9.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set revoked session failed: %w", err)
	}
	return nil
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check revoked session failed: %w", err)
	}
	return exists > 0, nil
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("session:revoked:%s", tokenID)
}
