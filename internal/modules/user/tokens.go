// README: Password-reset token store on Redis.
package user

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "pwreset:"

// RedisResetTokens keeps reset tokens in Redis so they survive restarts and
// expire server-side.
type RedisResetTokens struct {
	rdb *redis.Client
}

func NewRedisResetTokens(rdb *redis.Client) *RedisResetTokens {
	return &RedisResetTokens{rdb: rdb}
}

func (r *RedisResetTokens) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, resetKeyPrefix+token, userID, ttl).Err()
}

func (r *RedisResetTokens) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.rdb.GetDel(ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// MemoryResetTokens is the fallback when no Redis address is configured.
type MemoryResetTokens struct {
	mu      sync.Mutex
	entries map[string]memoryResetEntry
}

type memoryResetEntry struct {
	userID    string
	expiresAt time.Time
}

func NewMemoryResetTokens() *MemoryResetTokens {
	return &MemoryResetTokens{entries: make(map[string]memoryResetEntry)}
}

func (m *MemoryResetTokens) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryResetEntry{userID: userID, expiresAt: timeNow().Add(ttl)}
	return nil
}

func (m *MemoryResetTokens) Consume(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[token]
	if !ok {
		return "", ErrTokenInvalid
	}
	delete(m.entries, token)
	if timeNow().After(e.expiresAt) {
		return "", ErrTokenInvalid
	}
	return e.userID, nil
}
