// README: Session persistence: Redis with TTL, or in-process LRU fallback.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

const (
	redisKeyPrefix = "session:"
	defaultTTL     = 24 * time.Hour
	lruCapacity    = 4096
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: defaultTTL}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	if s.Memory == nil {
		s.Memory = make(map[string]string)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", s.ID, err)
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: save %s: %w", s.ID, err)
	}
	return nil
}

// LRUStore keeps sessions in process memory. Used when no Redis address is
// configured; evicts the least recently used session past capacity.
type LRUStore struct {
	cache *lru.Cache[string, *Session]
}

func NewLRUStore() (*LRUStore, error) {
	cache, err := lru.New[string, *Session](lruCapacity)
	if err != nil {
		return nil, err
	}
	return &LRUStore{cache: cache}, nil
}

func (l *LRUStore) Get(_ context.Context, id string) (*Session, error) {
	s, ok := l.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (l *LRUStore) Save(_ context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	l.cache.Add(s.ID, s)
	return nil
}

// Manager loads sessions, creating them on first use.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(id), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Save(ctx, s)
}
