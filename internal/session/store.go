package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists sessions by ID. Load returns the zero Session on miss or
// unreadable data — persistence problems must never crash a request.
type Store interface {
	Load(ctx context.Context, id string) Session
	Save(ctx context.Context, id string, s Session, ttl time.Duration) error
	Clear(ctx context.Context, id string) error
}

func redisKey(id string) string { return "orderlingo:session:" + id }

// RedisStore is the production store.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) Session {
	raw, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		return Session{}
	}
	return decode(raw)
}

func (s *RedisStore) Save(ctx context.Context, id string, sess Session, ttl time.Duration) error {
	raw, err := encode(sess)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKey(id)).Err()
}

// MemoryStore keeps sessions in-process. Used in development, in tests, and
// as the fallback when Redis is not reachable at boot.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Load(_ context.Context, id string) Session {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return Session{}
	}
	return decode(e.raw)
}

func (s *MemoryStore) Save(_ context.Context, id string, sess Session, ttl time.Duration) error {
	raw, err := encode(sess)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[id] = memoryEntry{raw: raw, expires: expires}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// put is a test hook: stores raw bytes verbatim so corrupt payloads can be
// exercised.
func (s *MemoryStore) put(id string, raw []byte) {
	s.mu.Lock()
	s.entries[id] = memoryEntry{raw: raw}
	s.mu.Unlock()
}
