package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
)

// TokenStore records revoked bearer tokens until they would have expired
// anyway. Logout and admin password resets revoke; the auth middleware
// consults it on every request. Handed to consumers as a dependency so tests
// can swap in their own.
type TokenStore interface {
	Revoke(token string, ttl time.Duration) error
	IsRevoked(token string) bool
}

// NewTokenStore picks the Redis-backed store when Redis is configured,
// otherwise the in-process store. Losing in-process revocations on restart
// is acceptable: tokens are still signature-checked.
func NewTokenStore(cfg config.RedisConfig) TokenStore {
	if cfg.Enabled {
		return NewRedisTokenStore(cfg)
	}
	return NewMemoryTokenStore()
}

// MemoryTokenStore is a mutex-guarded map of token -> expiry.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Revoke(token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to remember
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(token string) bool {
	s.mu.RLock()
	expiry, ok := s.revoked[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.revoked, token)
		s.mu.Unlock()
		return false
	}
	return true
}

// RedisTokenStore keeps revocations in Redis with a TTL, surviving restarts
// and shared across instances.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(cfg config.RedisConfig) *RedisTokenStore {
	return &RedisTokenStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func revocationKey(token string) string {
	return "revoked:" + token
}

func (s *RedisTokenStore) Revoke(token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(context.Background(), revocationKey(token), "1", ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(token string) bool {
	n, err := s.client.Exists(context.Background(), revocationKey(token)).Result()
	if err != nil {
		// fail open: a Redis outage must not lock every user out
		return false
	}
	return n > 0
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
