// Package cache provides the read-model cache used by the cache-aside path.
// Two implementations exist: a Redis-backed store and a no-op store selected
// at startup when no backing store is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the cache capability. Get reports (false, nil) on a miss; any
// backend failure surfaces as an error the caller treats as a miss.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisStore struct {
	rdb *redis.Client
}

// NewRedis returns a Store backed by the given Redis client. Values are
// stored as JSON.
func NewRedis(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

type noopStore struct{}

// NewNoop returns a Store that never hits. It stands in when caching is
// disabled so callers need no nil checks.
func NewNoop() Store { return noopStore{} }

func (noopStore) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (noopStore) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopStore) Delete(context.Context, string) error                  { return nil }
