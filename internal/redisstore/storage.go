package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// FiberStorage adapts a go-redis client to fiber's Storage interface so the
// limiter middleware can keep its per-IP counters in Redis (shared across
// instances, surviving restarts). Keys are namespaced by prefix.
type FiberStorage struct {
	rdb    *redis.Client
	prefix string
}

// NewFiberStorage wraps rdb. All keys are stored under prefix + ":".
func NewFiberStorage(rdb *redis.Client, prefix string) *FiberStorage {
	return &FiberStorage{rdb: rdb, prefix: prefix + ":"}
}

// Get returns the value for key, or nil when the key does not exist.
func (s *FiberStorage) Get(key string) ([]byte, error) {
	val, err := s.rdb.Get(context.Background(), s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val under key with the given expiration (0 = no expiry).
func (s *FiberStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.rdb.Set(context.Background(), s.prefix+key, val, exp).Err()
}

// Delete removes key.
func (s *FiberStorage) Delete(key string) error {
	return s.rdb.Del(context.Background(), s.prefix+key).Err()
}

// Reset removes every key under this storage's prefix.
func (s *FiberStorage) Reset() error {
	ctx := context.Background()
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the shared client's lifecycle belongs to main.
func (s *FiberStorage) Close() error {
	return nil
}
