package redisstore

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ResponseCache is a Redis-backed TTL cache for serialized search responses.
// A nil *ResponseCache is valid and caches nothing, so callers never need to
// branch on whether caching is enabled.
type ResponseCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewResponseCache builds a cache over rdb. Returns nil (cache disabled) when
// rdb is nil.
func NewResponseCache(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *ResponseCache {
	if rdb == nil {
		return nil
	}
	return &ResponseCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Key builds a deterministic cache key from the request parameters.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("search:%x", hash[:12])
}

// Get returns the cached payload for key, or nil on miss. Redis errors are
// logged and treated as misses.
func (c *ResponseCache) Get(ctx context.Context, key string) []byte {
	if c == nil {
		return nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnf("Cache read failed for %s: %v", key, err)
		}
		return nil
	}
	return val
}

// Set stores payload under key for the cache's TTL. Failures are logged, not
// returned; a cache write must never fail a request.
func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warnf("Cache write failed for %s: %v", key, err)
	}
}
