// Package redisstore owns the process's Redis connection and the two things
// built on it: a fiber.Storage adapter for the rate limiters and a TTL cache
// for search responses. Redis being down degrades the service (in-memory
// limits, no cache) instead of breaking it.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Connect parses redisURL and returns a live client, or nil when Redis is
// unreachable or the URL is invalid. Callers treat nil as "Redis disabled".
func Connect(redisURL string, logger *logrus.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warnf("Invalid Redis URL, continuing without Redis: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("Redis unreachable at %s, continuing without Redis: %v", opts.Addr, err)
		return nil
	}

	logger.Infof("Connected to Redis at %s", opts.Addr)
	return rdb
}
