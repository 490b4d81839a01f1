// Package retry provides a bounded retry-with-backoff wrapper for external
// calls.
package retry

import (
	"context"
	"time"
)

// Config controls retry behavior.
type Config struct {
	MaxAttempts  int           // total attempts, including the first
	InitialDelay time.Duration // delay before the first retry; doubles each retry
}

// DefaultConfig matches the caption provider's needs: 3 attempts, backoff
// starting at 1s.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: time.Second,
}

// Do runs fn up to MaxAttempts times, sleeping InitialDelay, 2*InitialDelay,
// ... between attempts. Retries are blind: every failure is retried the same
// way, and the last attempt's error is returned unmodified.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < cfg.MaxAttempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
			delay *= 2
		}
	}
	return zero, lastErr
}
