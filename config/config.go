package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all process configuration, resolved once at startup and passed
// down from main. Nothing else reads the environment.
type Config struct {
	Env         string // "development" or "production"
	Port        string
	RedisURL    string
	CORSOrigins string
	LogLevel    string

	// Rate limits. SearchPerSecond applies to /search per client IP; the
	// hourly and daily ceilings are coarse app-wide limits.
	SearchPerSecond int
	HourlyLimit     int
	DailyLimit      int

	// Caption fetch retry: total attempts, first backoff delay (doubles each
	// retry).
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration

	// Outbound HTTP timeout for the caption provider.
	FetchTimeout time.Duration

	// Response cache.
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load builds the configuration for the environment named by APP_ENV
// (default "development").
func Load() (*Config, error) {
	env := getenv("APP_ENV", "development")

	cfg := &Config{
		Env:               env,
		Port:              getenv("PORT", "9005"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		SearchPerSecond:   5,
		HourlyLimit:       50,
		DailyLimit:        200,
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Second,
		FetchTimeout:      15 * time.Second,
		CacheTTL:          5 * time.Minute,
	}

	switch env {
	case "development":
		cfg.RedisURL = getenv("REDIS_URL", "redis://localhost:6379")
		cfg.CORSOrigins = getenv("CORS_ORIGINS", "*")
		cfg.LogLevel = getenv("LOG_LEVEL", "debug")
	case "production":
		cfg.RedisURL = getenv("REDIS_URL", "redis://redis:6379")
		cfg.CORSOrigins = getenv("CORS_ORIGINS", "http://react-frontend:9003")
	default:
		return nil, fmt.Errorf("unknown APP_ENV %q", env)
	}

	var err error
	if cfg.CacheEnabled, err = getenvBool("CACHE_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.SearchPerSecond, err = getenvInt("RATELIMIT_SEARCH_PER_SECOND", cfg.SearchPerSecond); err != nil {
		return nil, err
	}
	if cfg.HourlyLimit, err = getenvInt("RATELIMIT_HOURLY", cfg.HourlyLimit); err != nil {
		return nil, err
	}
	if cfg.DailyLimit, err = getenvInt("RATELIMIT_DAILY", cfg.DailyLimit); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
