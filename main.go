package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"transcriptsearch/api-gateway/config"
	"transcriptsearch/api-gateway/handlers"
	"transcriptsearch/api-gateway/internal/captions"
	"transcriptsearch/api-gateway/internal/captions/youtube"
	"transcriptsearch/api-gateway/internal/redisstore"
	"transcriptsearch/api-gateway/internal/retry"
	"transcriptsearch/api-gateway/middleware"
)

func main() {
	// .env is optional; real environments configure through the process env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.LogLevel)
	logger.Infof("Starting transcript search API (%s)", cfg.Env)

	rdb := redisstore.Connect(cfg.RedisURL, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	// Rate-limit counters live in Redis when it is up; each limiter gets its
	// own key namespace. A nil storage makes fiber fall back to memory.
	var searchStore, hourlyStore, dailyStore fiber.Storage
	if rdb != nil {
		searchStore = redisstore.NewFiberStorage(rdb, "rl:search")
		hourlyStore = redisstore.NewFiberStorage(rdb, "rl:hourly")
		dailyStore = redisstore.NewFiberStorage(rdb, "rl:daily")
	}

	var cache *redisstore.ResponseCache
	if cfg.CacheEnabled {
		cache = redisstore.NewResponseCache(rdb, cfg.CacheTTL, logger)
	}

	provider := youtube.NewClient(&http.Client{Timeout: cfg.FetchTimeout})
	fetcher := captions.NewFetcher(provider, retry.Config{
		MaxAttempts:  cfg.RetryMaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
	})

	h := handlers.NewApplicationHandler(fetcher, cache, logger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.GlobalRateLimit(cfg.DailyLimit, 24*time.Hour, dailyStore))
	app.Use(middleware.GlobalRateLimit(cfg.HourlyLimit, time.Hour, hourlyStore))

	app.Get("/health", h.Health)
	app.Get("/search", middleware.SearchRateLimit(cfg.SearchPerSecond, searchStore), h.Search)

	logger.Infof("Listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
