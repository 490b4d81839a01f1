package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"transcriptsearch/api-gateway/internal/captions"
	"transcriptsearch/api-gateway/internal/redisstore"
)

// CaptionFetcher defines what handlers expect from the caption-retrieval
// layer. This allows for decoupling and easier testing; the concrete
// implementation is captions.Fetcher.
type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID, requestedLanguage string) (*captions.Result, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Fetcher  CaptionFetcher
	Cache    *redisstore.ResponseCache // nil disables response caching
	Logger   *logrus.Logger
	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(fetcher CaptionFetcher, cache *redisstore.ResponseCache, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Fetcher:  fetcher,
		Cache:    cache,
		Logger:   logger,
		validate: validator.New(),
	}
}
