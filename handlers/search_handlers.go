package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"transcriptsearch/api-gateway/internal/captions"
	"transcriptsearch/api-gateway/internal/fuzzymatch"
	"transcriptsearch/api-gateway/internal/redisstore"
	"transcriptsearch/api-gateway/internal/videoid"
	"transcriptsearch/api-gateway/models"
	"transcriptsearch/api-gateway/utils"
)

// searchParams are the validated /search query parameters.
type searchParams struct {
	VideoID   string `validate:"required"`
	Query     string `validate:"required"`
	Language  string
	Threshold int `validate:"min=0,max=100"`
}

// Search handles GET /search: resolve the video reference, fetch captions
// with language fallback, fuzzy-match the query against the segments, and
// return the ranked matches with search metadata.
func (h *ApplicationHandler) Search(c *fiber.Ctx) error {
	params, err := h.parseSearchParams(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := videoid.Resolve(params.VideoID)
	if err != nil {
		h.Logger.WithField("video_id", params.VideoID).Errorf("Invalid video reference: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	log := h.Logger.WithFields(logrus.Fields{
		"video_id":  id,
		"query":     params.Query,
		"language":  params.Language,
		"threshold": params.Threshold,
	})
	log.Info("Searching transcript")

	cacheKey := redisCacheKey(id, params)
	if payload := h.Cache.Get(c.Context(), cacheKey); payload != nil {
		log.Debug("Serving search response from cache")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(payload)
	}

	result, err := h.Fetcher.Fetch(c.Context(), id, params.Language)
	if err != nil {
		log.Errorf("Caption retrieval failed: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, captionErrorMessage(err))
	}

	matches := fuzzymatch.Match(result.Segments, params.Query, params.Threshold, id, result.UsedLanguage)
	log.Infof("Found %d matches", len(matches))

	response := models.SearchResponse{
		Matches: matches,
		Metadata: models.SearchMetadata{
			Query:              params.Query,
			Threshold:          params.Threshold,
			RequestedLanguage:  params.Language,
			UsedLanguage:       result.UsedLanguage,
			AvailableLanguages: result.AvailableLanguages,
			MatchCount:         len(matches),
		},
	}

	if payload, err := json.Marshal(response); err == nil {
		h.Cache.Set(c.Context(), cacheKey, payload)
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

// Health handles GET /health. No side effects.
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
	})
}

func (h *ApplicationHandler) parseSearchParams(c *fiber.Ctx) (*searchParams, error) {
	params := &searchParams{
		VideoID:   c.Query("video_id"),
		Query:     c.Query("query"),
		Language:  c.Query("language", "en"),
		Threshold: 80,
	}
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("threshold must be an integer between 0 and 100")
		}
		params.Threshold = n
	}

	if params.VideoID == "" || params.Query == "" {
		return nil, errors.New("Missing video_id or query parameter")
	}
	if err := h.validate.Struct(params); err != nil {
		return nil, errors.New(utils.FormatValidationErrors(err))
	}
	return params, nil
}

func redisCacheKey(id string, params *searchParams) string {
	return redisstore.Key(id, params.Query, params.Language, strconv.Itoa(params.Threshold))
}

// captionErrorMessage maps fetcher error kinds to the user-visible message.
func captionErrorMessage(err error) string {
	switch {
	case errors.Is(err, captions.ErrNoCaptions):
		return captions.ErrNoCaptions.Error()
	case errors.Is(err, captions.ErrVideoUnavailable):
		return err.Error()
	default:
		return fmt.Sprintf("Error retrieving transcript: %v", err)
	}
}
