// Package captions retrieves timed caption segments for a video, applying a
// deterministic language-fallback policy and bounded retries around the
// external provider.
package captions

import (
	"context"
	"errors"
	"fmt"

	"transcriptsearch/api-gateway/internal/retry"
	"transcriptsearch/api-gateway/models"
)

// Error kinds surfaced by Fetch. Anything else coming out of Fetch is a
// provider failure with the underlying message attached.
var (
	ErrNoCaptions       = errors.New("no captions available for this video")
	ErrVideoUnavailable = errors.New("this video is unavailable or private")
)

// Provider is the external caption source consumed by the fetcher.
type Provider interface {
	// ListLanguages returns the caption language codes available for a video,
	// in provider order. An empty list means the video has no captions.
	ListLanguages(ctx context.Context, videoID string) ([]string, error)
	// GetSegments fetches the caption track for one language.
	GetSegments(ctx context.Context, videoID, language string) ([]models.CaptionSegment, error)
}

// Fetcher wraps a Provider with language selection and retry.
type Fetcher struct {
	provider Provider
	retry    retry.Config
}

// NewFetcher builds a Fetcher. rc controls the retry of the whole fetch step
// (language listing plus segment retrieval).
func NewFetcher(provider Provider, rc retry.Config) *Fetcher {
	return &Fetcher{provider: provider, retry: rc}
}

// Result is a successful fetch: the segments plus which language was actually
// used and which were on offer.
type Result struct {
	Segments           []models.CaptionSegment
	UsedLanguage       string
	AvailableLanguages []string
}

// Fetch retrieves captions for videoID, preferring requestedLanguage.
//
// Language policy, in order: the requested language if available, else "en"
// if available, else the first language the provider lists, else
// ErrNoCaptions. The policy never fetches a language it did not choose.
//
// The whole step is retried on any failure (the retry is blind — provider
// errors are not classified); the final attempt's error propagates as-is.
func (f *Fetcher) Fetch(ctx context.Context, videoID, requestedLanguage string) (*Result, error) {
	return retry.Do(ctx, f.retry, func() (*Result, error) {
		return f.fetchOnce(ctx, videoID, requestedLanguage)
	})
}

func (f *Fetcher) fetchOnce(ctx context.Context, videoID, requestedLanguage string) (*Result, error) {
	available, err := f.provider.ListLanguages(ctx, videoID)
	if err != nil {
		return nil, err
	}

	lang, err := selectLanguage(available, requestedLanguage)
	if err != nil {
		return nil, err
	}

	segments, err := f.provider.GetSegments(ctx, videoID, lang)
	if err != nil {
		return nil, fmt.Errorf("fetch %q captions: %w", lang, err)
	}

	return &Result{
		Segments:           segments,
		UsedLanguage:       lang,
		AvailableLanguages: available,
	}, nil
}

func selectLanguage(available []string, requested string) (string, error) {
	for _, l := range available {
		if l == requested {
			return requested, nil
		}
	}
	for _, l := range available {
		if l == "en" {
			return "en", nil
		}
	}
	if len(available) > 0 {
		return available[0], nil
	}
	return "", ErrNoCaptions
}
