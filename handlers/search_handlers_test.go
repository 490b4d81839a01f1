package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"transcriptsearch/api-gateway/internal/captions"
	"transcriptsearch/api-gateway/models"
)

// stubFetcher returns a scripted result and records whether it was called.
type stubFetcher struct {
	result *captions.Result
	err    error
	calls  int
}

func (s *stubFetcher) Fetch(ctx context.Context, videoID, requestedLanguage string) (*captions.Result, error) {
	s.calls++
	return s.result, s.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestApp(fetcher CaptionFetcher) *fiber.App {
	h := NewApplicationHandler(fetcher, nil, testLogger())
	app := fiber.New()
	app.Get("/search", h.Search)
	app.Get("/health", h.Health)
	return app
}

func doRequest(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, body)
	}
	return resp, fields
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubFetcher{})
	resp, fields := doRequest(t, app, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if string(fields["status"]) != `"healthy"` {
		t.Errorf("body = %v, want status healthy", fields)
	}
}

func TestSearchMissingParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing query", "/search?video_id=dQw4w9WgXcQ"},
		{"missing video_id", "/search?query=hello"},
		{"missing both", "/search"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			app := newTestApp(fetcher)
			resp, fields := doRequest(t, app, tt.target)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if _, ok := fields["error"]; !ok {
				t.Error("expected an error field in the body")
			}
			if fetcher.calls != 0 {
				t.Errorf("provider must not be called on validation failure, got %d calls", fetcher.calls)
			}
		})
	}
}

func TestSearchInvalidThreshold(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "101"} {
		fetcher := &stubFetcher{}
		app := newTestApp(fetcher)
		resp, _ := doRequest(t, app, "/search?video_id=dQw4w9WgXcQ&query=hi&threshold="+raw)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("threshold %q: status = %d, want 400", raw, resp.StatusCode)
		}
		if fetcher.calls != 0 {
			t.Errorf("threshold %q: provider must not be called", raw)
		}
	}
}

func TestSearchInvalidReference(t *testing.T) {
	fetcher := &stubFetcher{}
	app := newTestApp(fetcher)
	resp, fields := doRequest(t, app, "/search?video_id=notavideo&query=hello")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if _, ok := fields["error"]; !ok {
		t.Error("expected an error field in the body")
	}
	if fetcher.calls != 0 {
		t.Errorf("provider must not be called for an unresolvable reference")
	}
}

func TestSearchProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"no captions", captions.ErrNoCaptions},
		{"video unavailable", captions.ErrVideoUnavailable},
		{"generic provider error", errors.New("innertube player: connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubFetcher{err: tt.err})
			resp, fields := doRequest(t, app, "/search?video_id=dQw4w9WgXcQ&query=hello")
			if resp.StatusCode != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", resp.StatusCode)
			}
			if _, ok := fields["error"]; !ok {
				t.Error("expected an error field in the body")
			}
		})
	}
}

func TestSearchSuccess(t *testing.T) {
	fetcher := &stubFetcher{
		result: &captions.Result{
			Segments: []models.CaptionSegment{
				{Text: "hello world", Start: 0, Duration: 2},
				{Text: "goodbye world", Start: 5, Duration: 2},
			},
			UsedLanguage:       "en",
			AvailableLanguages: []string{"en", "de"},
		},
	}
	app := newTestApp(fetcher)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/search?video_id=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3DdQw4w9WgXcQ&query=hello", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Matches) != 1 {
		t.Fatalf("expected exactly one match at the default threshold, got %d", len(response.Matches))
	}
	m := response.Matches[0]
	if m.Text != "hello world" || m.Timestamp != "00:00:00" {
		t.Errorf("match = %+v", m)
	}
	if m.Link != "https://youtube.com/watch?v=dQw4w9WgXcQ&t=0" {
		t.Errorf("link = %q", m.Link)
	}

	meta := response.Metadata
	if meta.Query != "hello" || meta.Threshold != 80 || meta.RequestedLanguage != "en" ||
		meta.UsedLanguage != "en" || meta.MatchCount != 1 {
		t.Errorf("metadata = %+v", meta)
	}
	if len(meta.AvailableLanguages) != 2 {
		t.Errorf("available languages = %v", meta.AvailableLanguages)
	}
}

func TestSearchEmptyTranscript(t *testing.T) {
	app := newTestApp(&stubFetcher{
		result: &captions.Result{UsedLanguage: "en", AvailableLanguages: []string{"en"}},
	})
	resp, fields := doRequest(t, app, "/search?video_id=dQw4w9WgXcQ&query=hello")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var matches []models.MatchResult
	if err := json.Unmarshal(fields["matches"], &matches); err != nil {
		t.Fatalf("matches field: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for an empty transcript, got %d", len(matches))
	}
}
