// Package youtube implements the caption provider against YouTube's Innertube
// API: the ANDROID /player endpoint lists caption tracks, and each track's
// timedtext XML URL yields the timed segments.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"transcriptsearch/api-gateway/internal/captions"
	"transcriptsearch/api-gateway/models"
)

const maxTimedTextBytes = 512 * 1024

// Client talks to the Innertube API. The zero value is not usable; call
// NewClient.
type Client struct {
	httpClient *http.Client
	playerURL  string
}

// NewClient builds a Client on top of httpClient.
func NewClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient, playerURL: innertubeURL}
}

// ListLanguages returns the caption language codes for videoID in the order
// YouTube lists the tracks. An empty slice means the video has no captions.
func (c *Client) ListLanguages(ctx context.Context, videoID string) ([]string, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	// A language can appear twice (manual + auto-generated track); report it
	// once, keeping provider order.
	languages := make([]string, 0, len(tracks))
	seen := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		if !seen[t.LanguageCode] {
			seen[t.LanguageCode] = true
			languages = append(languages, t.LanguageCode)
		}
	}
	return languages, nil
}

// GetSegments fetches and parses the caption track for one language.
func (c *Client) GetSegments(ctx context.Context, videoID, language string) ([]models.CaptionSegment, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	// Prefer a manually written track over an auto-generated ("asr") one when
	// the language has both.
	var fallback *captionTrack
	for i, t := range tracks {
		if t.LanguageCode != language {
			continue
		}
		if t.Kind != "asr" {
			return c.fetchTimedText(ctx, t.BaseURL)
		}
		if fallback == nil {
			fallback = &tracks[i]
		}
	}
	if fallback != nil {
		return c.fetchTimedText(ctx, fallback.BaseURL)
	}
	return nil, fmt.Errorf("no %q caption track for video %s", language, videoID)
}

// captionTracks calls the Innertube /player endpoint and extracts the caption
// track list.
func (c *Client) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	reqBody, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{
			Client: playerClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.playerURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("innertube player: unexpected status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return tracksFromPlayer(player)
}

// tracksFromPlayer maps a player response to a track list, classifying the
// unplayable-video and no-captions cases.
func tracksFromPlayer(player playerResponse) ([]captionTrack, error) {
	if s := player.PlayabilityStatus; s != nil && s.Status != "" && s.Status != "OK" {
		if s.Reason != "" {
			return nil, fmt.Errorf("%w: %s", captions.ErrVideoUnavailable, s.Reason)
		}
		return nil, fmt.Errorf("%w: %s", captions.ErrVideoUnavailable, s.Status)
	}
	if player.Captions == nil {
		return nil, nil
	}
	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]models.CaptionSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", androidUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// parseTimedText converts a timedtext XML document into caption segments.
// YouTube double-escapes entities inside the XML text nodes and sometimes
// embeds markup, so segments are unescaped and tag-stripped.
func parseTimedText(body []byte) ([]models.CaptionSegment, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]models.CaptionSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, models.CaptionSegment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return segments, nil
}

func cleanCaptionText(s string) string {
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
