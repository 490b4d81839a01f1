// Package fuzzymatch scans caption segments for approximate matches against a
// query string and ranks them by similarity.
package fuzzymatch

import (
	"fmt"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"transcriptsearch/api-gateway/models"
)

// Match scores every segment against query with partial-ratio similarity
// (0-100, where 100 means the shorter string appears as a best-aligned
// substring of the longer), keeps segments scoring at least threshold, and
// returns them ranked by similarity descending. Equal scores keep their
// original chronological order. videoID and language only feed the derived
// link and language fields.
//
// Match is a pure function: no I/O, no shared state.
func Match(segments []models.CaptionSegment, query string, threshold int, videoID, language string) []models.MatchResult {
	query = strings.ToLower(query)

	matches := make([]models.MatchResult, 0)
	for _, seg := range segments {
		similarity := fuzzy.PartialRatio(query, strings.ToLower(seg.Text))
		if similarity < threshold {
			continue
		}
		start := int(seg.Start)
		matches = append(matches, models.MatchResult{
			Start:      seg.Start,
			Text:       seg.Text,
			Duration:   seg.Duration,
			Similarity: similarity,
			Language:   language,
			Timestamp:  formatTimestamp(start),
			Link:       fmt.Sprintf("https://youtube.com/watch?v=%s&t=%d", videoID, start),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// formatTimestamp renders whole seconds as zero-padded HH:MM:SS.
func formatTimestamp(seconds int) string {
	minutes, secs := seconds/60, seconds%60
	hours, mins := minutes/60, minutes%60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
