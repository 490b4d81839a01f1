package models

// CaptionSegment is a single timed caption line as returned by the caption
// provider. Immutable once retrieved.
type CaptionSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// MatchResult is a caption segment that cleared the similarity threshold,
// with derived presentation fields.
type MatchResult struct {
	Start      float64 `json:"start"`
	Text       string  `json:"text"`
	Duration   float64 `json:"duration"`
	Similarity int     `json:"similarity"`
	Language   string  `json:"language"`
	Timestamp  string  `json:"timestamp"`
	Link       string  `json:"link"`
}

// SearchMetadata describes how a search was executed.
type SearchMetadata struct {
	Query              string   `json:"query"`
	Threshold          int      `json:"threshold"`
	RequestedLanguage  string   `json:"requested_language"`
	UsedLanguage       string   `json:"used_language"`
	AvailableLanguages []string `json:"available_languages"`
	MatchCount         int      `json:"match_count"`
}

// SearchResponse is the body of a successful /search call.
type SearchResponse struct {
	Matches  []MatchResult  `json:"matches"`
	Metadata SearchMetadata `json:"metadata"`
}
