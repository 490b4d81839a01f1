// Package videoid resolves user-supplied YouTube references (bare IDs, watch
// URLs, short links) into canonical video identifiers. Purely syntactic — it
// never touches the network.
package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidReference is returned when the input is neither a canonical video
// ID nor a recognizable YouTube URL.
var ErrInvalidReference = errors.New("not a valid YouTube video ID or URL")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11,12}$`)

// Resolve extracts the canonical video ID from input. Already-canonical IDs
// are returned unchanged.
func Resolve(input string) (string, error) {
	input = strings.TrimSpace(input)
	if idPattern.MatchString(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", ErrInvalidReference
	}
	host := u.Host
	if host == "" {
		// Scheme-less inputs like "www.youtube.com/watch?v=x" parse with an
		// empty host; retry with an explicit scheme before giving up.
		u, err = url.Parse("https://" + input)
		if err != nil {
			return "", ErrInvalidReference
		}
		host = u.Host
	}

	switch {
	case strings.Contains(host, "youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return v, nil
		}
	case strings.Contains(host, "youtu.be"):
		if seg := firstPathSegment(u.Path); seg != "" {
			return seg, nil
		}
	}
	return "", ErrInvalidReference
}

func firstPathSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
