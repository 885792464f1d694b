package youtube

import (
	"fmt"
	"strings"
)

// ParseVideoID extracts the video identifier from a long-form
// (...watch?v=ID) or short-form (youtu.be/ID) URL. The identifier runs from
// the marker to the next & or ? delimiter. An unrecognizable URL yields
// ErrInvalidVideoURL.
func ParseVideoID(rawURL string) (string, error) {
	var id string
	if _, after, ok := strings.Cut(rawURL, "v="); ok {
		id = truncateAtDelimiter(after)
	} else if _, after, ok := strings.Cut(rawURL, "youtu.be/"); ok {
		id = truncateAtDelimiter(after)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%q: %w", rawURL, ErrInvalidVideoURL)
	}
	return id, nil
}

func truncateAtDelimiter(s string) string {
	if i := strings.IndexAny(s, "&?"); i != -1 {
		return s[:i]
	}
	return s
}
