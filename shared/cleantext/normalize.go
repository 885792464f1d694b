package cleantext

import (
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(`http\S+|www\S+`)
	// Letters, digits, whitespace and the heart-on-fire emoji sequence stay;
	// everything else goes.
	disallowedPattern = regexp.MustCompile(`[^A-Za-z0-9\s❤️‍🔥]`)
)

// Normalize reduces raw comment text to its cleaned form: lowercased, URL
// tokens removed, disallowed characters removed, surrounding whitespace
// trimmed. It is a total function (empty output is valid, never an error)
// and is idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	// Disallowed characters are stripped before URL tokens so that URL
	// fragments split by punctuation still match the URL pattern.
	text = disallowedPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
