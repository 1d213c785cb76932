// Package slugify derives URL-safe slugs from article titles. The slug is the
// stable key for an article's whole artifact set, so derivation must be total
// and deterministic over any input string.
package slugify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength bounds slug size; longer slugs are cut at this many bytes.
	MaxLength = 80

	// Fallback is returned when a title reduces to nothing.
	Fallback = "artikel"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a title into a slug: diacritics stripped, apostrophes
// removed, every non-alphanumeric run collapsed into a single "-", lowercased
// and capped at MaxLength. Never returns an empty or separator-only string.
func Slugify(title string) string {
	return WithMax(title, MaxLength)
}

// WithMax is Slugify with a caller-chosen maximum length.
func WithMax(title string, maxLen int) string {
	s, _, err := transform.String(deaccent, title)
	if err != nil {
		s = title
	}
	s = strings.ReplaceAll(s, "'", "")

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}

	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	out = strings.TrimRight(out, "-")
	if out == "" {
		return Fallback
	}
	return out
}
