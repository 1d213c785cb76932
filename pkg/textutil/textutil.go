// Package textutil holds the pure text transformations shared by the
// renderers and the structured-data builder: paragraph normalization of
// rewritten body HTML, tag stripping, and the length-bounded description
// and summary heuristics used when no generative service is available.
package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultDescription is emitted for bodies that contain no usable text.
const DefaultDescription = "Laatste politienieuws uit Nederland."

// EmptyBodyParagraph replaces a fully empty body.
const EmptyBodyParagraph = "<p>Geen inhoud beschikbaar.</p>"

var (
	doubleBreakRe = regexp.MustCompile(`(?i)(\s*<br\s*/?>\s*){2,}`)
	emptyParaRe   = regexp.MustCompile(`(?i)<p>\s*</p>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	spaceRe       = regexp.MustCompile(`\s+`)
	sentenceRe    = regexp.MustCompile(`[.!?]+`)
)

// NormalizeParagraphs tidies rewritten body HTML: runs of two or more <br>
// markers become a paragraph break and empty <p></p> pairs are dropped.
// Well-formed markup passes through unchanged. Empty input yields a fixed
// placeholder paragraph.
func NormalizeParagraphs(bodyHTML string) string {
	if strings.TrimSpace(bodyHTML) == "" {
		return EmptyBodyParagraph
	}
	out := doubleBreakRe.ReplaceAllString(bodyHTML, "</p>\n<p>")
	out = emptyParaRe.ReplaceAllString(out, "")
	return out
}

// FormatBodyHTML turns plain rewritten text into simple HTML. Text that
// already carries <p> or <h3> markup is trusted as-is. Short lines after the
// first are treated as section headings.
func FormatBodyHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return EmptyBodyParagraph
	}
	if strings.Contains(text, "<p") || strings.Contains(text, "<h3") {
		return text
	}

	var parts []string
	i := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) < 80 && i > 0 {
			parts = append(parts, "<h3>"+html.EscapeString(line)+"</h3>")
		} else {
			parts = append(parts, "<p>"+html.EscapeString(line)+"</p>")
		}
		i++
	}
	return strings.Join(parts, "\n")
}

// Plain strips markup and collapses whitespace.
func Plain(s string) string {
	out := tagRe.ReplaceAllString(s, " ")
	out = spaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Truncate cuts s to at most max bytes without splitting a multi-byte rune.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Summary produces a plain-text summary of at most limit characters, cut at
// a word boundary and suffixed with an ellipsis when truncated.
func Summary(fullText string, limit int) string {
	plain := Plain(fullText)
	if len(plain) <= limit {
		return plain
	}
	cut := Truncate(plain, limit)
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "..."
}

// FirstSentenceDescription extracts a meta description from body text: the
// first sentence of at least 20 characters that fits maxLen, else a
// word-boundary trim of that sentence, else a word-boundary trim of the whole
// text. The result is always non-empty and ends in sentence-terminating
// punctuation; empty input falls back to DefaultDescription.
func FirstSentenceDescription(fullText string, maxLen int) string {
	plain := Plain(fullText)
	if plain == "" {
		return DefaultDescription
	}

	for _, sentence := range sentenceRe.Split(plain, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 20 {
			continue
		}
		if len(sentence) <= maxLen {
			return sentence + "."
		}
		if trimmed := trimAtWord(sentence, maxLen-1); trimmed != "" {
			return trimmed + "."
		}
	}

	if len(plain) <= maxLen {
		if strings.HasSuffix(plain, ".") || strings.HasSuffix(plain, "!") || strings.HasSuffix(plain, "?") {
			return plain
		}
		return plain + "."
	}
	if trimmed := trimAtWord(plain, maxLen-1); trimmed != "" {
		return trimmed + "."
	}
	return DefaultDescription
}

// trimAtWord cuts s at the last word boundary within maxLen. Returns "" when
// the cut would land unreasonably early.
func trimAtWord(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	idx := strings.LastIndex(cut, " ")
	if idx <= maxLen/2 {
		return ""
	}
	return cut[:idx]
}

// WordCount counts whitespace-separated words in the stripped body text.
func WordCount(bodyHTML string) int {
	plain := Plain(bodyHTML)
	if plain == "" {
		return 0
	}
	return len(strings.Fields(plain))
}

// ReadingTimeMinutes estimates reading time at 200 words per minute, with a
// one minute floor.
func ReadingTimeMinutes(bodyHTML string) int {
	minutes := WordCount(bodyHTML) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
