package slugify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Diefstal in centrum", "diefstal-in-centrum"},
		{"diacritics", "Overval in Café Zuidoost", "overval-in-cafe-zuidoost"},
		{"apostrophes", "'s-Hertogenbosch zoekt getuigen", "s-hertogenbosch-zoekt-getuigen"},
		{"punctuation runs", "Brand!!! — in woning?", "brand-in-woning"},
		{"leading trailing", "  ...Politie waarschuwt...  ", "politie-waarschuwt"},
		{"empty", "", Fallback},
		{"only symbols", "!!! ??? ***", Fallback},
		{"non latin", "Пожар в центре", Fallback},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugifyMaxLength(t *testing.T) {
	long := strings.Repeat("lang woord ", 30)
	got := Slugify(long)

	assert.LessOrEqual(t, len(got), MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"), "slug must not end in a separator: %q", got)
	assert.False(t, strings.HasPrefix(got, "-"), "slug must not start with a separator: %q", got)
}

func TestSlugifyProperties(t *testing.T) {
	titles := []string{
		"Één dode bij ongeval op A2",
		"Man (34) aangehouden ná achtervolging",
		"Überfall: zeugen gesucht",
		"a",
		"42",
		"Fietsendiefstal in 's-Gravenhage",
	}

	for _, title := range titles {
		got := Slugify(title)
		assert.NotEmpty(t, got)
		assert.Equal(t, strings.ToLower(got), got, "slug must be lowercase")
		for _, r := range got {
			ok := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			assert.True(t, ok, "unexpected rune %q in slug %q for title %q", r, got, title)
		}
		// Same input always yields the same slug.
		assert.Equal(t, got, Slugify(title))
	}
}
