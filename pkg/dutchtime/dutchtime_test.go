package dutchtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadable(t *testing.T) {
	ts := time.Date(2026, time.January, 2, 15, 4, 0, 0, Location())
	assert.Equal(t, "2 januari 2026 om 15:04", Readable(ts))

	ts = time.Date(2025, time.August, 30, 9, 5, 0, 0, Location())
	assert.Equal(t, "30 augustus 2025 om 09:05", Readable(ts))
}

func TestISO(t *testing.T) {
	ts := time.Date(2026, time.January, 2, 15, 4, 5, 123456789, Location())
	got := ISO(ts)

	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts.Truncate(time.Second)))
}

func TestLocation(t *testing.T) {
	require.NotNil(t, Location())
	// Same instance on repeated calls.
	assert.Same(t, Location(), Location())
}
