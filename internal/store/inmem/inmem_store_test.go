package inmem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

func TestFetchUnprocessed(t *testing.T) {
	s := NewStore()
	s.Seed(
		domain.SourceRecord{ID: "a", Title: "een"},
		domain.SourceRecord{ID: "b", Title: "twee", Processed: true},
		domain.SourceRecord{ID: "c", Title: "drie"},
	)

	out, err := s.FetchUnprocessed(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)

	limited, err := s.FetchUnprocessed(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMarkProcessed(t *testing.T) {
	s := NewStore()
	s.Seed(domain.SourceRecord{ID: "a", Title: "een"})

	require.NoError(t, s.MarkProcessed(context.Background(), "a"))
	out, err := s.FetchUnprocessed(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	require.Error(t, s.MarkProcessed(context.Background(), "missing"))
}

func TestDuplicateCounts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.InsertPayload(ctx, domain.ArticlePayload{Title: "Titel", Link: "https://x/1"})
	require.NoError(t, err)

	n, err := s.CountByLink(ctx, "https://x/1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.CountByTitle(ctx, "Titel")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.CountByLink(ctx, "https://x/other")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestScanAllIncludesProcessed(t *testing.T) {
	s := NewStore()
	s.Seed(
		domain.SourceRecord{ID: "a", Processed: true},
		domain.SourceRecord{ID: "b"},
	)
	out, err := s.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestFailureHooks(t *testing.T) {
	s := NewStore()
	s.FailFetch = true
	_, err := s.FetchUnprocessed(context.Background(), 0)
	require.Error(t, err)

	s.FailCounts = true
	_, err = s.CountByLink(context.Background(), "x")
	require.Error(t, err)
}
