package sitemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
)

func payloadAt(title, slug string, ts time.Time) domain.ArticlePayload {
	p := domain.ArticlePayload{
		Title:     title,
		Slug:      slug,
		Timestamp: ts,
		Tags:      []string{"Nederland", "Nieuws", "Actueel"},
	}
	p.URLs = seo.BuildURLs(config.DefaultSite(), slug)
	return p
}

func TestAggregateNewsWindow(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, dutchtime.Location())
	a := NewAggregator(config.DefaultSite(), WithClock(func() time.Time { return now }))

	fresh := payloadAt("Vers artikel", "vers-artikel", now.Add(-time.Hour))
	boundary := payloadAt("Randgeval", "randgeval", now.Add(-NewsWindow))
	stale := payloadAt("Oud artikel", "oud-artikel", now.Add(-NewsWindow-time.Second))

	idx, err := a.Aggregate([]domain.ArticlePayload{fresh, boundary, stale})
	require.NoError(t, err)

	news := string(idx.News)
	assert.Contains(t, news, "vers-artikel")
	assert.Contains(t, news, "randgeval", "articles exactly at the window boundary stay included")
	assert.NotContains(t, news, "oud-artikel")
	assert.Contains(t, news, "xmlns:news=\"http://www.google.com/schemas/sitemap-news/0.9\"")
	assert.Contains(t, news, "<news:keywords>Nederland, Nieuws, Actueel</news:keywords>")
	assert.Contains(t, news, "<news:name>DigestPaper.com</news:name>")

	// The forum sitemap lists every discussion, window or not.
	forum := string(idx.Forum)
	assert.Contains(t, forum, "/forum/vers-artikel")
	assert.Contains(t, forum, "/forum/oud-artikel")
}

func TestAggregateMasterIndex(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, dutchtime.Location())
	a := NewAggregator(config.DefaultSite(), WithClock(func() time.Time { return now }))

	idx, err := a.Aggregate(nil)
	require.NoError(t, err)

	master := string(idx.Master)
	assert.Contains(t, master, "<sitemapindex")
	assert.Contains(t, master, "https://digestpaper.com/sitemaps/news.xml")
	assert.Contains(t, master, "https://digestpaper.com/sitemaps/forum.xml")
	assert.Contains(t, master, "https://digestpaper.com/sitemaps/main.xml")
	assert.Contains(t, master, dutchtime.ISO(now))
}

func TestAggregateEscapesTitles(t *testing.T) {
	a := NewAggregator(config.DefaultSite())
	p := payloadAt("Brand & rook <in> woning", "brand-rook-in-woning", dutchtime.Now())

	idx, err := a.Aggregate([]domain.ArticlePayload{p})
	require.NoError(t, err)
	assert.Contains(t, string(idx.News), "Brand &amp; rook &lt;in&gt; woning")
}

func TestWriteTo(t *testing.T) {
	root := t.TempDir()
	a := NewAggregator(config.DefaultSite())
	p := payloadAt("Artikel", "artikel", dutchtime.Now())

	written, err := a.WriteTo(root, []domain.ArticlePayload{p})
	require.NoError(t, err)
	require.Len(t, written, 3)

	assert.Equal(t, filepath.Join(root, "sitemaps", "news.xml"), written[0])
	assert.Equal(t, filepath.Join(root, "sitemaps", "forum.xml"), written[1])
	assert.Equal(t, filepath.Join(root, "sitemap.xml"), written[2])

	for _, path := range written {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`))
	}
}
