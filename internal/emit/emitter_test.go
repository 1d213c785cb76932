package emit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/render"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
)

func testEmitter(t *testing.T) (*Emitter, domain.ArticlePayload, seo.Graph) {
	t.Helper()
	site := config.DefaultSite()
	renderer, err := render.NewRenderer(site)
	require.NoError(t, err)

	p := domain.ArticlePayload{
		Title:     "Diefstal in centrum",
		BodyHTML:  "<p>Een winkel in het centrum werd vannacht leeggehaald door onbekenden.</p>",
		Timestamp: time.Date(2026, time.January, 2, 15, 4, 0, 0, dutchtime.Location()),
		Slug:      "diefstal-in-centrum",
		Category:  "Nieuws",
		Tags:      []string{"Nederland", "Nieuws", "Actueel"},
		Synopsis:  "Praat mee over dit artikel.",
	}
	p.URLs = seo.BuildURLs(site, p.Slug)
	p.Share = seo.BuildShareLinks(p.Title, p.URLs.Canonical)
	g := seo.NewBuilder(site).ArticleGraph(p)

	return NewEmitter(t.TempDir(), renderer), p, g
}

func TestEmitWritesAllArtifacts(t *testing.T) {
	e, p, g := testEmitter(t)

	written, err := e.Emit(p, g)
	require.NoError(t, err)
	require.Len(t, written, 5)

	expected := []string{
		filepath.Join("nieuws", p.Slug, "index.html"),
		filepath.Join("nieuws", p.Slug, "amp", "index.html"),
		filepath.Join("nieuws", p.Slug, "api", "index.json"),
		filepath.Join("forum", p.Slug, "index.html"),
		filepath.Join("forum", p.Slug, p.Slug+".xml"),
	}
	for i, rel := range expected {
		assert.Equal(t, filepath.Join(e.Root(), rel), written[i])
		info, err := os.Stat(written[i])
		require.NoError(t, err, rel)
		assert.Positive(t, info.Size(), rel)
	}
}

func TestEmitIsIdempotent(t *testing.T) {
	e, p, g := testEmitter(t)

	first, err := e.Emit(p, g)
	require.NoError(t, err)
	firstContent, err := os.ReadFile(first[0])
	require.NoError(t, err)

	second, err := e.Emit(p, g)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	secondContent, err := os.ReadFile(second[0])
	require.NoError(t, err)
	assert.Equal(t, firstContent, secondContent)
}

func TestEmitOverwritesChangedContent(t *testing.T) {
	e, p, g := testEmitter(t)

	_, err := e.Emit(p, g)
	require.NoError(t, err)

	p.BodyHTML = "<p>Geheel nieuwe inhoud van het artikel na een correctie.</p>"
	g = seo.NewBuilder(config.DefaultSite()).ArticleGraph(p)
	written, err := e.Emit(p, g)
	require.NoError(t, err)

	content, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Geheel nieuwe inhoud")
}
