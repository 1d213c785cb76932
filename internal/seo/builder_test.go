package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
)

func testPayload() domain.ArticlePayload {
	site := config.DefaultSite()
	p := domain.ArticlePayload{
		Title:         "Diefstal in centrum",
		OriginalTitle: "Politie meldt diefstal",
		Link:          "https://www.politie.nl/nieuws/diefstal",
		BodyHTML:      "<p>Een winkel in het centrum werd vannacht leeggehaald door onbekenden.</p><p>De politie zoekt getuigen van het voorval.</p>",
		Timestamp:     time.Date(2026, time.January, 2, 15, 4, 0, 0, dutchtime.Location()),
		Slug:          "diefstal-in-centrum",
		Category:      "Nieuws",
		Tags:          []string{"Nederland", "Nieuws", "Actueel"},
		Language:      "nl",
		Style:         "Normal",
	}
	p.URLs = BuildURLs(site, p.Slug)
	p.Share = BuildShareLinks(p.Title, p.URLs.Canonical)
	return p
}

func nodeByID(t *testing.T, g Graph, id string) map[string]any {
	t.Helper()
	raw, err := json.Marshal(g)
	require.NoError(t, err)
	var doc struct {
		Nodes []map[string]any `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, n := range doc.Nodes {
		if n["@id"] == id {
			return n
		}
	}
	t.Fatalf("node %q not found in graph", id)
	return nil
}

func TestArticleGraph(t *testing.T) {
	b := NewBuilder(config.DefaultSite())
	p := testPayload()
	g := b.ArticleGraph(p)

	require.Len(t, g.Nodes, 5)
	assert.Equal(t, Context, g.Context)

	canonical := p.URLs.Canonical
	org := nodeByID(t, g, "https://digestpaper.com/#org")
	assert.Equal(t, "Organization", org["@type"])

	news := nodeByID(t, g, canonical+"/#news")
	assert.Equal(t, "Diefstal in centrum", news["headline"])
	assert.Equal(t, "Nederland, Nieuws, Actueel", news["keywords"])
	assert.Equal(t, p.URLs.Forum, news["discussionUrl"])
	assert.Equal(t, p.Link, news["isBasedOn"])
	assert.Equal(t, "PT1M", news["timeRequired"])

	page := nodeByID(t, g, canonical+"/#webpage")
	assert.Equal(t, news["description"], page["description"], "description identical on every node")

	crumbs := nodeByID(t, g, canonical+"/#breadcrumbs")
	items := crumbs["itemListElement"].([]any)
	require.Len(t, items, 3)
	last := items[2].(map[string]any)
	assert.Equal(t, p.Title, last["name"])
	_, hasItem := last["item"]
	assert.False(t, hasItem, "leaf breadcrumb carries no item URL")

	require.NoError(t, Validate(g))
}

func TestArticleGraphDefaultImage(t *testing.T) {
	site := config.DefaultSite()
	b := NewBuilder(site)
	p := testPayload()
	p.ImageURL = ""

	g := b.ArticleGraph(p)
	news := nodeByID(t, g, p.URLs.Canonical+"/#news")
	images := news["image"].([]any)
	require.Len(t, images, 1)
	assert.Equal(t, site.DefaultImage, images[0])
}

func TestForumGraph(t *testing.T) {
	b := NewBuilder(config.DefaultSite())
	p := testPayload()
	p.QAPairs = []domain.QA{
		{Question: "Wat is er gebeurd?", Answer: "Een winkel werd leeggehaald."},
		{Question: "Zoekt de politie getuigen?", Answer: "Ja, getuigen kunnen zich melden."},
	}

	g := b.ForumGraph(p)

	page := nodeByID(t, g, p.URLs.Forum+"#webpage")
	main, ok := page["mainEntity"].(map[string]any)
	require.True(t, ok, "posting is inlined as mainEntity")
	assert.Equal(t, "DiscussionForumPosting", main["@type"])
	assert.Equal(t, p.URLs.Forum+"#forum", main["@id"])

	faq := nodeByID(t, g, p.URLs.Forum+"#faq")
	questions := faq["mainEntity"].([]any)
	require.Len(t, questions, 2)

	// The about reference targets the article document and is declared
	// external to this graph.
	require.NoError(t, Validate(g, p.URLs.Canonical+"/#news"))
	require.Error(t, Validate(g), "about reference dangles without the external id")
}

func TestForumGraphWithoutQA(t *testing.T) {
	b := NewBuilder(config.DefaultSite())
	p := testPayload()

	g := b.ForumGraph(p)
	for _, n := range g.Nodes {
		_, isFAQ := n.(FAQPage)
		assert.False(t, isFAQ, "no FAQPage without extracted pairs")
	}
	require.NoError(t, Validate(g, p.URLs.Canonical+"/#news"))
}

func TestDescriptionPrefersResolved(t *testing.T) {
	b := NewBuilder(config.DefaultSite())
	p := testPayload()
	derived := b.Description(p)

	p.Description = "Politie onderzoekt een reeks inbraken in het centrum."
	assert.Equal(t, p.Description, b.Description(p))
	assert.NotEqual(t, derived, b.Description(p))
}

func TestForumDescription(t *testing.T) {
	b := NewBuilder(config.DefaultSite())
	p := testPayload()

	desc := b.ForumDescription(p)
	assert.Contains(t, desc, "Reacties en meningen over: Diefstal in centrum")
	assert.LessOrEqual(t, len(desc), DescriptionLimit)

	p.Title = strings.Repeat("Zeer lange titel ", 12)
	desc = b.ForumDescription(p)
	assert.True(t, strings.HasPrefix(desc, "Discussie over: "))
	assert.True(t, strings.HasSuffix(desc, "..."))
	assert.LessOrEqual(t, len(desc), DescriptionLimit)
}

func TestValidateRejectsDanglingRef(t *testing.T) {
	g := Graph{
		Context: Context,
		Nodes: []any{
			WebSite{Type: "WebSite", ID: "https://x.test/#website", URL: "https://x.test/", Name: "x", Publisher: Ref{ID: "https://x.test/#org"}},
		},
	}
	err := Validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangling")
}

func TestValidateRejectsDuplicateID(t *testing.T) {
	org := Organization{Type: "Organization", ID: "https://x.test/#org", Name: "x", URL: "https://x.test/"}
	err := Validate(Graph{Context: Context, Nodes: []any{org, org}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
