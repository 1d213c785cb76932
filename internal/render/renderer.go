// Package render turns resolved article payloads into the emitted artifact
// set: the canonical HTML page, its AMP variant, the forum alias page, the
// JSON API snapshot, and the per-article RSS seed feed.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/textutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders every artifact for one article.
type Renderer struct {
	site     config.Site
	builder  *seo.Builder
	pages    *htmltemplate.Template
	feedTmpl *texttemplate.Template
}

// NewRenderer parses the embedded templates for the given publication.
func NewRenderer(site config.Site) (*Renderer, error) {
	pages, err := htmltemplate.ParseFS(templateFS, "templates/article.html.tmpl", "templates/amp.html.tmpl", "templates/forum.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	feedTmpl, err := texttemplate.New("feed.xml.tmpl").Funcs(texttemplate.FuncMap{
		"xml": xmlEscape,
	}).ParseFS(templateFS, "templates/feed.xml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse feed template: %w", err)
	}
	return &Renderer{
		site:     site,
		builder:  seo.NewBuilder(site),
		pages:    pages,
		feedTmpl: feedTmpl,
	}, nil
}

// pageView is the template context shared by the article, AMP and forum
// pages.
type pageView struct {
	Site         config.Site
	Article      domain.ArticlePayload
	Description  string
	BodyHTML     htmltemplate.HTML
	JSONLD       htmltemplate.JS
	ReadableDate string
	ISODate      string
	ReadingTime  int
	Image        string
	Keywords     string
}

func (r *Renderer) view(p domain.ArticlePayload, g seo.Graph) (pageView, error) {
	ld, err := json.Marshal(g)
	if err != nil {
		return pageView{}, fmt.Errorf("marshal graph: %w", err)
	}
	image := p.ImageURL
	if image == "" {
		image = r.site.DefaultImage
	}
	return pageView{
		Site:         r.site,
		Article:      p,
		Description:  r.builder.Description(p),
		BodyHTML:     htmltemplate.HTML(p.BodyHTML),
		JSONLD:       htmltemplate.JS(ld),
		ReadableDate: dutchtime.Readable(p.Timestamp),
		ISODate:      dutchtime.ISO(p.Timestamp),
		ReadingTime:  textutil.ReadingTimeMinutes(p.BodyHTML),
		Image:        image,
		Keywords:     strings.Join(p.Tags, ", "),
	}, nil
}

func (r *Renderer) renderPage(name string, view pageView) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pages.ExecuteTemplate(&buf, name, view); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Article renders the canonical HTML page with the given structured-data
// graph embedded.
func (r *Renderer) Article(p domain.ArticlePayload, g seo.Graph) ([]byte, error) {
	view, err := r.view(p, g)
	if err != nil {
		return nil, err
	}
	return r.renderPage("article.html.tmpl", view)
}

// AMP renders the AMP variant. The body is transformed to AMP-valid markup
// and the same graph is embedded so both surfaces describe the page
// identically.
func (r *Renderer) AMP(p domain.ArticlePayload, g seo.Graph) ([]byte, error) {
	view, err := r.view(p, g)
	if err != nil {
		return nil, err
	}
	view.BodyHTML = htmltemplate.HTML(AMPBody(p.BodyHTML))
	return r.renderPage("amp.html.tmpl", view)
}

// Forum renders the forum alias page with its own discussion graph and its
// own meta description, distinct from the article page's.
func (r *Renderer) Forum(p domain.ArticlePayload) ([]byte, error) {
	g := r.builder.ForumGraph(p)
	if err := seo.Validate(g, p.URLs.Canonical+"/#news"); err != nil {
		return nil, fmt.Errorf("forum graph: %w", err)
	}
	view, err := r.view(p, g)
	if err != nil {
		return nil, err
	}
	view.Description = r.builder.ForumDescription(p)
	return r.renderPage("forum.html.tmpl", view)
}

// Feed renders the per-article RSS seed feed, a single item pointing readers
// at the forum discussion.
func (r *Renderer) Feed(p domain.ArticlePayload) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Site        config.Site
		Article     domain.ArticlePayload
		Description string
		PubDate     string
	}{
		Site:        r.site,
		Article:     p,
		Description: r.builder.Description(p),
		PubDate:     p.Timestamp.In(dutchtime.Location()).Format("Mon, 02 Jan 2006 15:04:05 -0700"),
	}
	if err := r.feedTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}
	return buf.Bytes(), nil
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
