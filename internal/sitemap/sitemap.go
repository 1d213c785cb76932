// Package sitemap aggregates the emitted article set into the publication's
// sitemap files: a Google News sitemap limited to the recent publication
// window, a forum sitemap, and the master index tying them together.
package sitemap

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
)

// NewsWindow is how far back articles qualify for the news sitemap.
const NewsWindow = 48 * time.Hour

const newsTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
        xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">
{{- range .Entries}}
  <url>
    <loc>{{xml .Loc}}</loc>
    <news:news>
      <news:publication>
        <news:name>{{xml $.SiteName}}</news:name>
        <news:language>nl</news:language>
      </news:publication>
      <news:publication_date>{{.Published}}</news:publication_date>
      <news:title>{{xml .Title}}</news:title>
      <news:keywords>{{xml .Keywords}}</news:keywords>
    </news:news>
    <lastmod>{{.Published}}</lastmod>
  </url>
{{- end}}
</urlset>
`

const forumTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
{{- range .Entries}}
  <url>
    <loc>{{xml .Loc}}</loc>
    <lastmod>{{.Published}}</lastmod>
    <changefreq>daily</changefreq>
  </url>
{{- end}}
</urlset>
`

const masterTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap>
    <loc>{{xml .Base}}/sitemaps/news.xml</loc>
    <lastmod>{{.Now}}</lastmod>
  </sitemap>
  <sitemap>
    <loc>{{xml .Base}}/sitemaps/forum.xml</loc>
    <lastmod>{{.Now}}</lastmod>
  </sitemap>
  <sitemap>
    <loc>{{xml .Base}}/sitemaps/main.xml</loc>
    <lastmod>{{.Now}}</lastmod>
  </sitemap>
</sitemapindex>
`

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var funcs = template.FuncMap{"xml": xmlReplacer.Replace}

var (
	newsTmpl   = template.Must(template.New("news").Funcs(funcs).Parse(newsTemplate))
	forumTmpl  = template.Must(template.New("forum").Funcs(funcs).Parse(forumTemplate))
	masterTmpl = template.Must(template.New("master").Funcs(funcs).Parse(masterTemplate))
)

// Indexes holds the three generated sitemap documents.
type Indexes struct {
	News   []byte
	Forum  []byte
	Master []byte
}

// Aggregator builds sitemap documents from the emitted article set.
type Aggregator struct {
	site config.Site
	now  func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source used for the news window and lastmod
// stamps.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator builds an Aggregator for the publication.
func NewAggregator(site config.Site, opts ...Option) *Aggregator {
	a := &Aggregator{site: site, now: dutchtime.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type entry struct {
	Loc       string
	Title     string
	Keywords  string
	Published string
}

// Aggregate builds all three sitemap documents. The news sitemap includes
// only articles published within NewsWindow of now; the forum sitemap lists
// every discussion page.
func (a *Aggregator) Aggregate(payloads []domain.ArticlePayload) (Indexes, error) {
	now := a.now()
	cutoff := now.Add(-NewsWindow)

	var newsEntries, forumEntries []entry
	for _, p := range payloads {
		e := entry{
			Loc:       p.URLs.Canonical,
			Title:     p.Title,
			Keywords:  strings.Join(p.Tags, ", "),
			Published: dutchtime.ISO(p.Timestamp),
		}
		if !p.Timestamp.Before(cutoff) {
			newsEntries = append(newsEntries, e)
		}
		e.Loc = p.URLs.Forum
		forumEntries = append(forumEntries, e)
	}

	news, err := execute(newsTmpl, map[string]any{"Entries": newsEntries, "SiteName": a.site.Name})
	if err != nil {
		return Indexes{}, err
	}
	forum, err := execute(forumTmpl, map[string]any{"Entries": forumEntries})
	if err != nil {
		return Indexes{}, err
	}
	master, err := execute(masterTmpl, map[string]any{"Base": a.site.BaseURL, "Now": dutchtime.ISO(now)})
	if err != nil {
		return Indexes{}, err
	}
	return Indexes{News: news, Forum: forum, Master: master}, nil
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render sitemap %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// WriteTo aggregates and writes sitemaps/news.xml, sitemaps/forum.xml and
// sitemap.xml under the output root, returning the written paths.
func (a *Aggregator) WriteTo(root string, payloads []domain.ArticlePayload) ([]string, error) {
	idx, err := a.Aggregate(payloads)
	if err != nil {
		return nil, err
	}

	files := []struct {
		path string
		data []byte
	}{
		{filepath.Join(root, "sitemaps", "news.xml"), idx.News},
		{filepath.Join(root, "sitemaps", "forum.xml"), idx.Forum},
		{filepath.Join(root, "sitemap.xml"), idx.Master},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return written, fmt.Errorf("create sitemap dir: %w", err)
		}
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", f.path, err)
		}
		written = append(written, f.path)
	}

	slog.Info("sitemaps written", "articles", len(payloads), "files", len(written))
	return written, nil
}
