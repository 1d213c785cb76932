package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/slugify"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/textutil"
)

const (
	bodyChunkSize   = 1200
	bodyMaxTokens   = 1000
	titleMaxTokens  = 80
	titleHardLimit  = 160
	summaryLimit    = 160
	defaultCategory = "Nieuws"
)

func defaultTags() []string {
	return []string{"Nederland", "Nieuws", "Actueel"}
}

// Rewriter rewrites source records into article payloads. A nil Client makes
// every step deterministic: the original text passes through formatting and
// classification falls back to fixed defaults.
type Rewriter struct {
	client   *Client
	site     config.Site
	style    Style
	language Language
	now      func() time.Time
}

// Option configures a Rewriter.
type Option func(*Rewriter)

func WithStyle(s Style) Option {
	return func(r *Rewriter) { r.style = s }
}

func WithLanguage(l Language) Option {
	return func(r *Rewriter) { r.language = l }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Rewriter) { r.now = now }
}

// NewRewriter builds a Rewriter. client may be nil.
func NewRewriter(client *Client, site config.Site, opts ...Option) *Rewriter {
	r := &Rewriter{
		client:   client,
		site:     site,
		style:    StyleNormal,
		language: LanguageDutch,
		now:      dutchtime.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite produces a fully resolved article payload from a source record:
// rewritten body and title, summary, category, tags, slug, URL set, share
// links, forum synopsis and Q&A pairs.
func (r *Rewriter) Rewrite(ctx context.Context, rec domain.SourceRecord) (domain.ArticlePayload, error) {
	if strings.TrimSpace(rec.Title) == "" && strings.TrimSpace(rec.Body) == "" {
		return domain.ArticlePayload{}, fmt.Errorf("source record %s has no title and no body", rec.ID)
	}

	body := r.rewriteBody(ctx, rec.Body)
	bodyHTML := textutil.NormalizeParagraphs(textutil.FormatBodyHTML(body))

	title := r.rewriteTitle(ctx, rec.Title, body)
	slug := slugify.Slugify(title)
	urls := seo.BuildURLs(r.site, slug)

	summary := textutil.Summary(bodyHTML, summaryLimit)
	category := r.category(ctx, bodyHTML)
	tags := r.tags(ctx, bodyHTML)
	now := r.now()

	p := domain.ArticlePayload{
		Title:         title,
		OriginalTitle: strings.TrimSpace(rec.Title),
		Link:          rec.Link,
		Summary:       summary,
		BodyHTML:      bodyHTML,
		Timestamp:     now,
		Slug:          slug,
		Category:      category,
		Tags:          tags,
		Language:      string(r.language),
		Style:         string(r.style),
		Processed:     true,
		ImageURL:      rec.ImageURL,
		Published:     now,
		URLs:          urls,
	}
	p.Share = seo.BuildShareLinks(title, urls.Canonical)
	p.Description = r.Description(ctx, p)
	p.Synopsis = r.synopsis(ctx, p)
	p.QAPairs = r.qaPairs(ctx, p)
	return p, nil
}

// rewriteBody sends the body through the completion service in fixed-size
// chunks and concatenates the results. Empty output falls back to the
// original text.
func (r *Rewriter) rewriteBody(ctx context.Context, body string) string {
	if r.client == nil || body == "" {
		return body
	}

	var sb strings.Builder
	for i := 0; i < len(body); i += bodyChunkSize {
		end := min(i+bodyChunkSize, len(body))
		out, err := r.client.Complete(ctx, stylePrompt(r.style, r.language), bodyPrompt(r.style, body[i:end]), bodyMaxTokens, 1.0)
		if err != nil {
			slog.Warn("body rewrite chunk failed, keeping original", "offset", i, "error", err)
			return body
		}
		sb.WriteString(out)
		sb.WriteString(" ")
	}

	rewritten := strings.TrimSpace(sb.String())
	if rewritten == "" {
		return body
	}
	return rewritten
}

func (r *Rewriter) rewriteTitle(ctx context.Context, original, body string) string {
	original = strings.TrimSpace(original)
	if r.client == nil {
		return clipTitle(original)
	}
	out, err := r.client.Complete(ctx, stylePrompt(r.style, r.language), titlePrompt(body), titleMaxTokens, 1.0)
	if err != nil {
		slog.Warn("title rewrite failed, keeping original", "error", err)
		return clipTitle(original)
	}
	out = strings.TrimSpace(strings.Trim(out, `"`))
	if out == "" {
		return clipTitle(original)
	}
	return clipTitle(out)
}

func clipTitle(title string) string {
	return textutil.Truncate(title, titleHardLimit)
}

func (r *Rewriter) category(ctx context.Context, bodyHTML string) string {
	if r.client == nil {
		return defaultCategory
	}
	out, err := r.client.Complete(ctx, categoryPrompt, truncate(textutil.Plain(bodyHTML), 1000), 10, 1.0)
	if err != nil {
		slog.Warn("category classification failed", "error", err)
		return defaultCategory
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return defaultCategory
	}
	return fields[0]
}

func (r *Rewriter) tags(ctx context.Context, bodyHTML string) []string {
	if r.client == nil {
		return defaultTags()
	}
	out, err := r.client.Complete(ctx, tagsPrompt, truncate(textutil.Plain(bodyHTML), 400), 30, 1.0)
	if err != nil {
		slog.Warn("tag generation failed", "error", err)
		return defaultTags()
	}
	if !strings.Contains(out, ",") {
		return defaultTags()
	}
	var tags []string
	for _, t := range strings.Split(out, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
		if len(tags) == 3 {
			break
		}
	}
	if len(tags) != 3 {
		return defaultTags()
	}
	return tags
}

// Description asks the service for a single-line meta description and
// validates length and shape; invalid or unavailable output yields the
// deterministic first-sentence derivation.
func (r *Rewriter) Description(ctx context.Context, p domain.ArticlePayload) string {
	fallback := textutil.FirstSentenceDescription(p.BodyHTML, summaryLimit)
	if r.client == nil {
		return fallback
	}
	context := truncate(textutil.Plain(p.BodyHTML), 800)
	if context == "" {
		return fallback
	}
	out, err := r.client.Complete(ctx, descriptionSystemPrompt, descriptionPrompt(p.Title, context), 50, 0.3)
	if err != nil {
		slog.Warn("description generation failed", "error", err)
		return fallback
	}
	if out != "" && len(out) <= summaryLimit && !strings.HasSuffix(out, "..") {
		return out
	}
	return fallback
}

func (r *Rewriter) synopsis(ctx context.Context, p domain.ArticlePayload) string {
	fallback := fmt.Sprintf(
		"Dit is het debat rond het nieuwsartikel '%s'. Deel uw mening over deze %s en lees reacties van andere gebruikers.",
		p.Title, strings.ToLower(p.Category))
	if r.client == nil {
		return fallback
	}
	out, err := r.client.Complete(ctx, stylePrompt(StyleNormal, LanguageDutch), synopsisPrompt(p.Title, p.Category, p.Summary), 100, 1.0)
	if err != nil {
		slog.Warn("synopsis generation failed", "error", err)
		return fallback
	}
	if len(out) > 30 {
		return out
	}
	return fallback
}

func (r *Rewriter) qaPairs(ctx context.Context, p domain.ArticlePayload) []domain.QA {
	if r.client != nil && p.BodyHTML != "" {
		context := truncate(textutil.Plain(p.BodyHTML), 1000)
		out, err := r.client.Complete(ctx, stylePrompt(StyleNormal, LanguageDutch), qaPrompt(p.Title, context), 400, 1.0)
		if err != nil {
			slog.Warn("qa generation failed", "error", err)
		} else if pairs := ParseQAResponse(out); len(pairs) >= 2 {
			return pairs
		}
	}
	return fallbackQA(p.Title, p.Category)
}

// ParseQAResponse extracts Q/A pairs from a "Q: ...\nA: ..." formatted
// response. Continuation lines extend the running answer. At most four pairs
// are kept.
func ParseQAResponse(response string) []domain.QA {
	var pairs []domain.QA
	var q, a string

	flush := func() {
		if q != "" && a != "" {
			pairs = append(pairs, domain.QA{Question: q, Answer: a})
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Q:"):
			flush()
			q = strings.TrimSpace(line[2:])
			a = ""
		case strings.HasPrefix(line, "Vraag:"):
			flush()
			q = strings.TrimSpace(line[6:])
			a = ""
		case strings.HasPrefix(line, "A:"):
			a = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "Antwoord:"):
			a = strings.TrimSpace(line[9:])
		case a != "" && line != "":
			a += " " + line
		}
	}
	flush()

	if len(pairs) > 4 {
		pairs = pairs[:4]
	}
	return pairs
}

// fallbackQA builds a generic FAQ from the title and category, with one
// question specialized to the kind of incident.
func fallbackQA(title, category string) []domain.QA {
	pairs := []domain.QA{
		{
			Question: "Wat gebeurde er precies?",
			Answer:   fmt.Sprintf("Volgens het politiebericht: %s. Meer details staan in het volledige artikel.", title),
		},
		{
			Question: "Wanneer vond dit incident plaats?",
			Answer:   "De exacte tijd en datum van het incident staan vermeld in het nieuwsartikel.",
		},
	}

	lowerCat := strings.ToLower(category)
	lowerTitle := strings.ToLower(title)
	switch {
	case strings.Contains(lowerCat, "opspooring") || strings.Contains(lowerTitle, "gezocht"):
		pairs = append(pairs, domain.QA{
			Question: "Hoe kan ik tips doorgeven aan de politie?",
			Answer:   "Tips kunt u doorgeven via 0800-6070 (gratis) of anoniem via Meld Misdaad Anoniem 0800-7000.",
		})
	case strings.Contains(lowerCat, "verkeer") || strings.Contains(lowerTitle, "ongeluk"):
		pairs = append(pairs, domain.QA{
			Question: "Was er sprake van gewonden?",
			Answer:   "Informatie over eventuele gewonden staat vermeld in het politiebericht.",
		})
	default:
		pairs = append(pairs, domain.QA{
			Question: "Wat doet de politie in deze zaak?",
			Answer:   "De politie onderzoekt de zaak. Updates worden gepubliceerd via officiële politiekanalen.",
		})
	}
	return pairs
}
