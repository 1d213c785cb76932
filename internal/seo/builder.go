package seo

import (
	"fmt"
	"strings"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/textutil"
)

// DescriptionLimit bounds meta descriptions and graph descriptions.
const DescriptionLimit = 160

// Builder assembles JSON-LD graphs for article and forum pages.
type Builder struct {
	Site config.Site
}

// NewBuilder returns a Builder for the given publication.
func NewBuilder(site config.Site) *Builder {
	return &Builder{Site: site}
}

func (b *Builder) orgID() string     { return b.Site.BaseURL + "/#org" }
func (b *Builder) websiteID() string { return b.Site.BaseURL + "/#website" }

func (b *Builder) organization() Organization {
	return Organization{
		Type:   "Organization",
		ID:     b.orgID(),
		Name:   b.Site.Name,
		URL:    b.Site.BaseURL + "/",
		Logo:   &Image{Type: "ImageObject", URL: b.Site.LogoURL},
		SameAs: b.Site.SameAs,
	}
}

func (b *Builder) website() WebSite {
	return WebSite{
		Type:       "WebSite",
		ID:         b.websiteID(),
		URL:        b.Site.BaseURL + "/",
		Name:       b.Site.Name,
		Publisher:  Ref{ID: b.orgID()},
		InLanguage: b.Site.Language,
		PotentialAction: &SearchAction{
			Type:       "SearchAction",
			Target:     b.Site.BaseURL + "/search?q={search_term_string}",
			QueryInput: "required name=search_term_string",
		},
	}
}

// Description returns the page meta description: the one resolved during the
// rewrite when present, else the first-sentence derivation from the body.
// Every surface embedding the article (page, AMP, API snapshot, graph) uses
// this same resolution so the description never diverges between artifacts.
func (b *Builder) Description(p domain.ArticlePayload) string {
	if p.Description != "" {
		return p.Description
	}
	return textutil.FirstSentenceDescription(p.BodyHTML, DescriptionLimit)
}

// ForumDescription derives the forum alias page's own meta description. The
// long-title fallback stays under the description limit.
func (b *Builder) ForumDescription(p domain.ArticlePayload) string {
	desc := fmt.Sprintf("Reacties en meningen over: %s. Neem deel aan de discussie over dit politienieuws op %s.", p.Title, b.Site.Name)
	if len(desc) > DescriptionLimit {
		desc = fmt.Sprintf("Discussie over: %s...", textutil.Truncate(p.Title, 100))
	}
	return desc
}

func (b *Builder) image(p domain.ArticlePayload) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return b.Site.DefaultImage
}

// ArticleGraph builds the five-node graph for the canonical article page.
func (b *Builder) ArticleGraph(p domain.ArticlePayload) Graph {
	canonical := p.URLs.Canonical
	webpageID := canonical + "/#webpage"
	newsID := canonical + "/#news"
	breadcrumbsID := canonical + "/#breadcrumbs"

	published := dutchtime.ISO(p.Timestamp)
	desc := b.Description(p)

	webpage := WebPage{
		Type:          "WebPage",
		ID:            webpageID,
		URL:           canonical,
		Name:          p.Title,
		Description:   desc,
		IsPartOf:      Ref{ID: b.websiteID()},
		Breadcrumb:    &Ref{ID: breadcrumbsID},
		PrimaryImage:  &Image{Type: "ImageObject", URL: b.image(p)},
		DatePublished: published,
		DateModified:  published,
		InLanguage:    b.Site.Language,
	}

	news := NewsArticle{
		Type:             "NewsArticle",
		ID:               newsID,
		Headline:         p.Title,
		Description:      desc,
		Image:            []string{b.image(p)},
		DatePublished:    published,
		DateModified:     published,
		Author:           Ref{ID: b.orgID()},
		Publisher:        Ref{ID: b.orgID()},
		MainEntityOfPage: Ref{ID: webpageID},
		ArticleSection:   p.Category,
		Keywords:         strings.Join(p.Tags, ", "),
		WordCount:        textutil.WordCount(p.BodyHTML),
		TimeRequired:     fmt.Sprintf("PT%dM", textutil.ReadingTimeMinutes(p.BodyHTML)),
		InLanguage:       b.Site.Language,
		DiscussionURL:    p.URLs.Discussion,
		IsBasedOn:        p.Link,
	}

	breadcrumbs := BreadcrumbList{
		Type: "BreadcrumbList",
		ID:   breadcrumbsID,
		ItemListElement: []ListItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: b.Site.BaseURL + "/"},
			{Type: "ListItem", Position: 2, Name: "Nieuws", Item: b.Site.BaseURL + "/nieuws"},
			{Type: "ListItem", Position: 3, Name: p.Title},
		},
	}

	return Graph{
		Context: Context,
		Nodes:   []any{b.organization(), b.website(), webpage, news, breadcrumbs},
	}
}

// ForumGraph builds the graph for the forum alias page. The WebPage node
// carries the posting inline as its mainEntity; a FAQPage node is added only
// when question and answer pairs were extracted.
func (b *Builder) ForumGraph(p domain.ArticlePayload) Graph {
	forum := p.URLs.Forum
	forumID := forum + "#forum"
	webpageID := forum + "#webpage"
	breadcrumbID := forum + "#breadcrumb"

	published := dutchtime.ISO(p.Timestamp)
	text := p.Synopsis
	if text == "" {
		text = b.Description(p)
	}

	posting := DiscussionForumPosting{
		Type:          "DiscussionForumPosting",
		ID:            forumID,
		Headline:      p.Title,
		URL:           forum,
		Text:          text,
		DatePublished: published,
		Author:        Ref{ID: b.orgID()},
		Publisher:     Ref{ID: b.orgID()},
		IsPartOf:      Ref{ID: b.websiteID()},
		About:         Ref{ID: p.URLs.Canonical + "/#news"},
		InLanguage:    b.Site.Language,
	}

	webpage := WebPage{
		Type:        "WebPage",
		ID:          webpageID,
		URL:         forum,
		Name:        p.Title + " - Forum",
		Description: text,
		IsPartOf:    Ref{ID: b.websiteID()},
		Breadcrumb:  &Ref{ID: breadcrumbID},
		InLanguage:  b.Site.Language,
		MainEntity:  posting,
	}

	breadcrumb := BreadcrumbList{
		Type: "BreadcrumbList",
		ID:   breadcrumbID,
		ItemListElement: []ListItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: b.Site.BaseURL + "/"},
			{Type: "ListItem", Position: 2, Name: "Forum", Item: b.Site.BaseURL + "/forum"},
			{Type: "ListItem", Position: 3, Name: p.Title},
		},
	}

	nodes := []any{b.organization(), b.website(), webpage, breadcrumb}
	if len(p.QAPairs) > 0 {
		faq := FAQPage{Type: "FAQPage", ID: forum + "#faq"}
		for _, qa := range p.QAPairs {
			faq.MainEntity = append(faq.MainEntity, Question{
				Type: "Question",
				Name: qa.Question,
				AcceptedAnswer: Answer{
					Type: "Answer",
					Text: qa.Answer,
				},
			})
		}
		nodes = append(nodes, faq)
	}

	return Graph{Context: Context, Nodes: nodes}
}
