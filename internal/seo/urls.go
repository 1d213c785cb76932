// Package seo resolves the public URL set for an article slug and builds the
// JSON-LD structured-data graphs embedded in the emitted pages.
package seo

import (
	"net/url"
	"strings"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

// BuildURLs derives every public URL for a slug from the site base URL.
// Forum and discussion are aliases of the same page.
func BuildURLs(site config.Site, slug string) domain.URLSet {
	base := strings.TrimRight(site.BaseURL, "/")
	canonical := base + "/nieuws/" + slug
	forum := base + "/forum/" + slug
	return domain.URLSet{
		Canonical:  canonical,
		AMP:        canonical + "/amp",
		Forum:      forum,
		Discussion: forum,
		API:        canonical + "/api/index.json",
	}
}

// BuildShareLinks returns prefilled share URLs for the canonical page.
func BuildShareLinks(title, canonical string) domain.ShareLinks {
	t := url.QueryEscape(title)
	u := url.QueryEscape(canonical)
	return domain.ShareLinks{
		Email:    "mailto:?subject=" + t + "&body=" + u,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + u,
		Twitter:  "https://twitter.com/intent/tweet?url=" + u + "&text=" + t,
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
		WhatsApp: "https://wa.me/?text=" + t + "%20" + u,
	}
}
