package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
)

func TestBuildURLs(t *testing.T) {
	urls := BuildURLs(config.DefaultSite(), "diefstal-in-centrum")

	assert.Equal(t, "https://digestpaper.com/nieuws/diefstal-in-centrum", urls.Canonical)
	assert.Equal(t, urls.Canonical+"/amp", urls.AMP)
	assert.Equal(t, "https://digestpaper.com/forum/diefstal-in-centrum", urls.Forum)
	assert.Equal(t, urls.Forum, urls.Discussion, "forum and discussion alias the same page")
	assert.Equal(t, urls.Canonical+"/api/index.json", urls.API)
}

func TestBuildURLsTrailingSlashBase(t *testing.T) {
	site := config.DefaultSite()
	site.BaseURL = "https://digestpaper.com/"
	urls := BuildURLs(site, "artikel")
	assert.Equal(t, "https://digestpaper.com/nieuws/artikel", urls.Canonical)
}

func TestBuildShareLinks(t *testing.T) {
	share := BuildShareLinks("Brand & rook in woning", "https://digestpaper.com/nieuws/brand-rook-in-woning")

	assert.True(t, strings.HasPrefix(share.Email, "mailto:?subject="))
	assert.Contains(t, share.Email, "Brand+%26+rook")
	assert.Contains(t, share.Facebook, "facebook.com/sharer/sharer.php?u=https%3A%2F%2F")
	assert.Contains(t, share.Twitter, "twitter.com/intent/tweet?url=")
	assert.Contains(t, share.Twitter, "&text=Brand")
	assert.Contains(t, share.LinkedIn, "linkedin.com/sharing/share-offsite/?url=")
	assert.Contains(t, share.WhatsApp, "wa.me/?text=")
	// The raw ampersand never leaks into a query value.
	assert.NotContains(t, share.WhatsApp, " & ")
}
