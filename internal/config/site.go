// Package config carries the publication identity used across renderers,
// structured data, and sitemaps.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site describes the publication the artifacts are emitted for.
type Site struct {
	BaseURL      string   `yaml:"baseUrl"`
	Name         string   `yaml:"name"`
	TwitterSite  string   `yaml:"twitterSite"`
	LogoURL      string   `yaml:"logoUrl"`
	DefaultImage string   `yaml:"defaultImage"`
	SameAs       []string `yaml:"sameAs"`
	Language     string   `yaml:"language"`
}

// DefaultSite returns the DigestPaper publication identity.
func DefaultSite() Site {
	base := "https://digestpaper.com"
	return Site{
		BaseURL:      base,
		Name:         "DigestPaper.com",
		TwitterSite:  "@DigestPaper",
		LogoURL:      base + "/android-chrome-512x512.png",
		DefaultImage: base + "/social/picture-article-digestpaper.png",
		SameAs: []string{
			"https://x.com/DigestPaper",
			"https://www.facebook.com/DigestPaper",
		},
		Language: "nl-NL",
	}
}

// LoadSite reads a YAML site config, filling unset fields from DefaultSite.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	data, err := os.ReadFile(path)
	if err != nil {
		return site, fmt.Errorf("read site config: %w", err)
	}
	var override Site
	if err := yaml.Unmarshal(data, &override); err != nil {
		return site, fmt.Errorf("parse site config %s: %w", path, err)
	}
	site.merge(override)
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	return site, nil
}

func (s *Site) merge(o Site) {
	if o.BaseURL != "" {
		s.BaseURL = o.BaseURL
	}
	if o.Name != "" {
		s.Name = o.Name
	}
	if o.TwitterSite != "" {
		s.TwitterSite = o.TwitterSite
	}
	if o.LogoURL != "" {
		s.LogoURL = o.LogoURL
	}
	if o.DefaultImage != "" {
		s.DefaultImage = o.DefaultImage
	}
	if len(o.SameAs) > 0 {
		s.SameAs = o.SameAs
	}
	if o.Language != "" {
		s.Language = o.Language
	}
}
