package render

import (
	"encoding/json"
	"fmt"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/dutchtime"
)

// Snapshot is the machine-readable JSON artifact served next to the article
// page. Field names are part of the public API surface.
type Snapshot struct {
	Title         string            `json:"title"`
	OriginalTitle string            `json:"originalTitle"`
	Link          string            `json:"link"`
	Summary       string            `json:"summary"`
	Description   string            `json:"description"`
	FullText      string            `json:"fullText"`
	Timestamp     string            `json:"timestamp"`
	Slug          string            `json:"slug"`
	Category      string            `json:"category"`
	Tags          []string          `json:"tags"`
	Language      string            `json:"language"`
	Style         string            `json:"style"`
	Processed     bool              `json:"processed"`
	ImageURL      *string           `json:"imageUrl"`
	Published     string            `json:"published"`
	URLs          domain.URLSet     `json:"urls"`
	Share         domain.ShareLinks `json:"share"`
	JSONLD        seo.Graph         `json:"jsonld"`
}

// APISnapshot renders the JSON snapshot for an article with its page graph
// embedded. imageUrl is explicit null when the article has no image.
func (r *Renderer) APISnapshot(p domain.ArticlePayload, g seo.Graph) ([]byte, error) {
	var image *string
	if p.ImageURL != "" {
		image = &p.ImageURL
	}
	snap := Snapshot{
		Title:         p.Title,
		OriginalTitle: p.OriginalTitle,
		Link:          p.Link,
		Summary:       p.Summary,
		Description:   r.builder.Description(p),
		FullText:      p.BodyHTML,
		Timestamp:     dutchtime.ISO(p.Timestamp),
		Slug:          p.Slug,
		Category:      p.Category,
		Tags:          p.Tags,
		Language:      p.Language,
		Style:         p.Style,
		Processed:     p.Processed,
		ImageURL:      image,
		Published:     dutchtime.ISO(p.Published),
		URLs:          p.URLs,
		Share:         p.Share,
		JSONLD:        g,
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return out, nil
}
