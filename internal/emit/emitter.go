// Package emit writes the rendered artifact set for an article into the
// static output tree.
package emit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/render"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Emitter renders and writes all artifacts for an article under the output
// root. Existing files are overwritten so re-emitting a slug is idempotent.
type Emitter struct {
	root     string
	renderer *render.Renderer
}

// NewEmitter builds an Emitter rooted at the given output directory.
func NewEmitter(root string, renderer *render.Renderer) *Emitter {
	return &Emitter{root: root, renderer: renderer}
}

// Root returns the output root directory.
func (e *Emitter) Root() string {
	return e.root
}

// Emit writes the five artifacts for one article and returns the written
// paths. A failed render or write aborts the emit; files already written in
// this call are left in place.
func (e *Emitter) Emit(p domain.ArticlePayload, g seo.Graph) ([]string, error) {
	type artifact struct {
		path   string
		render func() ([]byte, error)
	}

	artifacts := []artifact{
		{filepath.Join("nieuws", p.Slug, "index.html"), func() ([]byte, error) { return e.renderer.Article(p, g) }},
		{filepath.Join("nieuws", p.Slug, "amp", "index.html"), func() ([]byte, error) { return e.renderer.AMP(p, g) }},
		{filepath.Join("nieuws", p.Slug, "api", "index.json"), func() ([]byte, error) { return e.renderer.APISnapshot(p, g) }},
		{filepath.Join("forum", p.Slug, "index.html"), func() ([]byte, error) { return e.renderer.Forum(p) }},
		{filepath.Join("forum", p.Slug, p.Slug+".xml"), func() ([]byte, error) { return e.renderer.Feed(p) }},
	}

	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		data, err := a.render()
		if err != nil {
			return written, fmt.Errorf("render %s: %w", a.path, err)
		}
		full := filepath.Join(e.root, a.path)
		if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
			return written, fmt.Errorf("create dir for %s: %w", a.path, err)
		}
		if err := os.WriteFile(full, data, filePerm); err != nil {
			return written, fmt.Errorf("write %s: %w", a.path, err)
		}
		written = append(written, full)
	}

	slog.Debug("artifacts emitted", "slug", p.Slug, "count", len(written))
	return written, nil
}
