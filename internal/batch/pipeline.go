// Package batch orchestrates one publication run: fetch unprocessed source
// records, rewrite them, resolve slugs and graphs, persist the payloads,
// emit the artifact tree, and aggregate sitemaps.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/emit"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/metrics"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/seo"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/sitemap"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store"
)

// Rewriter turns a source record into a publishable payload.
type Rewriter interface {
	Rewrite(ctx context.Context, rec domain.SourceRecord) (domain.ArticlePayload, error)
}

// Options controls one batch run.
type Options struct {
	// Limit caps how many unprocessed records are handled. <= 0 means all.
	Limit int
	// Sleep paces consecutive records; skipped after the last one.
	Sleep time.Duration
	// DryRun runs the whole pipeline but writes nothing: no store writes, no
	// artifacts, no sitemaps.
	DryRun bool
	// WriteSitemaps regenerates the sitemap set after the run.
	WriteSitemaps bool
}

// Pipeline wires the batch dependencies together.
type Pipeline struct {
	store    store.Store
	rewriter Rewriter
	emitter  *emit.Emitter
	builder  *seo.Builder
	sitemaps *sitemap.Aggregator
	recorder *metrics.Recorder
	opts     Options
}

// NewPipeline builds a Pipeline. recorder may be nil.
func NewPipeline(site config.Site, st store.Store, rw Rewriter, em *emit.Emitter, agg *sitemap.Aggregator, rec *metrics.Recorder, opts Options) *Pipeline {
	return &Pipeline{
		store:    st,
		rewriter: rw,
		emitter:  em,
		builder:  seo.NewBuilder(site),
		sitemaps: agg,
		recorder: rec,
		opts:     opts,
	}
}

// Run executes one batch and returns the per-record report. Individual
// record failures are counted, logged and do not abort the run; only fetch
// failure on both paths is fatal.
func (p *Pipeline) Run(ctx context.Context) (domain.BatchReport, error) {
	records, err := p.fetch(ctx)
	if err != nil {
		return domain.BatchReport{}, err
	}
	slog.Info("batch starting", "records", len(records), "dry_run", p.opts.DryRun)

	var report domain.BatchReport
	var published []domain.ArticlePayload

	for i, rec := range records {
		report.Attempted++
		result, payload := p.process(ctx, rec)
		report.Results = append(report.Results, result)

		switch {
		case result.Err != nil:
			report.Failed++
			p.recorder.RecordFailed()
			slog.Error("record failed", "id", rec.ID, "title", rec.Title, "error", result.Err)
		case result.Skipped:
			report.Skipped++
			p.recorder.RecordSkipped()
			slog.Info("record skipped as duplicate", "id", rec.ID, "title", rec.Title)
		default:
			report.Succeeded++
			p.recorder.RecordProcessed()
			published = append(published, *payload)
		}

		if i < len(records)-1 && p.opts.Sleep > 0 {
			select {
			case <-time.After(p.opts.Sleep):
			case <-ctx.Done():
				return report, ctx.Err()
			}
		}
	}

	if !p.opts.DryRun {
		report.Artifacts = len(published) * 5
	}
	p.recorder.ArtifactsWritten(report.Artifacts)

	if p.opts.WriteSitemaps && !p.opts.DryRun && len(published) > 0 {
		if _, err := p.sitemaps.WriteTo(p.emitter.Root(), published); err != nil {
			slog.Warn("could not write sitemaps", "error", err)
		}
	}

	slog.Info("batch finished",
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"artifacts", report.Artifacts,
	)
	return report, nil
}

// fetch queries unprocessed records, falling back to a full scan with
// client-side filtering when the filtered query is unavailable.
func (p *Pipeline) fetch(ctx context.Context) ([]domain.SourceRecord, error) {
	records, err := p.store.FetchUnprocessed(ctx, p.opts.Limit)
	if err == nil {
		return records, nil
	}
	slog.Warn("filtered fetch failed, falling back to full scan", "error", err)

	all, scanErr := p.store.ScanAll(ctx)
	if scanErr != nil {
		return nil, fmt.Errorf("fetch source records: %w", scanErr)
	}
	var out []domain.SourceRecord
	for _, r := range all {
		if r.Processed {
			continue
		}
		out = append(out, r)
		if p.opts.Limit > 0 && len(out) == p.opts.Limit {
			break
		}
	}
	return out, nil
}

// process runs one record through the pipeline and returns its result plus
// the payload when it succeeded.
func (p *Pipeline) process(ctx context.Context, rec domain.SourceRecord) (domain.RecordResult, *domain.ArticlePayload) {
	result := domain.RecordResult{SourceID: rec.ID, Title: rec.Title}

	if p.isDuplicate(ctx, rec) {
		result.Skipped = true
		return result, nil
	}

	payload, err := p.rewriter.Rewrite(ctx, rec)
	if err != nil {
		result.Err = fmt.Errorf("rewrite: %w", err)
		return result, nil
	}
	result.Slug = payload.Slug

	graph := p.builder.ArticleGraph(payload)
	if err := seo.Validate(graph); err != nil {
		result.Err = fmt.Errorf("structured data: %w", err)
		return result, nil
	}

	if p.opts.DryRun {
		slog.Info("dry run, not persisting or emitting", "slug", payload.Slug)
		return result, &payload
	}

	destID, err := p.store.InsertPayload(ctx, payload)
	if err != nil {
		result.Err = fmt.Errorf("insert payload: %w", err)
		return result, nil
	}
	slog.Info("payload saved", "dest_id", destID, "slug", payload.Slug)

	if err := p.store.MarkProcessed(ctx, rec.ID); err != nil {
		result.Err = fmt.Errorf("mark processed: %w", err)
		return result, nil
	}

	if _, err := p.emitter.Emit(payload, graph); err != nil {
		result.Err = fmt.Errorf("emit artifacts: %w", err)
		return result, nil
	}

	return result, &payload
}

// isDuplicate checks the destination side for an exact link or title match.
// A failing check is treated as no duplicate so a flaky store never blocks
// publication.
func (p *Pipeline) isDuplicate(ctx context.Context, rec domain.SourceRecord) bool {
	if rec.Link != "" {
		n, err := p.store.CountByLink(ctx, rec.Link)
		if err != nil {
			slog.Warn("duplicate check by link failed, continuing", "id", rec.ID, "error", err)
		} else if n > 0 {
			return true
		}
	}
	if rec.Title != "" {
		n, err := p.store.CountByTitle(ctx, rec.Title)
		if err != nil {
			slog.Warn("duplicate check by title failed, continuing", "id", rec.ID, "error", err)
		} else if n > 0 {
			return true
		}
	}
	return false
}
