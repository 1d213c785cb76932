// Package store abstracts the document backend holding source records and
// published article payloads. Backends live in subpackages; an env-driven
// factory selects one at startup.
package store

import (
	"context"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

// Store is the document backend used by the batch orchestrator. The source
// side holds scraped records with a processed marker; the destination side
// holds published payloads and answers the duplicate checks.
type Store interface {
	// FetchUnprocessed returns up to limit source records with processed ==
	// false. limit <= 0 means no limit.
	FetchUnprocessed(ctx context.Context, limit int) ([]domain.SourceRecord, error)

	// ScanAll returns every source record. Used as a degraded fetch path when
	// the filtered query fails.
	ScanAll(ctx context.Context) ([]domain.SourceRecord, error)

	// MarkProcessed flips the processed marker on a source record.
	MarkProcessed(ctx context.Context, id string) error

	// InsertPayload stores a published payload and returns its id.
	InsertPayload(ctx context.Context, p domain.ArticlePayload) (string, error)

	// CountByLink and CountByTitle count published payloads matching exactly,
	// for duplicate detection.
	CountByLink(ctx context.Context, link string) (int64, error)
	CountByTitle(ctx context.Context, title string) (int64, error)

	// Close releases backend connections.
	Close(ctx context.Context) error
}

type Type string

const (
	Mongo Type = "mongo"
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
