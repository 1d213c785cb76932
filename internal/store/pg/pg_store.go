// Package pg implements the document store on PostgreSQL. Source records
// live in a relational table; published payloads are stored as jsonb with
// the dedup keys lifted into columns.
package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	ConnStr string
}

// NewConnectionPool creates and pings a pgx pool.
func NewConnectionPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Store is the PostgreSQL-backed document store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an existing pool and ensures the schema exists.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	slog.Info("postgresql store ready")
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS source_articles (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	link TEXT NOT NULL,
	title TEXT NOT NULL,
	full_text TEXT NOT NULL DEFAULT '',
	image_url TEXT,
	processed BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_source_articles_processed ON source_articles (processed);

CREATE TABLE IF NOT EXISTS published_articles (
	id UUID PRIMARY KEY,
	link TEXT NOT NULL,
	title TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_published_articles_link ON published_articles (link);
CREATE INDEX IF NOT EXISTS idx_published_articles_title ON published_articles (title);
`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]domain.SourceRecord, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query source articles: %w", err)
	}
	defer rows.Close()

	var records []domain.SourceRecord
	for rows.Next() {
		var r domain.SourceRecord
		var imageURL *string
		if err := rows.Scan(&r.ID, &r.Link, &r.Title, &r.Body, &imageURL, &r.Processed); err != nil {
			return nil, fmt.Errorf("scan source article: %w", err)
		}
		if imageURL != nil {
			r.ImageURL = *imageURL
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source articles: %w", err)
	}
	return records, nil
}

func (s *Store) FetchUnprocessed(ctx context.Context, limit int) ([]domain.SourceRecord, error) {
	sql := `SELECT id, link, title, full_text, image_url, processed FROM source_articles WHERE processed = FALSE`
	if limit > 0 {
		return s.query(ctx, sql+` LIMIT $1`, limit)
	}
	return s.query(ctx, sql)
}

func (s *Store) ScanAll(ctx context.Context) ([]domain.SourceRecord, error) {
	return s.query(ctx, `SELECT id, link, title, full_text, image_url, processed FROM source_articles`)
}

func (s *Store) MarkProcessed(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE source_articles SET processed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source record %s not found", id)
	}
	return nil
}

func (s *Store) InsertPayload(ctx context.Context, p domain.ArticlePayload) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	id := uuid.NewString()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO published_articles (id, link, title, payload) VALUES ($1, $2, $3, $4)`,
		id, p.Link, p.Title, payload)
	if err != nil {
		return "", fmt.Errorf("insert payload: %w", err)
	}
	return id, nil
}

func (s *Store) CountByLink(ctx context.Context, link string) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM published_articles WHERE link = $1`, link).Scan(&n); err != nil {
		return 0, fmt.Errorf("count by link: %w", err)
	}
	return n, nil
}

func (s *Store) CountByTitle(ctx context.Context, title string) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM published_articles WHERE title = $1`, title).Scan(&n); err != nil {
		return 0, fmt.Errorf("count by title: %w", err)
	}
	return n, nil
}

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}
