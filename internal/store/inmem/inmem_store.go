// Package inmem provides an in-memory document store for tests and dry runs.
package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

// Store keeps source records and published payloads in memory. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	sources  []domain.SourceRecord
	payloads map[string]domain.ArticlePayload

	// FailFetch makes FetchUnprocessed return an error, forcing callers onto
	// the ScanAll path. Test hook.
	FailFetch bool
	// FailCounts makes the duplicate counts return an error. Test hook.
	FailCounts bool
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{payloads: make(map[string]domain.ArticlePayload)}
}

// Seed adds source records.
func (s *Store) Seed(records ...domain.SourceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		s.sources = append(s.sources, r)
	}
}

func (s *Store) FetchUnprocessed(ctx context.Context, limit int) ([]domain.SourceRecord, error) {
	if s.FailFetch {
		return nil, fmt.Errorf("filtered query unavailable")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.SourceRecord
	for _, r := range s.sources {
		if r.Processed {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) ScanAll(ctx context.Context) ([]domain.SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SourceRecord, len(s.sources))
	copy(out, s.sources)
	return out, nil
}

func (s *Store) MarkProcessed(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sources {
		if s.sources[i].ID == id {
			s.sources[i].Processed = true
			return nil
		}
	}
	return fmt.Errorf("source record %s not found", id)
}

func (s *Store) InsertPayload(ctx context.Context, p domain.ArticlePayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.payloads[id] = p
	return id, nil
}

func (s *Store) CountByLink(ctx context.Context, link string) (int64, error) {
	if s.FailCounts {
		return 0, fmt.Errorf("count unavailable")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.payloads {
		if p.Link == link {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountByTitle(ctx context.Context, title string) (int64, error) {
	if s.FailCounts {
		return 0, fmt.Errorf("count unavailable")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.payloads {
		if p.Title == title {
			n++
		}
	}
	return n, nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// Payloads returns the stored payloads. Test helper.
func (s *Store) Payloads() []domain.ArticlePayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ArticlePayload, 0, len(s.payloads))
	for _, p := range s.payloads {
		out = append(out, p)
	}
	return out
}

// Sources returns the current source records. Test helper.
func (s *Store) Sources() []domain.SourceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SourceRecord, len(s.sources))
	copy(out, s.sources)
	return out
}
