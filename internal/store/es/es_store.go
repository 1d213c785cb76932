// Package es implements the document store on Elasticsearch, with one index
// for scraped source records and one for published payloads.
package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

// ClientConfig holds the Elasticsearch connection settings.
type ClientConfig struct {
	Addresses   []string
	SourceIndex string
	DestIndex   string
	Username    string
	Password    string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}
	return elasticsearch.NewTypedClient(cfg)
}

// Store is the Elasticsearch-backed document store.
type Store struct {
	client      *elasticsearch.TypedClient
	sourceIndex string
	destIndex   string
}

// NewStore creates the client and verifies connectivity.
func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if _, err := client.Ping().Do(ctx); err != nil {
		return nil, fmt.Errorf("ping elasticsearch: %w", err)
	}
	slog.Info("elasticsearch store ready", "source", config.SourceIndex, "dest", config.DestIndex)
	return &Store{
		client:      client,
		sourceIndex: config.SourceIndex,
		destIndex:   config.DestIndex,
	}, nil
}

// sourceDoc mirrors domain.SourceRecord; the record id is carried in the
// document body so hits decode without touching hit metadata.
type sourceDoc struct {
	ID        string `json:"id"`
	Link      string `json:"link"`
	Title     string `json:"title"`
	Body      string `json:"fullText"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Processed bool   `json:"processed"`
}

func (d sourceDoc) toDomain() domain.SourceRecord {
	return domain.SourceRecord{
		ID:        d.ID,
		Link:      d.Link,
		Title:     d.Title,
		Body:      d.Body,
		ImageURL:  d.ImageURL,
		Processed: d.Processed,
	}
}

func (s *Store) search(ctx context.Context, query *types.Query, limit int) ([]domain.SourceRecord, error) {
	req := s.client.Search().Index(s.sourceIndex)
	if query != nil {
		req = req.Query(query)
	}
	if limit > 0 {
		req = req.Size(limit)
	} else {
		req = req.Size(10000)
	}

	res, err := req.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search source index: %w", err)
	}

	records := make([]domain.SourceRecord, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc sourceDoc
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal source record: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	return records, nil
}

func (s *Store) FetchUnprocessed(ctx context.Context, limit int) ([]domain.SourceRecord, error) {
	return s.search(ctx, &types.Query{
		Term: map[string]types.TermQuery{
			"processed": {Value: false},
		},
	}, limit)
}

func (s *Store) ScanAll(ctx context.Context) ([]domain.SourceRecord, error) {
	return s.search(ctx, nil, 0)
}

func (s *Store) MarkProcessed(ctx context.Context, id string) error {
	doc, err := json.Marshal(map[string]bool{"processed": true})
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}
	if _, err := s.client.Update(s.sourceIndex, id).Doc(json.RawMessage(doc)).Do(ctx); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return nil
}

func (s *Store) InsertPayload(ctx context.Context, p domain.ArticlePayload) (string, error) {
	id := uuid.NewString()
	res, err := s.client.Index(s.destIndex).Id(id).Document(p).Do(ctx)
	if err != nil {
		return "", fmt.Errorf("index payload: %w", err)
	}
	slog.Debug("payload indexed", "id", id, "index", s.destIndex, "result", res.Result)
	return id, nil
}

func (s *Store) count(ctx context.Context, field, value string) (int64, error) {
	res, err := s.client.Count().Index(s.destIndex).Query(&types.Query{
		Term: map[string]types.TermQuery{
			field: {Value: value},
		},
	}).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("count by %s: %w", field, err)
	}
	return res.Count, nil
}

func (s *Store) CountByLink(ctx context.Context, link string) (int64, error) {
	return s.count(ctx, "link", link)
}

func (s *Store) CountByTitle(ctx context.Context, title string) (int64, error) {
	return s.count(ctx, "title.keyword", title)
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}
