// Package mongo implements the document store on MongoDB, with separate
// collections for scraped source records and published payloads.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/domain"
)

// Config holds the MongoDB connection settings.
type Config struct {
	URI              string
	Database         string
	SourceCollection string
	DestCollection   string
}

// Store is the MongoDB-backed document store.
type Store struct {
	client *mongo.Client
	source *mongo.Collection
	dest   *mongo.Collection
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	slog.Info("mongodb store ready",
		"database", cfg.Database,
		"source", cfg.SourceCollection,
		"dest", cfg.DestCollection,
	)
	return &Store{
		client: client,
		source: db.Collection(cfg.SourceCollection),
		dest:   db.Collection(cfg.DestCollection),
	}, nil
}

// sourceDoc mirrors domain.SourceRecord with a native ObjectID.
type sourceDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Link      string             `bson:"link"`
	Title     string             `bson:"title"`
	Body      string             `bson:"fullText"`
	ImageURL  string             `bson:"imageUrl,omitempty"`
	Processed bool               `bson:"processed"`
}

func (d sourceDoc) toDomain() domain.SourceRecord {
	return domain.SourceRecord{
		ID:        d.ID.Hex(),
		Link:      d.Link,
		Title:     d.Title,
		Body:      d.Body,
		ImageURL:  d.ImageURL,
		Processed: d.Processed,
	}
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int) ([]domain.SourceRecord, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.source.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query source collection: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []sourceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode source records: %w", err)
	}
	records := make([]domain.SourceRecord, len(docs))
	for i, d := range docs {
		records[i] = d.toDomain()
	}
	return records, nil
}

func (s *Store) FetchUnprocessed(ctx context.Context, limit int) ([]domain.SourceRecord, error) {
	return s.find(ctx, bson.M{"processed": false}, limit)
}

func (s *Store) ScanAll(ctx context.Context) ([]domain.SourceRecord, error) {
	return s.find(ctx, bson.M{}, 0)
}

func (s *Store) MarkProcessed(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid source record id %q: %w", id, err)
	}
	res, err := s.source.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"processed": true}})
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("source record %s not found", id)
	}
	return nil
}

func (s *Store) InsertPayload(ctx context.Context, p domain.ArticlePayload) (string, error) {
	res, err := s.dest.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert payload: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (s *Store) CountByLink(ctx context.Context, link string) (int64, error) {
	n, err := s.dest.CountDocuments(ctx, bson.M{"link": link})
	if err != nil {
		return 0, fmt.Errorf("count by link: %w", err)
	}
	return n, nil
}

func (s *Store) CountByTitle(ctx context.Context, title string) (int64, error) {
	n, err := s.dest.CountDocuments(ctx, bson.M{"title": title})
	if err != nil {
		return 0, fmt.Errorf("count by title: %w", err)
	}
	return n, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
