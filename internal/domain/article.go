// Package domain defines the records flowing through the publication
// pipeline: raw source records, rewritten article payloads, and the run
// report produced by a batch.
package domain

import "time"

// SourceRecord is a scraped news item waiting to be rewritten.
type SourceRecord struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Link      string `json:"link" bson:"link"`
	Title     string `json:"title" bson:"title"`
	Body      string `json:"fullText" bson:"fullText"`
	ImageURL  string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Processed bool   `json:"processed" bson:"processed"`
}

// URLSet holds every public URL derived from an article slug.
type URLSet struct {
	Canonical  string `json:"canonical" bson:"canonical"`
	AMP        string `json:"amp" bson:"amp"`
	Forum      string `json:"forum" bson:"forum"`
	Discussion string `json:"discussion" bson:"discussion"`
	API        string `json:"api" bson:"api"`
}

// ShareLinks are prefilled share URLs for the canonical article page.
type ShareLinks struct {
	Email    string `json:"email" bson:"email"`
	Facebook string `json:"facebook" bson:"facebook"`
	Twitter  string `json:"twitter" bson:"twitter"`
	LinkedIn string `json:"linkedin" bson:"linkedin"`
	WhatsApp string `json:"whatsapp" bson:"whatsapp"`
}

// QA is a question and answer pair extracted for the forum FAQ section.
type QA struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// ArticlePayload is the fully rewritten, resolved article ready for
// rendering and persistence.
type ArticlePayload struct {
	Title         string     `json:"title" bson:"title"`
	OriginalTitle string     `json:"originalTitle" bson:"originalTitle"`
	Link          string     `json:"link" bson:"link"`
	Summary       string     `json:"summary" bson:"summary"`
	Description   string     `json:"description" bson:"description"`
	BodyHTML      string     `json:"fullText" bson:"fullText"`
	Timestamp     time.Time  `json:"timestamp" bson:"timestamp"`
	Slug          string     `json:"slug" bson:"slug"`
	Category      string     `json:"category" bson:"category"`
	Tags          []string   `json:"tags" bson:"tags"`
	Language      string     `json:"language" bson:"language"`
	Style         string     `json:"style" bson:"style"`
	Processed     bool       `json:"processed" bson:"processed"`
	ImageURL      string     `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Published     time.Time  `json:"published" bson:"published"`
	URLs          URLSet     `json:"urls" bson:"urls"`
	Share         ShareLinks `json:"share" bson:"share"`

	// Forum extras, rendered but not part of the persisted payload shape.
	Synopsis string `json:"-" bson:"-"`
	QAPairs  []QA   `json:"-" bson:"-"`
}

// RecordResult is the per-record outcome within a batch run.
type RecordResult struct {
	SourceID string
	Title    string
	Slug     string
	Err      error
	Skipped  bool
}

// BatchReport summarizes one orchestrator run.
type BatchReport struct {
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int
	Artifacts int
	Results   []RecordResult
}
