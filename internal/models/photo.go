package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Photo represents the metadata of an uploaded photo stored in the database.
// Rows are insert-only; nothing in the system updates or deletes them.
type Photo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	StorageKey string    `gorm:"uniqueIndex" json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// EnrichedPhoto is a Photo with its storage key resolved to a public URL.
type EnrichedPhoto struct {
	Photo
	ImageURL string `json:"image_url"`
}

// PhotoSubmission is the request-scoped shape of one ingestion attempt.
// Latitude and Longitude are kept as raw strings until validation parses them.
type PhotoSubmission struct {
	Filename    string
	ContentType string
	Size        int64
	Payload     io.Reader
	Latitude    string
	Longitude   string
}
