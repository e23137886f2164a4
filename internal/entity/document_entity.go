package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an immutable unit of ingested text. There is no update
// operation; re-ingesting the same content creates a new Document.
type Document struct {
	Id        uuid.UUID
	Content   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// RetrievalResult is a transient projection of a Document returned by a
// search query. It is never persisted and has no identity.
type RetrievalResult struct {
	Content  string
	Metadata map[string]interface{}
}
