package contract

import (
	"context"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/specification"
)

// DocumentRepository is the durable retrieval corpus. Documents are
// immutable once ingested; there is no update or per-document delete.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error

	// FindAll returns documents matching the given specifications.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)

	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
