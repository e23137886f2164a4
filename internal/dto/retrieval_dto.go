package dto

import "github.com/google/uuid"

type IngestDocumentRequest struct {
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type IngestDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type SearchResult struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}
