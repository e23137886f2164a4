package mapper

import (
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) DocumentToEntity(doc *model.Document) *entity.Document {
	if doc == nil {
		return nil
	}

	metadata := map[string]interface{}(doc.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &entity.Document{
		Id:        doc.Id,
		Content:   doc.Content,
		Metadata:  metadata,
		CreatedAt: doc.CreatedAt,
	}
}

func (m *DocumentMapper) DocumentToModel(doc *entity.Document) *model.Document {
	if doc == nil {
		return nil
	}

	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &model.Document{
		Id:        doc.Id,
		Content:   doc.Content,
		Metadata:  datatypes.JSONMap(metadata),
		CreatedAt: doc.CreatedAt,
	}
}

// DocumentToResult projects a Document into the transient search result shape.
func (m *DocumentMapper) DocumentToResult(doc *entity.Document) *entity.RetrievalResult {
	if doc == nil {
		return nil
	}
	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &entity.RetrievalResult{
		Content:  doc.Content,
		Metadata: metadata,
	}
}
