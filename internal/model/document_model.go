package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Document rows are immutable once written. The search_vector tsvector
// column and its GIN index are created by cmd/migrate since GORM does not
// model generated columns.
type Document struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string            `gorm:"type:text;not null"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
