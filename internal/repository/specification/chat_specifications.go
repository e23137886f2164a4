package specification

import (
	"gorm.io/gorm"
)

// BySessionID filters messages belonging to one session.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// InInsertionOrder orders messages by their store-assigned sequence,
// oldest first. This is the canonical history ordering.
type InInsertionOrder struct{}

func (s InInsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}
