package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one immutable entry in a session's append-only log. Seq
// is assigned by the store on insert and is the sole ordering key.
type ChatMessage struct {
	Id        uuid.UUID
	SessionId string
	Role      string
	Content   string
	Seq       int64
	CreatedAt time.Time
}
