package contract

import (
	"context"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/specification"
)

// ChatMessageRepository is the durable, append-only history store. There
// is no update: messages are immutable once written, and the only delete
// is the whole-session clear.
type ChatMessageRepository interface {
	// Append adds one message to the end of the session's log. The
	// session row is implicit: the first append creates it.
	Append(ctx context.Context, message *entity.ChatMessage) error

	// FindAll returns messages matching the given specifications.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)

	// DeleteBySessionId removes every message of the session. Deleting
	// an unknown or empty session succeeds silently.
	DeleteBySessionId(ctx context.Context, sessionId string) error

	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
