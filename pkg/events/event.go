package events

import "time"

// Event type codes published by the pipeline.
const (
	TypeChatReplyCreated = "CHAT_REPLY_CREATED"
	TypeDocumentIngested = "DOCUMENT_INGESTED"
	TypeHistoryCleared   = "HISTORY_CLEARED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_REPLY_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by all pipeline events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewChatReplyCreated signals that a synchronous or streaming reply was
// generated and persisted for a session.
func NewChatReplyCreated(sessionID, mode string) Event {
	return BaseEvent{
		Type: TypeChatReplyCreated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"mode":       mode,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngested signals that a document entered the retrieval corpus.
func NewDocumentIngested(documentID string, contentLength int) Event {
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"document_id":    documentID,
			"content_length": contentLength,
		},
		OccurredAt: time.Now(),
	}
}

// NewHistoryCleared signals that a session's message log was deleted.
func NewHistoryCleared(sessionID string) Event {
	return BaseEvent{
		Type: TypeHistoryCleared,
		Data: map[string]interface{}{
			"session_id": sessionID,
		},
		OccurredAt: time.Now(),
	}
}
