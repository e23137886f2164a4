package unitofwork

import (
	"context"

	"chat-memory-be/internal/repository/contract"
)

// UnitOfWork scopes repository access and, when Begin is called, wraps it
// in one transaction. The chat pipeline uses this to persist the user
// message and the reply as a single atomic append pair.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatMessageRepository() contract.ChatMessageRepository
	DocumentRepository() contract.DocumentRepository
}
