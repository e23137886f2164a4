// FILE: internal/service/fakes_test.go
package service

import (
	"context"
	"sync"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/specification"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/events"
	"chat-memory-be/pkg/llm"
)

// In-memory doubles for the storage and messaging seams. They ignore the
// gorm-backed specifications except where a test needs to observe them.

type fakeChatMessageRepository struct {
	mu       sync.Mutex
	messages []*entity.ChatMessage
	nextSeq  int64

	findErr   error
	appendErr error
	deleteErr error
}

func (r *fakeChatMessageRepository) Append(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.nextSeq++
	message.Seq = r.nextSeq
	clone := *message
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *fakeChatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	sessionID := ""
	for _, spec := range specs {
		if s, ok := spec.(specification.BySessionID); ok {
			sessionID = s.SessionID
		}
	}
	var out []*entity.ChatMessage
	for _, msg := range r.messages {
		if sessionID == "" || msg.SessionId == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeChatMessageRepository) DeleteBySessionId(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	var kept []*entity.ChatMessage
	for _, msg := range r.messages {
		if msg.SessionId != sessionId {
			kept = append(kept, msg)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeChatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.messages)), nil
}

func (r *fakeChatMessageRepository) stored() []*entity.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ChatMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

type fakeDocumentRepository struct {
	mu   sync.Mutex
	docs []*entity.Document

	findErr   error
	createErr error

	findCalls  int
	lastSpecs  []specification.Specification
}

func (r *fakeDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *document
	r.docs = append(r.docs, &clone)
	return nil
}

func (r *fakeDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	r.lastSpecs = specs
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*entity.Document, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *fakeDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func (r *fakeDocumentRepository) lastLimit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range r.lastSpecs {
		if s, ok := spec.(specification.Limit); ok {
			return s.N
		}
	}
	return 0
}

type fakeUnitOfWork struct {
	chatRepo *fakeChatMessageRepository
	docRepo  *fakeDocumentRepository

	beginErr  error
	commitErr error

	commits   int
	rollbacks int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return u.beginErr }

func (u *fakeUnitOfWork) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.commits++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return u.chatRepo }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository       { return u.docRepo }

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// stubProvider scripts both the sync and streaming generation paths.
type stubProvider struct {
	reply   string
	chatErr error

	chunks []llm.StreamChunk

	mu      sync.Mutex
	history []llm.Message
	calls   int
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	p.history = history
	p.calls++
	p.mu.Unlock()
	if p.chatErr != nil {
		return "", p.chatErr
	}
	return p.reply, nil
}

func (p *stubProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	p.mu.Lock()
	p.history = history
	p.calls++
	p.mu.Unlock()

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for _, chunk := range p.chunks {
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *stubProvider) gotHistory() []llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
