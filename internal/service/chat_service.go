// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"strings"
	"time"

	"chat-memory-be/internal/constant"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/apperror"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/specification"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/events"
	"chat-memory-be/pkg/llm"
	"chat-memory-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)

	// SendChatStream runs the same pipeline as SendChat but returns the
	// reply incrementally. The exchange is persisted only when the
	// stream completes naturally; an abandoned or failed stream writes
	// nothing.
	SendChatStream(ctx context.Context, req *dto.SendChatRequest) (<-chan llm.StreamChunk, error)

	GetHistory(ctx context.Context, sessionId string) ([]*dto.ChatHistoryItem, error)
	ClearHistory(ctx context.Context, sessionId string) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	retrievalService IRetrievalService
	provider         llm.LLMProvider
	publisherService IPublisherService
	log              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	retrievalService IRetrievalService,
	provider llm.LLMProvider,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		retrievalService: retrievalService,
		provider:         provider,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if err := validateChatRequest(req); err != nil {
		return nil, err
	}

	conversation, err := s.assembleConversation(ctx, req.SessionId, req.Message)
	if err != nil {
		return nil, err
	}

	reply, err := s.provider.Chat(ctx, conversation)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperror.Cancelled("chat request cancelled")
		}
		return nil, err
	}

	if err := s.persistExchange(ctx, req.SessionId, req.Message, reply); err != nil {
		return nil, err
	}

	s.publishReplyCreated(ctx, req.SessionId, "sync")

	return &dto.SendChatResponse{
		SessionId: req.SessionId,
		Reply:     reply,
	}, nil
}

func (s *chatService) SendChatStream(ctx context.Context, req *dto.SendChatRequest) (<-chan llm.StreamChunk, error) {
	if err := validateChatRequest(req); err != nil {
		return nil, err
	}

	conversation, err := s.assembleConversation(ctx, req.SessionId, req.Message)
	if err != nil {
		return nil, err
	}

	chunks, err := s.provider.ChatStream(ctx, conversation)
	if err != nil {
		return nil, err
	}

	out := make(chan llm.StreamChunk)
	go s.relayStream(ctx, req.SessionId, req.Message, chunks, out)
	return out, nil
}

// relayStream forwards fragments to the consumer while accumulating the
// full reply. Only a natural Done marker persists the exchange; a
// consumer walking away or a terminal error discards the partial output.
func (s *chatService) relayStream(ctx context.Context, sessionId, userMessage string, chunks <-chan llm.StreamChunk, out chan<- llm.StreamChunk) {
	defer close(out)

	var reply strings.Builder
	for chunk := range chunks {
		if chunk.Err != nil {
			s.forward(ctx, out, chunk)
			return
		}

		if chunk.Done {
			if err := s.persistExchange(ctx, sessionId, userMessage, reply.String()); err != nil {
				s.forward(ctx, out, llm.StreamChunk{Err: err})
				return
			}
			s.publishReplyCreated(ctx, sessionId, "stream")
			s.forward(ctx, out, chunk)
			return
		}

		reply.WriteString(chunk.Content)
		if !s.forward(ctx, out, chunk) {
			return
		}
	}

	// Producer closed without a terminal marker.
	s.forward(ctx, out, llm.StreamChunk{Err: apperror.Generation("stream ended unexpectedly", nil)})
}

func (s *chatService) forward(ctx context.Context, out chan<- llm.StreamChunk, chunk llm.StreamChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *chatService) GetHistory(ctx context.Context, sessionId string) ([]*dto.ChatHistoryItem, error) {
	if strings.TrimSpace(sessionId) == "" {
		return nil, apperror.Validation("session_id must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.InInsertionOrder{},
	)
	if err != nil {
		return nil, apperror.Storage("failed to load session history", err)
	}

	items := make([]*dto.ChatHistoryItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, &dto.ChatHistoryItem{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return items, nil
}

func (s *chatService) ClearHistory(ctx context.Context, sessionId string) error {
	if strings.TrimSpace(sessionId) == "" {
		return apperror.Validation("session_id must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return apperror.Storage("failed to clear session history", err)
	}

	if err := s.publisherService.Publish(ctx, events.NewHistoryCleared(sessionId)); err != nil {
		s.log.Warn("ChatService", "Failed to publish HISTORY_CLEARED", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
	return nil
}

// assembleConversation loads the session history, retrieves supporting
// passages and builds the full model input. A history load failure aborts
// the request; a retrieval failure degrades to an empty context slot.
func (s *chatService) assembleConversation(ctx context.Context, sessionId, userMessage string) ([]llm.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.InInsertionOrder{},
	)
	if err != nil {
		return nil, apperror.Storage("failed to load session history", err)
	}

	history := make([]llm.Message, 0, len(stored))
	for _, msg := range stored {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	var contexts []string
	results, err := s.retrievalService.Search(ctx, userMessage, constant.DefaultRetrievalK)
	if err != nil {
		s.log.Warn("ChatService", "Retrieval failed, continuing with empty context", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	} else {
		for _, result := range results {
			contexts = append(contexts, result.Content)
		}
	}

	return prompt.NewContextualBuilder(history, contexts, userMessage).Build(), nil
}

// persistExchange appends the user message and the reply as one atomic
// pair. Either both land in the log or neither does.
func (s *chatService) persistExchange(ctx context.Context, sessionId, userMessage, reply string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Storage("failed to begin transaction", err)
	}
	defer uow.Rollback()

	now := time.Now()
	userEntry := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      constant.ChatMessageRoleUser,
		Content:   userMessage,
		CreatedAt: now,
	}
	if err := uow.ChatMessageRepository().Append(ctx, &userEntry); err != nil {
		return apperror.Storage("failed to append user message", err)
	}

	replyEntry := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      constant.ChatMessageRoleAssistant,
		Content:   reply,
		CreatedAt: now,
	}
	if err := uow.ChatMessageRepository().Append(ctx, &replyEntry); err != nil {
		return apperror.Storage("failed to append assistant message", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.Storage("failed to commit message pair", err)
	}
	return nil
}

func (s *chatService) publishReplyCreated(ctx context.Context, sessionId, mode string) {
	if err := s.publisherService.Publish(ctx, events.NewChatReplyCreated(sessionId, mode)); err != nil {
		s.log.Warn("ChatService", "Failed to publish CHAT_REPLY_CREATED", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func validateChatRequest(req *dto.SendChatRequest) error {
	if strings.TrimSpace(req.SessionId) == "" {
		return apperror.Validation("session_id must not be blank")
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperror.Validation("message must not be blank")
	}
	return nil
}
