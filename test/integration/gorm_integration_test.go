package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"chat-memory-be/internal/constant"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/specification"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectOrSkip(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	return unitofwork.NewRepositoryFactory(gormDB)
}

func TestChatMessageRoundTrip(t *testing.T) {
	factory := connectOrSkip(t)
	ctx := context.Background()
	sessionId := fmt.Sprintf("it-%s", uuid.New())

	uow := factory.NewUnitOfWork(ctx)
	repo := uow.ChatMessageRepository()

	t.Cleanup(func() {
		_ = repo.DeleteBySessionId(ctx, sessionId)
	})

	turns := []struct {
		role    string
		content string
	}{
		{constant.ChatMessageRoleUser, "What is the capital of France?"},
		{constant.ChatMessageRoleAssistant, "Paris."},
		{constant.ChatMessageRoleUser, "And its population?"},
		{constant.ChatMessageRoleAssistant, "Roughly two million."},
	}
	for _, turn := range turns {
		msg := &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: sessionId,
			Role:      turn.role,
			Content:   turn.content,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Append(ctx, msg))
		assert.NotZero(t, msg.Seq, "store must assign the sequence")
	}

	t.Run("loads in insertion order", func(t *testing.T) {
		loaded, err := repo.FindAll(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.InInsertionOrder{},
		)
		require.NoError(t, err)
		require.Len(t, loaded, len(turns))
		for i, turn := range turns {
			assert.Equal(t, turn.role, loaded[i].Role)
			assert.Equal(t, turn.content, loaded[i].Content)
		}
		for i := 1; i < len(loaded); i++ {
			assert.Less(t, loaded[i-1].Seq, loaded[i].Seq)
		}
	})

	t.Run("clear removes the whole session", func(t *testing.T) {
		require.NoError(t, repo.DeleteBySessionId(ctx, sessionId))

		loaded, err := repo.FindAll(ctx, specification.BySessionID{SessionID: sessionId})
		require.NoError(t, err)
		assert.Empty(t, loaded)

		// Deleting an already empty session succeeds silently.
		assert.NoError(t, repo.DeleteBySessionId(ctx, sessionId))
	})
}

func TestTransactionalAppendPair(t *testing.T) {
	factory := connectOrSkip(t)
	ctx := context.Background()
	sessionId := fmt.Sprintf("it-tx-%s", uuid.New())

	uow := factory.NewUnitOfWork(ctx)

	t.Cleanup(func() {
		cleanup := factory.NewUnitOfWork(ctx)
		_ = cleanup.ChatMessageRepository().DeleteBySessionId(ctx, sessionId)
	})

	require.NoError(t, uow.Begin(ctx))
	repo := uow.ChatMessageRepository()

	require.NoError(t, repo.Append(ctx, &entity.ChatMessage{
		Id: uuid.New(), SessionId: sessionId,
		Role: constant.ChatMessageRoleUser, Content: "hello", CreatedAt: time.Now(),
	}))
	require.NoError(t, repo.Append(ctx, &entity.ChatMessage{
		Id: uuid.New(), SessionId: sessionId,
		Role: constant.ChatMessageRoleAssistant, Content: "hi there", CreatedAt: time.Now(),
	}))
	require.NoError(t, uow.Rollback())

	// A rolled back pair leaves no trace.
	fresh := factory.NewUnitOfWork(ctx)
	loaded, err := fresh.ChatMessageRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDocumentFullTextSearch(t *testing.T) {
	factory := connectOrSkip(t)
	ctx := context.Background()
	marker := uuid.New().String()

	uow := factory.NewUnitOfWork(ctx)
	repo := uow.DocumentRepository()

	docs := []string{
		"Paris is the capital of France and sits on the Seine. Marker " + marker,
		"Berlin is the capital of Germany. Marker " + marker,
		"The capital of France hosts the Louvre and the Eiffel Tower. Marker " + marker,
	}
	for _, content := range docs {
		require.NoError(t, repo.Create(ctx, &entity.Document{
			Id:        uuid.New(),
			Content:   content,
			Metadata:  map[string]interface{}{"source": "integration"},
			CreatedAt: time.Now(),
		}))
	}

	results, err := repo.FindAll(ctx,
		specification.MatchesQuery{Query: "capital of France " + marker},
		specification.RankByRelevance{Query: "capital of France " + marker},
		specification.Limit{N: 5},
	)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// Both passages mentioning France should outrank the Berlin one.
	assert.Contains(t, results[0].Content, "France")
	for _, doc := range results {
		assert.NotNil(t, doc.Metadata)
	}
}
