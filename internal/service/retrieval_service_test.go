// FILE: internal/service/retrieval_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"chat-memory-be/internal/constant"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/apperror"
	"chat-memory-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retrievalFixture struct {
	svc     IRetrievalService
	docRepo *fakeDocumentRepository
	pub     *fakePublisher
}

func newRetrievalFixture() *retrievalFixture {
	docRepo := &fakeDocumentRepository{}
	uow := &fakeUnitOfWork{chatRepo: &fakeChatMessageRepository{}, docRepo: docRepo}
	factory := &fakeRepositoryFactory{uow: uow}
	pub := &fakePublisher{}

	return &retrievalFixture{
		svc:     NewRetrievalService(factory, pub, noopLogger{}),
		docRepo: docRepo,
		pub:     pub,
	}
}

func TestIngestStoresDocument(t *testing.T) {
	f := newRetrievalFixture()

	res, err := f.svc.Ingest(context.Background(), &dto.IngestDocumentRequest{
		Content:  "The Rhine flows through six countries.",
		Metadata: map[string]interface{}{"topic": "geography"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Id)

	require.Len(t, f.docRepo.docs, 1)
	assert.Equal(t, "The Rhine flows through six countries.", f.docRepo.docs[0].Content)

	published := f.pub.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeDocumentIngested, published[0].EventType())
	assert.Equal(t, res.Id.String(), published[0].Payload()["document_id"])
}

func TestIngestRejectsBlankContent(t *testing.T) {
	f := newRetrievalFixture()

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := f.svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Content: content})
		assert.True(t, apperror.IsValidation(err))
	}
	assert.Empty(t, f.docRepo.docs)
	assert.Empty(t, f.pub.published())
}

func TestIngestStorageFailure(t *testing.T) {
	f := newRetrievalFixture()
	f.docRepo.createErr = errors.New("disk full")

	_, err := f.svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Content: "doc"})
	assert.True(t, apperror.IsStorage(err))
	assert.Empty(t, f.pub.published())
}

func TestSearchEmptyQueryYieldsNoResults(t *testing.T) {
	f := newRetrievalFixture()

	for _, query := range []string{"", "   ", `"'?`} {
		results, err := f.svc.Search(context.Background(), query, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	// Empty queries never touch the store.
	assert.Equal(t, 0, f.docRepo.findCalls)
}

func TestSearchAppliesKDefaultsAndCap(t *testing.T) {
	f := newRetrievalFixture()

	cases := []struct {
		name      string
		k         int
		wantLimit int
	}{
		{"zero falls back to default", 0, constant.DefaultRetrievalK},
		{"negative falls back to default", -3, constant.DefaultRetrievalK},
		{"explicit value kept", 7, 7},
		{"excessive value capped", 500, constant.MaxRetrievalK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Unique query per case so the cache never interferes.
			_, err := f.svc.Search(context.Background(), "query "+tc.name, tc.k)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, f.docRepo.lastLimit())
		})
	}
}

func TestSearchMapsResults(t *testing.T) {
	f := newRetrievalFixture()
	f.docRepo.docs = []*entity.Document{
		{Content: "Paris is the capital of France.", Metadata: map[string]interface{}{"topic": "geography"}},
		{Content: "Berlin is the capital of Germany.", Metadata: nil},
	}

	results, err := f.svc.Search(context.Background(), "capital", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Paris is the capital of France.", results[0].Content)
	assert.Equal(t, "geography", results[0].Metadata["topic"])
	assert.NotNil(t, results[1].Metadata)
}

func TestSearchCachesRepeatedQueries(t *testing.T) {
	f := newRetrievalFixture()

	_, err := f.svc.Search(context.Background(), "cached query", 5)
	require.NoError(t, err)
	_, err = f.svc.Search(context.Background(), "cached query", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, f.docRepo.findCalls)
}

func TestIngestInvalidatesSearchCache(t *testing.T) {
	f := newRetrievalFixture()

	_, err := f.svc.Search(context.Background(), "some query", 5)
	require.NoError(t, err)

	_, err = f.svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Content: "fresh doc"})
	require.NoError(t, err)

	_, err = f.svc.Search(context.Background(), "some query", 5)
	require.NoError(t, err)

	assert.Equal(t, 2, f.docRepo.findCalls)
}

func TestSearchStorageFailure(t *testing.T) {
	f := newRetrievalFixture()
	f.docRepo.findErr = errors.New("timeout")

	_, err := f.svc.Search(context.Background(), "anything", 5)
	assert.True(t, apperror.IsStorage(err))
}
