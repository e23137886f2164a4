// FILE: internal/service/retrieval_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chat-memory-be/internal/constant"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/mapper"
	"chat-memory-be/internal/pkg/apperror"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/specification"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/events"
	pkgSearch "chat-memory-be/pkg/search"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IRetrievalService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	Search(ctx context.Context, query string, k int) ([]*dto.SearchResult, error)
}

type retrievalService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	queryCache       *gocache.Cache
	log              logger.ILogger
	docMapper        *mapper.DocumentMapper
}

func NewRetrievalService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		queryCache:       gocache.New(30*time.Second, time.Minute),
		log:              log,
		docMapper:        mapper.NewDocumentMapper(),
	}
}

func (s *retrievalService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("document content must not be blank")
	}

	doc := entity.Document{
		Id:        uuid.New(),
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, apperror.Storage("failed to store document", err)
	}

	// New content can change any previous ranking, so cached results
	// are stale from this point on.
	s.queryCache.Flush()

	if err := s.publisherService.Publish(ctx, events.NewDocumentIngested(doc.Id.String(), len(doc.Content))); err != nil {
		s.log.Warn("RetrievalService", "Failed to publish DOCUMENT_INGESTED", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
	}

	return &dto.IngestDocumentResponse{Id: doc.Id}, nil
}

func (s *retrievalService) Search(ctx context.Context, query string, k int) ([]*dto.SearchResult, error) {
	sanitized := pkgSearch.SanitizeQuery(query)
	if sanitized == "" {
		return []*dto.SearchResult{}, nil
	}

	if k <= 0 {
		k = constant.DefaultRetrievalK
	}
	if k > constant.MaxRetrievalK {
		k = constant.MaxRetrievalK
	}

	cacheKey := fmt.Sprintf("%d|%s", k, sanitized)
	if cached, found := s.queryCache.Get(cacheKey); found {
		return cached.([]*dto.SearchResult), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.MatchesQuery{Query: sanitized},
		specification.RankByRelevance{Query: sanitized},
		specification.Limit{N: k},
	)
	if err != nil {
		return nil, apperror.Storage("failed to search documents", err)
	}

	results := make([]*dto.SearchResult, 0, len(docs))
	for _, doc := range docs {
		projected := s.docMapper.DocumentToResult(doc)
		results = append(results, &dto.SearchResult{
			Content:  projected.Content,
			Metadata: projected.Metadata,
		})
	}

	s.queryCache.Set(cacheKey, results, gocache.DefaultExpiration)
	return results, nil
}
