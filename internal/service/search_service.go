package service

import (
	"context"
	"fmt"
	"strings"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 100
)

type ISearchService interface {
	// Search ranks the workspace's chunks by cosine similarity to the query.
	// A blank query or an empty workspace yields no results.
	Search(ctx context.Context, workspaceId uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchResult, error)
}

type searchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) ISearchService {
	return &searchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (s *searchService) Search(ctx context.Context, workspaceId uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchResult, error) {
	results := make([]*dto.SearchResult, 0)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return results, nil
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	res, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if err := embedding.CheckDimension(res.Embedding.Values); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hits, err := uow.ChunkRepository().SearchSimilar(ctx, workspaceId, res.Embedding.Values, limit, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	for _, h := range hits {
		results = append(results, &dto.SearchResult{
			ChunkId:      h.Chunk.Id,
			DocumentId:   h.Chunk.DocumentId,
			ChunkText:    h.Chunk.Text,
			SourceTitle:  h.SourceTitle,
			SourceUrl:    h.SourceUrl,
			DocumentType: h.DocumentType,
			Score:        h.Similarity,
		})
	}

	s.logger.Debug("SEARCH", "Search completed", map[string]interface{}{
		"workspace_id": workspaceId.String(),
		"limit":        limit,
		"hits":         len(results),
	})
	return results, nil
}
