package ingestion

import (
	"context"
	"fmt"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/embedding"
	"insighthub-be/pkg/extractor"
	"insighthub-be/pkg/utils"

	"github.com/google/uuid"
)

type SourceExtractor interface {
	Extract(ctx context.Context, src extractor.Source) ([]extractor.Document, error)
}

type Config struct {
	ChunkSize    int
	ChunkOverlap int
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:    utils.DefaultChunkSize,
		ChunkOverlap: utils.DefaultChunkOverlap,
	}
}

// Pipeline turns one source into documents and embedded chunks inside the caller's transaction.
type Pipeline struct {
	extractor         SourceExtractor
	embeddingProvider embedding.EmbeddingProvider
	config            Config
	logger            logger.ILogger
}

func NewPipeline(ex SourceExtractor, embeddingProvider embedding.EmbeddingProvider, config Config, log logger.ILogger) *Pipeline {
	return &Pipeline{
		extractor:         ex,
		embeddingProvider: embeddingProvider,
		config:            config,
		logger:            log,
	}
}

// Stats counts what one run wrote.
type Stats struct {
	Documents int
	Chunks    int
}

// Run replaces the source's documents with a fresh extraction. Earlier documents
// of the same source are deleted first, so a retried run never duplicates them.
func (p *Pipeline) Run(ctx context.Context, uow unitofwork.UnitOfWork, source *entity.Source) (*Stats, error) {
	if err := uow.DocumentRepository().DeleteBySource(ctx, source.Id); err != nil {
		return nil, fmt.Errorf("clear previous documents: %w", err)
	}

	docs, err := p.extractor.Extract(ctx, toExtractorSource(source))
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, d := range docs {
		doc := &entity.Document{
			Id:       uuid.New(),
			SourceId: source.Id,
			DocType:  d.DocType,
			Metadata: d.Metadata,
		}
		if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
			return nil, fmt.Errorf("save document: %w", err)
		}

		chunks, err := p.buildChunks(ctx, doc.Id, d.Text)
		if err != nil {
			return nil, err
		}
		if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
			return nil, fmt.Errorf("save chunks: %w", err)
		}

		stats.Documents++
		stats.Chunks += len(chunks)
	}

	p.logger.Debug("INGESTION", "Source extracted", map[string]interface{}{
		"source_id": source.Id.String(),
		"documents": stats.Documents,
		"chunks":    stats.Chunks,
	})
	return stats, nil
}

func (p *Pipeline) buildChunks(ctx context.Context, documentId uuid.UUID, raw string) ([]*entity.Chunk, error) {
	parts, err := utils.SplitText(utils.Clean(raw), p.config.ChunkSize, p.config.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.Chunk, 0, len(parts))
	for i, part := range parts {
		res, err := p.embeddingProvider.Generate(ctx, part, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		if err := embedding.CheckDimension(res.Embedding.Values); err != nil {
			return nil, err
		}

		chunks = append(chunks, &entity.Chunk{
			Id:         uuid.New(),
			DocumentId: documentId,
			ChunkIndex: i,
			Text:       part,
			Embedding:  res.Embedding.Values,
		})
	}
	return chunks, nil
}

func toExtractorSource(s *entity.Source) extractor.Source {
	src := extractor.Source{Kind: s.Kind, Title: s.Title}
	if s.Url != nil {
		src.URL = *s.Url
	}
	if s.Filename != nil {
		src.Filename = *s.Filename
	}
	if s.RawText != nil {
		src.Payload = *s.RawText
	}
	return src
}
