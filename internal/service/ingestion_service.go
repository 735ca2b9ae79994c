package service

import (
	"context"
	"fmt"
	"time"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"
	"insighthub-be/internal/metrics"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/ingestion"

	"github.com/google/uuid"
)

// DefaultStaleAfter is how long a source may sit in processing before another
// worker is allowed to reclaim it.
const DefaultStaleAfter = 30 * time.Minute

type IIngestionService interface {
	// ProcessSource extracts, chunks and embeds one source and returns its final
	// status. A missing source, or one another worker owns, returns "" and no error.
	ProcessSource(ctx context.Context, sourceId uuid.UUID) (string, error)
	// ProcessPendingSources handles the workspace's pending sources one at a time.
	// Settled or in-flight sources are left alone.
	ProcessPendingSources(ctx context.Context, workspaceId uuid.UUID) (*dto.IngestionSummary, error)
}

type ingestionService struct {
	uowFactory unitofwork.RepositoryFactory
	pipeline   *ingestion.Pipeline
	staleAfter time.Duration
	logger     logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *ingestion.Pipeline,
	staleAfter time.Duration,
	logger logger.ILogger,
) IIngestionService {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &ingestionService{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

func (s *ingestionService) ProcessSource(ctx context.Context, sourceId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.SourceRepository().FindByID(ctx, sourceId)
	if err != nil {
		return "", fmt.Errorf("load source: %w", err)
	}
	if source == nil {
		s.logger.Warn("INGESTION", "Source not found", map[string]interface{}{"source_id": sourceId.String()})
		return "", nil
	}

	claimed, err := uow.SourceRepository().ClaimForProcessing(ctx, sourceId, time.Now().Add(-s.staleAfter))
	if err != nil {
		return "", fmt.Errorf("claim source: %w", err)
	}
	if !claimed {
		s.logger.Info("INGESTION", "Source already claimed or settled, skipping", map[string]interface{}{
			"source_id": sourceId.String(),
			"status":    source.Status,
		})
		return "", nil
	}

	s.logger.Info("INGESTION", "Processing source", map[string]interface{}{
		"source_id": sourceId.String(),
		"type":      source.Kind,
	})

	start := time.Now()
	stats, runErr := s.run(ctx, source)
	metrics.CaptureIngestionMetrics(source.Kind, time.Since(start))

	if runErr != nil {
		msg := runErr.Error()
		if err := s.uowFactory.NewUnitOfWork(ctx).SourceRepository().UpdateStatus(ctx, sourceId, entity.SourceStatusFailed, &msg); err != nil {
			return "", fmt.Errorf("mark source failed: %w", err)
		}
		metrics.RecordSourceProcessed(entity.SourceStatusFailed)
		s.logger.Error("INGESTION", "Source processing failed", map[string]interface{}{
			"source_id": sourceId.String(),
			"error":     msg,
		})
		return entity.SourceStatusFailed, nil
	}

	metrics.RecordSourceProcessed(entity.SourceStatusCompleted)
	s.logger.Info("INGESTION", "Source processed", map[string]interface{}{
		"source_id": sourceId.String(),
		"documents": stats.Documents,
		"chunks":    stats.Chunks,
		"duration":  time.Since(start).String(),
	})
	return entity.SourceStatusCompleted, nil
}

// run writes every document and chunk of the source plus its completed status in
// one transaction, so a failure leaves nothing behind.
func (s *ingestionService) run(ctx context.Context, source *entity.Source) (*ingestion.Stats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	stats, err := s.pipeline.Run(ctx, uow, source)
	if err != nil {
		return nil, err
	}
	if err := uow.SourceRepository().UpdateStatus(ctx, source.Id, entity.SourceStatusCompleted, nil); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *ingestionService) ProcessPendingSources(ctx context.Context, workspaceId uuid.UUID) (*dto.IngestionSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sources, err := uow.SourceRepository().FindByWorkspace(ctx, workspaceId, entity.SourceStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	summary := &dto.IngestionSummary{WorkspaceId: workspaceId, Total: len(sources)}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		status, err := s.ProcessSource(ctx, src.Id)
		if err != nil {
			return summary, err
		}
		switch status {
		case entity.SourceStatusCompleted:
			summary.Completed++
		case entity.SourceStatusFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
	}

	s.logger.Info("INGESTION", "Workspace sources processed", map[string]interface{}{
		"workspace_id": workspaceId.String(),
		"total":        summary.Total,
		"completed":    summary.Completed,
		"failed":       summary.Failed,
		"skipped":      summary.Skipped,
	})
	return summary, nil
}
