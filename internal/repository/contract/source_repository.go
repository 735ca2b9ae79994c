package contract

import (
	"context"
	"time"

	"insighthub-be/internal/entity"

	"github.com/google/uuid"
)

type SourceRepository interface {
	Create(ctx context.Context, source *entity.Source) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Source, error)
	// FindByWorkspace lists a workspace's sources oldest first, optionally narrowed to statuses.
	FindByWorkspace(ctx context.Context, workspaceId uuid.UUID, statuses ...string) ([]*entity.Source, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMessage *string) error
	// ClaimForProcessing moves a pending or failed source (or one stuck in processing
	// since before staleBefore) to processing in a single conditional update.
	// It reports false when another caller already owns the source.
	ClaimForProcessing(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
