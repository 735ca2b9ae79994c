package contract

import (
	"context"

	"insighthub-be/internal/entity"

	"github.com/google/uuid"
)

type ScorecardRepository interface {
	Create(ctx context.Context, scorecard *entity.Scorecard) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Scorecard, error)
	FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Scorecard, error)
}

type ScorecardResultRepository interface {
	CreateBulk(ctx context.Context, results []*entity.ScorecardResult) error
	// FindByScorecard returns results ordered by brand.
	FindByScorecard(ctx context.Context, scorecardId uuid.UUID) ([]*entity.ScorecardResult, error)
	DeleteByScorecard(ctx context.Context, scorecardId uuid.UUID) error
}
