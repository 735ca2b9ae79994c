package contract

import (
	"context"

	"insighthub-be/internal/entity"

	"github.com/google/uuid"
)

type InsightRepository interface {
	CreateBulk(ctx context.Context, insights []*entity.Insight) error
	// FindByWorkspace returns the workspace's insights, newest first. No kinds means all kinds.
	FindByWorkspace(ctx context.Context, workspaceId uuid.UUID, kinds ...string) ([]*entity.Insight, error)
	DeleteByWorkspaceAndKinds(ctx context.Context, workspaceId uuid.UUID, kinds ...string) error
}
