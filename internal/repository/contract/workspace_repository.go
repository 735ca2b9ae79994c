package contract

import (
	"context"

	"insighthub-be/internal/entity"

	"github.com/google/uuid"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entity.Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Workspace, error)
	FindAll(ctx context.Context) ([]*entity.Workspace, error)
	// Delete removes the workspace and everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
