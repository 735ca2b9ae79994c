package contract

import (
	"context"

	"insighthub-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	// Create inserts immediately so the document has its identity before chunks reference it.
	Create(ctx context.Context, document *entity.Document) error
	FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Document, error)
	FindBySource(ctx context.Context, sourceId uuid.UUID) ([]*entity.Document, error)
	// DeleteBySource removes the source's documents and their chunks.
	DeleteBySource(ctx context.Context, sourceId uuid.UUID) error
}
