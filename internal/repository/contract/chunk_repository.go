package contract

import (
	"context"

	"insighthub-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChunk is a search hit together with the source and document it came from.
type ScoredChunk struct {
	Chunk        *entity.Chunk
	SourceTitle  string
	SourceUrl    *string
	DocumentType string
	Similarity   float64 // 1 - cosine distance
}

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	// FindByDocumentIDs returns chunks grouped by document in chunk_index order.
	FindByDocumentIDs(ctx context.Context, documentIds []uuid.UUID) ([]*entity.Chunk, error)
	// FindByWorkspace returns every chunk in the workspace, grouped by document in chunk_index order.
	FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Chunk, error)
	// FindEmbeddedByWorkspace returns every chunk with an embedding, in stable insertion order.
	FindEmbeddedByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Chunk, error)
	// SearchSimilar orders the workspace's embedded chunks by cosine distance to vector.
	// filters are equality matches against document metadata.
	SearchSimilar(ctx context.Context, workspaceId uuid.UUID, vector []float32, limit int, filters map[string]string) ([]*ScoredChunk, error)
	CountByWorkspace(ctx context.Context, workspaceId uuid.UUID) (int64, error)
}
