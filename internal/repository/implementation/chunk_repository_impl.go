package implementation

import (
	"bytes"
	"context"
	"sort"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/mapper"
	"insighthub-be/internal/model"
	"insighthub-be/internal/repository/contract"
	"insighthub-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const (
	chunkInsertBatchSize = 200
	idBatchSize          = 1000
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, chunkInsertBatchSize).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

// FindByDocumentIDs queries in batches of idBatchSize to stay under the
// driver's bind parameter limit. Ids are sorted first so the batches
// concatenate in document_id order.
func (r *ChunkRepositoryImpl) FindByDocumentIDs(ctx context.Context, documentIds []uuid.UUID) ([]*entity.Chunk, error) {
	if len(documentIds) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(documentIds))
	copy(ids, documentIds)
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	var out []*entity.Chunk
	for start := 0; start < len(ids); start += idBatchSize {
		end := min(start+idBatchSize, len(ids))
		var models []*model.Chunk
		query := applySpecifications(r.db.WithContext(ctx),
			specification.ByDocumentIDs{DocumentIDs: ids[start:end]},
			specification.OrderBy{Field: "chunks.document_id"},
			specification.OrderBy{Field: "chunks.chunk_index"},
		)
		if err := query.Find(&models).Error; err != nil {
			return nil, err
		}
		out = append(out, r.mapper.ToEntities(models)...)
	}
	return out, nil
}

func (r *ChunkRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := applySpecifications(r.db.WithContext(ctx).Select("chunks.*"),
		specification.ChunksInWorkspace{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "chunks.document_id"},
		specification.OrderBy{Field: "chunks.chunk_index"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) FindEmbeddedByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := applySpecifications(r.db.WithContext(ctx).Select("chunks.*"),
		specification.ChunksInWorkspace{WorkspaceID: workspaceId},
		specification.HasEmbedding{},
		specification.OrderBy{Field: "chunks.created_at"},
		specification.OrderBy{Field: "chunks.document_id"},
		specification.OrderBy{Field: "chunks.chunk_index"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// SearchSimilar orders by pgvector's cosine distance operator so the ivfflat index can serve it.
func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, workspaceId uuid.UUID, vector []float32, limit int, filters map[string]string) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Chunk
		SourceTitle  string
		SourceUrl    *string
		DocumentType string
		Distance     float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	query := applySpecifications(
		r.db.WithContext(ctx).
			Table("chunks").
			Select(`chunks.*, sources.title AS source_title, sources.url AS source_url,
				documents.doc_type AS document_type, chunks.embedding <=> ? AS distance`, queryVector),
		specification.ChunksInWorkspace{WorkspaceID: workspaceId},
		specification.HasEmbedding{},
		specification.MetadataEquals{Filters: filters},
	)
	err := query.
		Order("distance ASC").
		Order("chunks.id ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:        r.mapper.ToEntity(&results[i].Chunk),
			SourceTitle:  results[i].SourceTitle,
			SourceUrl:    results[i].SourceUrl,
			DocumentType: results[i].DocumentType,
			Similarity:   1 - results[i].Distance,
		}
	}
	return scored, nil
}

func (r *ChunkRepositoryImpl) CountByWorkspace(ctx context.Context, workspaceId uuid.UUID) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Chunk{}),
		specification.ChunksInWorkspace{WorkspaceID: workspaceId},
	)
	err := query.Count(&count).Error
	return count, err
}
