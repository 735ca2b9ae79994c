package implementation

import (
	"context"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/mapper"
	"insighthub-be/internal/model"
	"insighthub-be/internal/repository/contract"
	"insighthub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Omit("Chunks").Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Document, error) {
	var models []*model.Document
	query := applySpecifications(r.db.WithContext(ctx).Select("documents.*"),
		specification.DocumentsInWorkspace{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "documents.created_at"},
		specification.OrderBy{Field: "documents.id"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) FindBySource(ctx context.Context, sourceId uuid.UUID) ([]*entity.Document, error) {
	var models []*model.Document
	query := applySpecifications(r.db.WithContext(ctx),
		specification.BySource{SourceID: sourceId},
		specification.OrderBy{Field: "created_at"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) DeleteBySource(ctx context.Context, sourceId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("source_id = ?", sourceId).Delete(&model.Document{}).Error
}
