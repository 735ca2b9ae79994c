package implementation

import (
	"context"
	"errors"
	"time"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/mapper"
	"insighthub-be/internal/model"
	"insighthub-be/internal/repository/contract"
	"insighthub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SourceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SourceMapper
}

func NewSourceRepository(db *gorm.DB) contract.SourceRepository {
	return &SourceRepositoryImpl{
		db:     db,
		mapper: mapper.NewSourceMapper(),
	}
}

func (r *SourceRepositoryImpl) Create(ctx context.Context, source *entity.Source) error {
	m := r.mapper.ToModel(source)
	if err := r.db.WithContext(ctx).Omit("Documents").Create(m).Error; err != nil {
		return err
	}
	*source = *r.mapper.ToEntity(m)
	return nil
}

func (r *SourceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Source, error) {
	var m model.Source
	query := applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SourceRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID, statuses ...string) ([]*entity.Source, error) {
	var models []*model.Source
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByWorkspace{WorkspaceID: workspaceId},
		specification.ByStatuses{Statuses: statuses},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SourceRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMessage *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Source{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"error_message": errorMessage,
			"updated_at":    time.Now(),
		}).Error
}

func (r *SourceRepositoryImpl) ClaimForProcessing(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Source{}).
		Where("id = ?", id).
		Where("(status IN ? OR (status = ? AND updated_at < ?))",
			[]string{entity.SourceStatusPending, entity.SourceStatusFailed},
			entity.SourceStatusProcessing, staleBefore).
		Updates(map[string]interface{}{
			"status":        entity.SourceStatusProcessing,
			"error_message": nil,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SourceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Source{}, id).Error
}
