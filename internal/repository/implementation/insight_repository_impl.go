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

type InsightRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InsightMapper
}

func NewInsightRepository(db *gorm.DB) contract.InsightRepository {
	return &InsightRepositoryImpl{
		db:     db,
		mapper: mapper.NewInsightMapper(),
	}
}

func (r *InsightRepositoryImpl) CreateBulk(ctx context.Context, insights []*entity.Insight) error {
	if len(insights) == 0 {
		return nil
	}
	models := make([]*model.Insight, len(insights))
	for i, ins := range insights {
		m, err := r.mapper.ToModel(ins)
		if err != nil {
			return err
		}
		models[i] = m
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		saved, err := r.mapper.ToEntity(m)
		if err != nil {
			return err
		}
		*insights[i] = *saved
	}
	return nil
}

func (r *InsightRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID, kinds ...string) ([]*entity.Insight, error) {
	var models []*model.Insight
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByWorkspace{WorkspaceID: workspaceId},
		specification.ByKinds{Kinds: kinds},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *InsightRepositoryImpl) DeleteByWorkspaceAndKinds(ctx context.Context, workspaceId uuid.UUID, kinds ...string) error {
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByWorkspace{WorkspaceID: workspaceId},
		specification.ByKinds{Kinds: kinds},
	)
	return query.Delete(&model.Insight{}).Error
}
