package implementation

import (
	"context"
	"errors"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/mapper"
	"insighthub-be/internal/model"
	"insighthub-be/internal/repository/contract"
	"insighthub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScorecardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScorecardMapper
}

func NewScorecardRepository(db *gorm.DB) contract.ScorecardRepository {
	return &ScorecardRepositoryImpl{
		db:     db,
		mapper: mapper.NewScorecardMapper(),
	}
}

func (r *ScorecardRepositoryImpl) Create(ctx context.Context, scorecard *entity.Scorecard) error {
	m, err := r.mapper.ToModel(scorecard)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("Results").Create(m).Error; err != nil {
		return err
	}
	saved, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*scorecard = *saved
	return nil
}

func (r *ScorecardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Scorecard, error) {
	var m model.Scorecard
	query := applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ScorecardRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Scorecard, error) {
	var models []*model.Scorecard
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByWorkspace{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

type ScorecardResultRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScorecardMapper
}

func NewScorecardResultRepository(db *gorm.DB) contract.ScorecardResultRepository {
	return &ScorecardResultRepositoryImpl{
		db:     db,
		mapper: mapper.NewScorecardMapper(),
	}
}

func (r *ScorecardResultRepositoryImpl) CreateBulk(ctx context.Context, results []*entity.ScorecardResult) error {
	if len(results) == 0 {
		return nil
	}
	models := make([]*model.ScorecardResult, len(results))
	for i, res := range results {
		m, err := r.mapper.ResultToModel(res)
		if err != nil {
			return err
		}
		models[i] = m
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		saved, err := r.mapper.ResultToEntity(m)
		if err != nil {
			return err
		}
		*results[i] = *saved
	}
	return nil
}

func (r *ScorecardResultRepositoryImpl) FindByScorecard(ctx context.Context, scorecardId uuid.UUID) ([]*entity.ScorecardResult, error) {
	var models []*model.ScorecardResult
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByScorecard{ScorecardID: scorecardId},
		specification.OrderBy{Field: "brand"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ResultsToEntities(models)
}

func (r *ScorecardResultRepositoryImpl) DeleteByScorecard(ctx context.Context, scorecardId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("scorecard_id = ?", scorecardId).Delete(&model.ScorecardResult{}).Error
}
