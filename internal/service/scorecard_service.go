package service

import (
	"context"
	"fmt"
	"time"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/scorecard"

	"github.com/google/uuid"
)

const defaultFactorWeight = 1.0

type IScorecardService interface {
	Create(ctx context.Context, workspaceId uuid.UUID, req *dto.CreateScorecardRequest) (*dto.ScorecardResponse, error)
	GetAll(ctx context.Context, workspaceId uuid.UUID) ([]*dto.ScorecardResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ScorecardResponse, error)
	// Calculate replaces the scorecard's per-brand results. A missing scorecard is a no-op.
	Calculate(ctx context.Context, id uuid.UUID) (int, error)
	GetResults(ctx context.Context, id uuid.UUID) ([]*dto.ScorecardResultResponse, error)
}

type scorecardService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *scorecard.Engine
	logger     logger.ILogger
}

func NewScorecardService(
	uowFactory unitofwork.RepositoryFactory,
	engine *scorecard.Engine,
	logger logger.ILogger,
) IScorecardService {
	return &scorecardService{
		uowFactory: uowFactory,
		engine:     engine,
		logger:     logger,
	}
}

func (s *scorecardService) Create(ctx context.Context, workspaceId uuid.UUID, req *dto.CreateScorecardRequest) (*dto.ScorecardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := uow.WorkspaceRepository().FindByID(ctx, workspaceId)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	factors := make([]entity.ScorecardFactor, 0, len(req.Factors))
	for _, f := range req.Factors {
		weight := defaultFactorWeight
		if f.Weight != nil {
			weight = *f.Weight
		}
		if weight < 0 {
			return nil, fmt.Errorf("factor %q: weight must not be negative", f.Name)
		}
		factors = append(factors, entity.ScorecardFactor{
			Name:     f.Name,
			Keywords: f.Keywords,
			Weight:   weight,
		})
	}

	sc := &entity.Scorecard{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		Name:        req.Name,
		Factors:     factors,
		CreatedAt:   time.Now(),
	}
	if err := uow.ScorecardRepository().Create(ctx, sc); err != nil {
		return nil, err
	}
	return toScorecardResponse(sc), nil
}

func (s *scorecardService) GetAll(ctx context.Context, workspaceId uuid.UUID) ([]*dto.ScorecardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scorecards, err := uow.ScorecardRepository().FindByWorkspace(ctx, workspaceId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ScorecardResponse, 0, len(scorecards))
	for _, sc := range scorecards {
		res = append(res, toScorecardResponse(sc))
	}
	return res, nil
}

func (s *scorecardService) Show(ctx context.Context, id uuid.UUID) (*dto.ScorecardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sc, err := uow.ScorecardRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrScorecardNotFound
	}
	return toScorecardResponse(sc), nil
}

func (s *scorecardService) Calculate(ctx context.Context, id uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	n, err := s.engine.Apply(ctx, uow, id)
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *scorecardService) GetResults(ctx context.Context, id uuid.UUID) ([]*dto.ScorecardResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sc, err := uow.ScorecardRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrScorecardNotFound
	}

	results, err := uow.ScorecardResultRepository().FindByScorecard(ctx, id)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ScorecardResultResponse, 0, len(results))
	for _, r := range results {
		res = append(res, &dto.ScorecardResultResponse{
			Brand:   r.Brand,
			Overall: r.Overall,
			Factors: r.Factors,
		})
	}
	return res, nil
}

func toScorecardResponse(sc *entity.Scorecard) *dto.ScorecardResponse {
	factors := make([]dto.ScorecardFactorResponse, 0, len(sc.Factors))
	for _, f := range sc.Factors {
		factors = append(factors, dto.ScorecardFactorResponse{
			Name:     f.Name,
			Keywords: f.Keywords,
			Weight:   f.Weight,
		})
	}
	return &dto.ScorecardResponse{
		Id:          sc.Id,
		WorkspaceId: sc.WorkspaceId,
		Name:        sc.Name,
		Factors:     factors,
		CreatedAt:   sc.CreatedAt,
	}
}
