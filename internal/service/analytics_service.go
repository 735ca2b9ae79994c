package service

import (
	"context"
	"fmt"
	"sort"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/analytics"

	"github.com/google/uuid"
)

type IAnalyticsService interface {
	// RunWorkspaceAnalytics recomputes the summary insights and the themes of a
	// workspace and commits both together.
	RunWorkspaceAnalytics(ctx context.Context, workspaceId uuid.UUID) (*dto.AnalyticsRunResponse, error)
	ExtractThemes(ctx context.Context, workspaceId uuid.UUID, k int) (int, error)
	GetDashboard(ctx context.Context, workspaceId uuid.UUID) (*dto.DashboardResponse, error)
	// GetThemes returns theme insights, largest cluster first.
	GetThemes(ctx context.Context, workspaceId uuid.UUID) ([]*dto.InsightResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *analytics.Engine
	themes     *analytics.ThemeExtractor
	logger     logger.ILogger
}

func NewAnalyticsService(
	uowFactory unitofwork.RepositoryFactory,
	engine *analytics.Engine,
	themes *analytics.ThemeExtractor,
	logger logger.ILogger,
) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
		engine:     engine,
		themes:     themes,
		logger:     logger,
	}
}

func (s *analyticsService) RunWorkspaceAnalytics(ctx context.Context, workspaceId uuid.UUID) (*dto.AnalyticsRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	updated, err := s.engine.Apply(ctx, uow, workspaceId)
	if err != nil {
		return nil, fmt.Errorf("compute analytics: %w", err)
	}
	themes, err := s.themes.Apply(ctx, uow, workspaceId, analytics.DefaultThemeCount)
	if err != nil {
		return nil, fmt.Errorf("extract themes: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ANALYTICS", "Workspace analytics completed", map[string]interface{}{
		"workspace_id": workspaceId.String(),
		"updated":      updated,
		"themes":       themes,
	})
	return &dto.AnalyticsRunResponse{WorkspaceId: workspaceId, Updated: updated, Themes: themes}, nil
}

func (s *analyticsService) ExtractThemes(ctx context.Context, workspaceId uuid.UUID, k int) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	n, err := s.themes.Apply(ctx, uow, workspaceId, k)
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *analyticsService) GetDashboard(ctx context.Context, workspaceId uuid.UUID) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := uow.WorkspaceRepository().FindByID(ctx, workspaceId)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	insights, err := uow.InsightRepository().FindByWorkspace(ctx, workspaceId)
	if err != nil {
		return nil, err
	}

	res := &dto.DashboardResponse{
		WorkspaceId: workspaceId,
		Others:      make([]*dto.InsightResponse, 0),
	}
	// Newest first, so the first of each summary kind is the latest.
	for _, ins := range insights {
		switch ins.Kind {
		case entity.InsightKindStats:
			if res.Stats == nil {
				res.Stats = toInsightResponse(ins)
			}
		case entity.InsightKindClaims:
			if res.Claims == nil {
				res.Claims = toInsightResponse(ins)
			}
		case entity.InsightKindTrends:
			if res.Trends == nil {
				res.Trends = toInsightResponse(ins)
			}
		default:
			res.Others = append(res.Others, toInsightResponse(ins))
		}
	}
	return res, nil
}

func (s *analyticsService) GetThemes(ctx context.Context, workspaceId uuid.UUID) ([]*dto.InsightResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	insights, err := uow.InsightRepository().FindByWorkspace(ctx, workspaceId, entity.InsightKindTheme)
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(insights))
	for _, ins := range insights {
		var m analytics.ThemeMetrics
		if err := analytics.DecodeMetrics(ins.Metrics, &m); err != nil {
			s.logger.Warn("THEMES", "Unreadable theme metrics", map[string]interface{}{
				"insight_id": ins.Id.String(),
				"error":      err.Error(),
			})
		}
		counts[ins.Id] = m.Count
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return counts[insights[i].Id] > counts[insights[j].Id]
	})

	res := make([]*dto.InsightResponse, 0, len(insights))
	for _, ins := range insights {
		res = append(res, toInsightResponse(ins))
	}
	return res, nil
}

func toInsightResponse(ins *entity.Insight) *dto.InsightResponse {
	evidence := make([]dto.EvidenceResponse, 0, len(ins.Evidence))
	for _, e := range ins.Evidence {
		evidence = append(evidence, dto.EvidenceResponse{Text: e.Text, ChunkId: e.ChunkId})
	}
	return &dto.InsightResponse{
		Id:        ins.Id,
		Kind:      ins.Kind,
		Title:     ins.Title,
		Summary:   ins.Summary,
		Evidence:  evidence,
		Metrics:   ins.Metrics,
		CreatedAt: ins.CreatedAt,
	}
}
