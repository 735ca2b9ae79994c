package handler

import (
	"context"
	"fmt"
	"strconv"

	"insighthub-be/internal/service"
	"insighthub-be/pkg/analytics"
	"insighthub-be/pkg/jobs"

	"github.com/google/uuid"
)

// TaskHandler binds the background task names to the services that run them.
type TaskHandler struct {
	ingestion  service.IIngestionService
	analytics  service.IAnalyticsService
	scorecards service.IScorecardService
}

func NewTaskHandler(
	ingestion service.IIngestionService,
	analytics service.IAnalyticsService,
	scorecards service.IScorecardService,
) *TaskHandler {
	return &TaskHandler{
		ingestion:  ingestion,
		analytics:  analytics,
		scorecards: scorecards,
	}
}

func (h *TaskHandler) Register(r *jobs.Router) {
	r.Handle(jobs.TaskProcessWorkspaceSources, h.ProcessWorkspaceSources)
	r.Handle(jobs.TaskProcessSource, h.ProcessSource)
	r.Handle(jobs.TaskRunAnalytics, h.RunAnalytics)
	r.Handle(jobs.TaskExtractThemes, h.ExtractThemes)
	r.Handle(jobs.TaskCalculateScorecard, h.CalculateScorecard)
}

func (h *TaskHandler) ProcessWorkspaceSources(ctx context.Context, args []string) error {
	id, err := uuidArg(args, 0)
	if err != nil {
		return err
	}
	_, err = h.ingestion.ProcessPendingSources(ctx, id)
	return err
}

func (h *TaskHandler) ProcessSource(ctx context.Context, args []string) error {
	id, err := uuidArg(args, 0)
	if err != nil {
		return err
	}
	_, err = h.ingestion.ProcessSource(ctx, id)
	return err
}

func (h *TaskHandler) RunAnalytics(ctx context.Context, args []string) error {
	id, err := uuidArg(args, 0)
	if err != nil {
		return err
	}
	_, err = h.analytics.RunWorkspaceAnalytics(ctx, id)
	return err
}

// ExtractThemes takes the workspace id and an optional cluster count.
func (h *TaskHandler) ExtractThemes(ctx context.Context, args []string) error {
	id, err := uuidArg(args, 0)
	if err != nil {
		return err
	}
	k := analytics.DefaultThemeCount
	if len(args) > 1 && args[1] != "" {
		k, err = strconv.Atoi(args[1])
		if err != nil || k <= 0 {
			return fmt.Errorf("%w: k must be a positive integer, got %q", jobs.ErrInvalidArgs, args[1])
		}
	}
	_, err = h.analytics.ExtractThemes(ctx, id, k)
	return err
}

func (h *TaskHandler) CalculateScorecard(ctx context.Context, args []string) error {
	id, err := uuidArg(args, 0)
	if err != nil {
		return err
	}
	_, err = h.scorecards.Calculate(ctx, id)
	return err
}

func uuidArg(args []string, i int) (uuid.UUID, error) {
	raw, err := jobs.Arg(args, i)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not an id", jobs.ErrInvalidArgs, raw)
	}
	return id, nil
}
