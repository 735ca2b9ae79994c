package handler

import (
	"context"
	"errors"
	"testing"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/pkg/analytics"
	"insighthub-be/pkg/jobs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngestion struct {
	processed []uuid.UUID
	batches   []uuid.UUID
	err       error
}

func (f *fakeIngestion) ProcessSource(ctx context.Context, id uuid.UUID) (string, error) {
	f.processed = append(f.processed, id)
	return "completed", f.err
}

func (f *fakeIngestion) ProcessPendingSources(ctx context.Context, ws uuid.UUID) (*dto.IngestionSummary, error) {
	f.batches = append(f.batches, ws)
	return &dto.IngestionSummary{WorkspaceId: ws}, f.err
}

type fakeAnalytics struct {
	runs   []uuid.UUID
	themeK []int
}

func (f *fakeAnalytics) RunWorkspaceAnalytics(ctx context.Context, ws uuid.UUID) (*dto.AnalyticsRunResponse, error) {
	f.runs = append(f.runs, ws)
	return &dto.AnalyticsRunResponse{WorkspaceId: ws}, nil
}

func (f *fakeAnalytics) ExtractThemes(ctx context.Context, ws uuid.UUID, k int) (int, error) {
	f.themeK = append(f.themeK, k)
	return k, nil
}

func (f *fakeAnalytics) GetDashboard(ctx context.Context, ws uuid.UUID) (*dto.DashboardResponse, error) {
	return nil, nil
}

func (f *fakeAnalytics) GetThemes(ctx context.Context, ws uuid.UUID) ([]*dto.InsightResponse, error) {
	return nil, nil
}

type fakeScorecards struct {
	calculated []uuid.UUID
}

func (f *fakeScorecards) Create(ctx context.Context, ws uuid.UUID, req *dto.CreateScorecardRequest) (*dto.ScorecardResponse, error) {
	return nil, nil
}

func (f *fakeScorecards) GetAll(ctx context.Context, ws uuid.UUID) ([]*dto.ScorecardResponse, error) {
	return nil, nil
}

func (f *fakeScorecards) Show(ctx context.Context, id uuid.UUID) (*dto.ScorecardResponse, error) {
	return nil, nil
}

func (f *fakeScorecards) Calculate(ctx context.Context, id uuid.UUID) (int, error) {
	f.calculated = append(f.calculated, id)
	return 1, nil
}

func (f *fakeScorecards) GetResults(ctx context.Context, id uuid.UUID) ([]*dto.ScorecardResultResponse, error) {
	return nil, nil
}

func newRouter() (*jobs.Router, *fakeIngestion, *fakeAnalytics, *fakeScorecards) {
	ing, an, sc := &fakeIngestion{}, &fakeAnalytics{}, &fakeScorecards{}
	r := jobs.NewRouter(logger.NewNopLogger())
	NewTaskHandler(ing, an, sc).Register(r)
	return r, ing, an, sc
}

func TestTaskHandler_RegistersEveryTask(t *testing.T) {
	r, _, _, _ := newRouter()

	assert.ElementsMatch(t, []string{
		jobs.TaskProcessWorkspaceSources,
		jobs.TaskProcessSource,
		jobs.TaskRunAnalytics,
		jobs.TaskExtractThemes,
		jobs.TaskCalculateScorecard,
	}, r.Names())
}

func TestTaskHandler_Dispatch(t *testing.T) {
	r, ing, an, sc := newRouter()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, r.Run(ctx, jobs.Task{Name: jobs.TaskProcessWorkspaceSources, Args: []string{id.String()}}))
	require.NoError(t, r.Run(ctx, jobs.Task{Name: jobs.TaskProcessSource, Args: []string{id.String()}}))
	require.NoError(t, r.Run(ctx, jobs.Task{Name: jobs.TaskRunAnalytics, Args: []string{id.String()}}))
	require.NoError(t, r.Run(ctx, jobs.Task{Name: jobs.TaskExtractThemes, Args: []string{id.String()}}))
	require.NoError(t, r.Run(ctx, jobs.Task{Name: jobs.TaskExtractThemes, Args: []string{id.String(), "8"}}))
	require.NoError(t, r.Run(ctx, jobs.Task{Name: jobs.TaskCalculateScorecard, Args: []string{id.String()}}))

	assert.Equal(t, []uuid.UUID{id}, ing.batches)
	assert.Equal(t, []uuid.UUID{id}, ing.processed)
	assert.Equal(t, []uuid.UUID{id}, an.runs)
	assert.Equal(t, []int{analytics.DefaultThemeCount, 8}, an.themeK)
	assert.Equal(t, []uuid.UUID{id}, sc.calculated)
}

func TestTaskHandler_InvalidArgs(t *testing.T) {
	r, ing, an, _ := newRouter()
	ctx := context.Background()

	err := r.Run(ctx, jobs.Task{Name: jobs.TaskProcessSource})
	assert.ErrorIs(t, err, jobs.ErrInvalidArgs)

	err = r.Run(ctx, jobs.Task{Name: jobs.TaskProcessSource, Args: []string{"not-an-id"}})
	assert.ErrorIs(t, err, jobs.ErrInvalidArgs)

	err = r.Run(ctx, jobs.Task{Name: jobs.TaskExtractThemes, Args: []string{uuid.NewString(), "0"}})
	assert.ErrorIs(t, err, jobs.ErrInvalidArgs)

	assert.Empty(t, ing.processed)
	assert.Empty(t, an.themeK)
}

func TestTaskHandler_ServiceErrorPropagates(t *testing.T) {
	r, ing, _, _ := newRouter()
	ing.err = errors.New("store down")

	err := r.Run(context.Background(), jobs.Task{Name: jobs.TaskProcessSource, Args: []string{uuid.NewString()}})
	assert.EqualError(t, err, "store down")
}
