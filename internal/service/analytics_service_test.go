package service

import (
	"context"
	"testing"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"
	"insighthub-be/pkg/analytics"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_ComputesSummaries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)
	env.csv(t, ws, reviewsCSV)
	env.ingestAll(t, ws)

	res, err := env.analytics.RunWorkspaceAnalytics(ctx, ws)
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Greater(t, res.Themes, 0)
	assert.LessOrEqual(t, res.Themes, 3)

	dash, err := env.analytics.GetDashboard(ctx, ws)
	require.NoError(t, err)
	require.NotNil(t, dash.Stats)
	require.NotNil(t, dash.Claims)
	require.NotNil(t, dash.Trends)
	assert.Len(t, dash.Others, res.Themes)
	for _, other := range dash.Others {
		assert.Equal(t, entity.InsightKindTheme, other.Kind)
	}

	var stats analytics.StatsMetrics
	require.NoError(t, analytics.DecodeMetrics(dash.Stats.Metrics, &stats))
	assert.Equal(t, 3, stats.TotalDocuments)
	assert.Equal(t, analytics.SentimentDistribution{Positive: 2, Neutral: 0, Negative: 1}, stats.SentimentDistribution)
	assert.Contains(t, dash.Stats.Summary, "Sentiment mostly positive")
	assert.Equal(t, 2, stats.BrandsSummary["Colgate"].TotalDocs)
	assert.Equal(t, 3.0, stats.BrandsSummary["Colgate"].AvgRating)
	assert.Equal(t, "whitening", stats.BrandsSummary["Crest"].TopClaim)
	assert.Equal(t, "None", stats.BrandsSummary["Colgate"].TopClaim)

	dist, ok := dash.Stats.Metrics["sentiment_distribution"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, dist, 3)

	var claims analytics.ClaimsMetrics
	require.NoError(t, analytics.DecodeMetrics(dash.Claims.Metrics, &claims))
	assert.Equal(t, analytics.ClaimsMetrics{"whitening": 1}, claims)

	var trends analytics.TrendsMetrics
	require.NoError(t, analytics.DecodeMetrics(dash.Trends.Metrics, &trends))
	assert.Equal(t, 3.0, trends["Colgate"]["2024-01"])
	assert.Equal(t, 4.0, trends["Crest"]["2024-02"])
}

func TestAnalytics_RerunReplacesInsights(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)
	env.csv(t, ws, reviewsCSV)
	env.ingestAll(t, ws)

	_, err := env.analytics.RunWorkspaceAnalytics(ctx, ws)
	require.NoError(t, err)
	first, err := env.analytics.GetThemes(ctx, ws)
	require.NoError(t, err)

	_, err = env.analytics.RunWorkspaceAnalytics(ctx, ws)
	require.NoError(t, err)

	insights, err := env.store.NewUnitOfWork(ctx).InsightRepository().FindByWorkspace(ctx, ws, analytics.SummaryKinds...)
	require.NoError(t, err)
	assert.Len(t, insights, 3)

	second, err := env.analytics.GetThemes(ctx, ws)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.Equal(t, first[i].Metrics, second[i].Metrics)
		require.NotEmpty(t, first[i].Evidence)
		assert.Equal(t, evidenceChunkIds(first[i]), evidenceChunkIds(second[i]))
	}
}

func TestAnalytics_EmptyWorkspaceIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)

	res, err := env.analytics.RunWorkspaceAnalytics(ctx, ws)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, 0, res.Themes)

	dash, err := env.analytics.GetDashboard(ctx, ws)
	require.NoError(t, err)
	assert.Nil(t, dash.Stats)
	assert.Nil(t, dash.Claims)
	assert.Nil(t, dash.Trends)
}

func TestAnalytics_ThemesOrderedByCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)
	env.note(t, ws, "a", "enamel whitening enamel whitening")
	env.note(t, ws, "b", "enamel whitening strips for enamel")
	env.note(t, ws, "c", "enamel whitening gel and enamel care")
	env.note(t, ws, "d", "shipping box arrived crushed")
	env.ingestAll(t, ws)

	n, err := env.analytics.ExtractThemes(ctx, ws, 2)
	require.NoError(t, err)
	assert.Greater(t, n, 0)
	assert.LessOrEqual(t, n, 2)

	themes, err := env.analytics.GetThemes(ctx, ws)
	require.NoError(t, err)
	require.Len(t, themes, n)

	var prev *analytics.ThemeMetrics
	for _, th := range themes {
		assert.Equal(t, entity.InsightKindTheme, th.Kind)
		assert.NotEmpty(t, th.Evidence)
		var m analytics.ThemeMetrics
		require.NoError(t, analytics.DecodeMetrics(th.Metrics, &m))
		if prev != nil {
			assert.GreaterOrEqual(t, prev.Count, m.Count)
		}
		prev = &m
	}
}

func TestAnalytics_DashboardUnknownWorkspace(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.analytics.GetDashboard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func evidenceChunkIds(ins *dto.InsightResponse) []uuid.UUID {
	ids := make([]uuid.UUID, len(ins.Evidence))
	for i, e := range ins.Evidence {
		ids[i] = e.ChunkId
	}
	return ids
}
