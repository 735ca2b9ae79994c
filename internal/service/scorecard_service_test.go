package service

import (
	"context"
	"testing"

	"insighthub-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorecard_CalculatePerBrand(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)
	env.csv(t, ws, reviewsCSV)
	env.ingestAll(t, ws)

	priceWeight := 2.0
	sc, err := env.scorecards.Create(ctx, ws, &dto.CreateScorecardRequest{
		Name: "Brand health",
		Factors: []dto.ScorecardFactorRequest{
			{Name: "Whitening", Keywords: []string{"Whitening"}},
			{Name: "Price", Keywords: []string{"price", "cost"}, Weight: &priceWeight},
		},
	})
	require.NoError(t, err)
	require.Len(t, sc.Factors, 2)
	assert.Equal(t, 1.0, sc.Factors[0].Weight)
	assert.Equal(t, 2.0, sc.Factors[1].Weight)

	n, err := env.scorecards.Calculate(ctx, sc.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	results, err := env.scorecards.GetResults(ctx, sc.Id)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byBrand := map[string]*dto.ScorecardResultResponse{}
	for _, r := range results {
		byBrand[r.Brand] = r
	}

	colgate := byBrand["Colgate"]
	require.NotNil(t, colgate)
	assert.Equal(t, 50.0, colgate.Factors["Whitening"])
	assert.Equal(t, 50.0, colgate.Factors["Price"])
	assert.Equal(t, 50.0, colgate.Overall)

	crest := byBrand["Crest"]
	require.NotNil(t, crest)
	assert.Greater(t, crest.Factors["Whitening"], 50.0)
	assert.Equal(t, 50.0, crest.Factors["Price"])
	assert.Greater(t, crest.Overall, 50.0)
	assert.Less(t, crest.Overall, crest.Factors["Whitening"])

	_, err = env.scorecards.Calculate(ctx, sc.Id)
	require.NoError(t, err)
	again, err := env.scorecards.GetResults(ctx, sc.Id)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestScorecard_UnknownIds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.scorecards.Create(ctx, uuid.New(), &dto.CreateScorecardRequest{
		Name:    "orphan",
		Factors: []dto.ScorecardFactorRequest{{Name: "x", Keywords: []string{"x"}}},
	})
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	n, err := env.scorecards.Calculate(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = env.scorecards.GetResults(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrScorecardNotFound)
}

func TestScorecard_NoDocumentsWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)

	sc, err := env.scorecards.Create(ctx, ws, &dto.CreateScorecardRequest{
		Name:    "Empty",
		Factors: []dto.ScorecardFactorRequest{{Name: "Taste", Keywords: []string{"mint"}}},
	})
	require.NoError(t, err)

	n, err := env.scorecards.Calculate(ctx, sc.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	results, err := env.scorecards.GetResults(ctx, sc.Id)
	require.NoError(t, err)
	assert.Empty(t, results)
}
