package service

import (
	"context"
	"strings"
	"testing"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/memory"
	"insighthub-be/pkg/analytics"
	"insighthub-be/pkg/cluster"
	"insighthub-be/pkg/embedding"
	"insighthub-be/pkg/extractor"
	"insighthub-be/pkg/ingestion"
	"insighthub-be/pkg/scorecard"
	"insighthub-be/pkg/sentiment"
	"insighthub-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store      *memory.Store
	uploadDir  string
	workspaces IWorkspaceService
	sources    ISourceService
	ingestion  IIngestionService
	analytics  IAnalyticsService
	scorecards IScorecardService
	search     ISearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithEmbedder(t, embedding.NewHashProvider())
}

func newTestEnvWithEmbedder(t *testing.T, embedder embedding.EmbeddingProvider) *testEnv {
	t.Helper()

	log := logger.NewNopLogger()
	store := memory.NewStore()
	uploadDir := t.TempDir()
	files := storage.NewLocalStore(uploadDir)

	registry := extractor.NewRegistry().
		Register(extractor.KindNote, extractor.NoteExtractor{}).
		Register(extractor.KindCSV, extractor.NewCSVExtractor(files))
	pipeline := ingestion.NewPipeline(registry, embedder, ingestion.DefaultConfig(), log)

	analyzer := sentiment.NewAnalyzer()
	return &testEnv{
		store:      store,
		uploadDir:  uploadDir,
		workspaces: NewWorkspaceService(store),
		sources:    NewSourceService(store, files),
		ingestion:  NewIngestionService(store, pipeline, DefaultStaleAfter, log),
		analytics: NewAnalyticsService(store,
			analytics.NewEngine(analyzer, analytics.DefaultClaims, log),
			analytics.NewThemeExtractor(cluster.DefaultSeed, log),
			log),
		scorecards: NewScorecardService(store, scorecard.NewEngine(analyzer, log), log),
		search:     NewSearchService(store, embedder, log),
	}
}

func (e *testEnv) workspace(t *testing.T) uuid.UUID {
	t.Helper()
	ws, err := e.workspaces.Create(context.Background(), &dto.CreateWorkspaceRequest{Name: "Oral care"})
	require.NoError(t, err)
	return ws.Id
}

func (e *testEnv) note(t *testing.T, workspaceId uuid.UUID, title, content string) uuid.UUID {
	t.Helper()
	src, err := e.sources.CreateNote(context.Background(), &dto.CreateNoteSourceRequest{
		WorkspaceId: workspaceId,
		Title:       title,
		Content:     content,
	})
	require.NoError(t, err)
	return src.Id
}

func (e *testEnv) csv(t *testing.T, workspaceId uuid.UUID, body string) uuid.UUID {
	t.Helper()
	src, err := e.sources.Upload(context.Background(), &dto.UploadSourceRequest{
		WorkspaceId: workspaceId,
		Filename:    "reviews.csv",
		File:        strings.NewReader(body),
	})
	require.NoError(t, err)
	return src.Id
}

func (e *testEnv) ingestAll(t *testing.T, workspaceId uuid.UUID) *dto.IngestionSummary {
	t.Helper()
	summary, err := e.ingestion.ProcessPendingSources(context.Background(), workspaceId)
	require.NoError(t, err)
	return summary
}
