package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)
	env.csv(t, ws, reviewsCSV)
	env.ingestAll(t, ws)
	_, err := env.analytics.RunWorkspaceAnalytics(ctx, ws)
	require.NoError(t, err)

	require.NoError(t, env.workspaces.Delete(ctx, ws))

	_, err = env.workspaces.Show(ctx, ws)
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	uow := env.store.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindByWorkspace(ctx, ws)
	require.NoError(t, err)
	assert.Empty(t, docs)
	insights, err := uow.InsightRepository().FindByWorkspace(ctx, ws)
	require.NoError(t, err)
	assert.Empty(t, insights)

	assert.ErrorIs(t, env.workspaces.Delete(ctx, ws), ErrWorkspaceNotFound)
}

func TestSource_CreateRequiresWorkspace(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sources.CreateNote(context.Background(), &dto.CreateNoteSourceRequest{
		WorkspaceId: uuid.New(),
		Title:       "t",
		Content:     "c",
	})
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestSource_UploadKindAndListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ws := env.workspace(t)

	pdf, err := env.sources.Upload(ctx, &dto.UploadSourceRequest{
		WorkspaceId: ws,
		Filename:    "../../Report.PDF",
		File:        strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceKindPDF, pdf.Type)
	assert.Equal(t, "Report.PDF", pdf.Title)
	assert.Equal(t, entity.SourceStatusPending, pdf.Status)

	saved, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, pdf.Id.String()+"_Report.PDF", saved[0].Name())

	url, err := env.sources.CreateURL(ctx, &dto.CreateUrlSourceRequest{WorkspaceId: ws, Url: "https://example.com/review"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/review", url.Title)

	all, err := env.sources.GetAll(ctx, ws)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, env.sources.Delete(ctx, url.Id))
	_, err = env.sources.Show(ctx, url.Id)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestSource_UploadToUnknownWorkspaceSavesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sources.Upload(context.Background(), &dto.UploadSourceRequest{
		WorkspaceId: uuid.New(),
		Filename:    "reviews.csv",
		File:        strings.NewReader(reviewsCSV),
	})
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	saved, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestKindFromFilename(t *testing.T) {
	assert.Equal(t, entity.SourceKindCSV, KindFromFilename("reviews.CSV"))
	assert.Equal(t, entity.SourceKindPDF, KindFromFilename("a.pdf"))
	assert.Equal(t, entity.SourceKindFile, KindFromFilename("notes.txt"))
	assert.Equal(t, entity.SourceKindFile, KindFromFilename("noext"))
}
