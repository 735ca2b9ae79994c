package implementation_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/model"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/database"
	"insighthub-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepositories(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB, model.All()...))

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(gormDB)
	uow := factory.NewUnitOfWork(ctx)

	ws := &entity.Workspace{Id: uuid.New(), Name: "integration-" + uuid.NewString()}
	require.NoError(t, uow.WorkspaceRepository().Create(ctx, ws))
	t.Cleanup(func() {
		_ = factory.NewUnitOfWork(ctx).WorkspaceRepository().Delete(ctx, ws.Id)
	})

	body := "fluoride free toothpaste with charcoal"
	src := &entity.Source{
		Id:          uuid.New(),
		WorkspaceId: ws.Id,
		Kind:        entity.SourceKindNote,
		Title:       "Integration note",
		RawText:     &body,
		Status:      entity.SourceStatusPending,
	}
	require.NoError(t, uow.SourceRepository().Create(ctx, src))

	t.Run("claim is exclusive", func(t *testing.T) {
		staleBefore := time.Now().Add(-time.Hour)
		claimed, err := uow.SourceRepository().ClaimForProcessing(ctx, src.Id, staleBefore)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = uow.SourceRepository().ClaimForProcessing(ctx, src.Id, staleBefore)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("rolled back writes vanish", func(t *testing.T) {
		tx := factory.NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		require.NoError(t, tx.DocumentRepository().Create(ctx, &entity.Document{
			Id:       uuid.New(),
			SourceId: src.Id,
			DocType:  "note",
			Metadata: map[string]interface{}{"title": src.Title},
		}))
		require.NoError(t, tx.Rollback())

		docs, err := uow.DocumentRepository().FindBySource(ctx, src.Id)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("documents chunks and search", func(t *testing.T) {
		res, err := embedding.NewHashProvider().Generate(ctx, body, embedding.TaskRetrievalDocument)
		require.NoError(t, err)

		tx := factory.NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		doc := &entity.Document{
			Id:       uuid.New(),
			SourceId: src.Id,
			DocType:  "note",
			Metadata: map[string]interface{}{"brand": "Acme"},
		}
		require.NoError(t, tx.DocumentRepository().Create(ctx, doc))
		require.NoError(t, tx.ChunkRepository().CreateBulk(ctx, []*entity.Chunk{
			{Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: 0, Text: body, Embedding: res.Embedding.Values},
		}))
		require.NoError(t, tx.SourceRepository().UpdateStatus(ctx, src.Id, entity.SourceStatusCompleted, nil))
		require.NoError(t, tx.Commit())

		count, err := uow.ChunkRepository().CountByWorkspace(ctx, ws.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		hits, err := uow.ChunkRepository().SearchSimilar(ctx, ws.Id, res.Embedding.Values, 5, map[string]string{"brand": "Acme"})
		require.NoError(t, err)
		if assert.NotEmpty(t, hits) {
			assert.Equal(t, body, hits[0].Chunk.Text)
			assert.Equal(t, src.Title, hits[0].SourceTitle)
			assert.InDelta(t, 1.0, hits[0].Similarity, 1e-3)
		}

		hits, err = uow.ChunkRepository().SearchSimilar(ctx, ws.Id, res.Embedding.Values, 5, map[string]string{"brand": "Other"})
		require.NoError(t, err)
		assert.Empty(t, hits)

		require.NoError(t, uow.DocumentRepository().DeleteBySource(ctx, src.Id))
		count, err = uow.ChunkRepository().CountByWorkspace(ctx, ws.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("chunk lookups span id batches", func(t *testing.T) {
		const docCount = 1100

		tx := factory.NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		ids := make([]uuid.UUID, docCount)
		chunks := make([]*entity.Chunk, 0, docCount)
		for i := range ids {
			doc := &entity.Document{Id: uuid.New(), SourceId: src.Id, DocType: "review"}
			require.NoError(t, tx.DocumentRepository().Create(ctx, doc))
			ids[i] = doc.Id
			chunks = append(chunks, &entity.Chunk{Id: uuid.New(), DocumentId: doc.Id, Text: "row"})
		}
		require.NoError(t, tx.ChunkRepository().CreateBulk(ctx, chunks))
		require.NoError(t, tx.Commit())
		t.Cleanup(func() {
			_ = factory.NewUnitOfWork(ctx).DocumentRepository().DeleteBySource(ctx, src.Id)
		})

		byIds, err := uow.ChunkRepository().FindByDocumentIDs(ctx, ids)
		require.NoError(t, err)
		assert.Len(t, byIds, docCount)

		byWorkspace, err := uow.ChunkRepository().FindByWorkspace(ctx, ws.Id)
		require.NoError(t, err)
		require.Len(t, byWorkspace, docCount)
		for i := range byIds {
			assert.Equal(t, byWorkspace[i].Id, byIds[i].Id)
		}
	})
}
