package memory

import (
	"context"
	"testing"
	"time"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSource(t *testing.T, s *Store) (*entity.Workspace, *entity.Source) {
	t.Helper()
	ctx := context.Background()
	uow := s.NewUnitOfWork(ctx)

	ws := &entity.Workspace{Name: "acme"}
	require.NoError(t, uow.WorkspaceRepository().Create(ctx, ws))
	src := &entity.Source{WorkspaceId: ws.Id, Kind: entity.SourceKindNote, Title: "n"}
	require.NoError(t, uow.SourceRepository().Create(ctx, src))
	return ws, src
}

func addDocument(t *testing.T, s *Store, sourceId uuid.UUID, meta map[string]interface{}, vectors ...[]float32) *entity.Document {
	t.Helper()
	ctx := context.Background()
	uow := s.NewUnitOfWork(ctx)

	doc := &entity.Document{SourceId: sourceId, DocType: "review", Metadata: meta}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))
	chunks := make([]*entity.Chunk, len(vectors))
	for i, v := range vectors {
		chunks[i] = &entity.Chunk{DocumentId: doc.Id, ChunkIndex: i, Text: "chunk", Embedding: v}
	}
	require.NoError(t, uow.ChunkRepository().CreateBulk(ctx, chunks))
	return doc
}

func TestTransactionIsolationAndCommit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ws, src := seedSource(t, s)

	tx := s.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	doc := &entity.Document{SourceId: src.Id, DocType: "note"}
	require.NoError(t, tx.DocumentRepository().Create(ctx, doc))

	outside, err := s.NewUnitOfWork(ctx).DocumentRepository().FindByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	assert.Empty(t, outside, "uncommitted document must not be visible")

	inside, err := tx.DocumentRepository().FindByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	assert.Len(t, inside, 1)

	require.NoError(t, tx.Commit())
	outside, err = s.NewUnitOfWork(ctx).DocumentRepository().FindByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	assert.Len(t, outside, 1)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, src := seedSource(t, s)

	tx := s.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))
	require.NoError(t, tx.DocumentRepository().Create(ctx, &entity.Document{SourceId: src.Id}))
	require.NoError(t, tx.Rollback())

	docs, err := s.NewUnitOfWork(ctx).DocumentRepository().FindBySource(ctx, src.Id)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCommitKeepsConcurrentWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ws, src := seedSource(t, s)

	tx := s.NewUnitOfWork(ctx)
	require.NoError(t, tx.Begin(ctx))

	// A write outside the transaction after Begin must survive its commit.
	other := &entity.Source{WorkspaceId: ws.Id, Kind: entity.SourceKindNote, Title: "other"}
	require.NoError(t, s.NewUnitOfWork(ctx).SourceRepository().Create(ctx, other))

	require.NoError(t, tx.SourceRepository().UpdateStatus(ctx, src.Id, entity.SourceStatusCompleted, nil))
	require.NoError(t, tx.Commit())

	sources, err := s.NewUnitOfWork(ctx).SourceRepository().FindByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, entity.SourceStatusCompleted, sources[0].Status)
	assert.Equal(t, "other", sources[1].Title)
}

func TestClaimForProcessing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, src := seedSource(t, s)
	repo := s.NewUnitOfWork(ctx).SourceRepository()

	claimed, err := repo.ClaimForProcessing(ctx, src.Id, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimForProcessing(ctx, src.Id, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed, "a fresh processing source belongs to its worker")

	claimed, err = repo.ClaimForProcessing(ctx, src.Id, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, claimed, "a stale processing source can be reclaimed")

	require.NoError(t, repo.UpdateStatus(ctx, src.Id, entity.SourceStatusCompleted, nil))
	claimed, err = repo.ClaimForProcessing(ctx, src.Id, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, claimed)

	claimed, err = repo.ClaimForProcessing(ctx, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestSearchSimilarOrdersAndFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ws, src := seedSource(t, s)

	addDocument(t, s, src.Id, map[string]interface{}{"brand": "A"}, []float32{1, 0}, []float32{0, 1})
	addDocument(t, s, src.Id, map[string]interface{}{"brand": "B"}, []float32{0.8, 0.6})

	repo := s.NewUnitOfWork(ctx).ChunkRepository()

	hits, err := repo.SearchSimilar(ctx, ws.Id, []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.InDelta(t, 0.8, hits[1].Similarity, 1e-6)
	assert.InDelta(t, 0.0, hits[2].Similarity, 1e-6)
	assert.Equal(t, "n", hits[0].SourceTitle)
	assert.Equal(t, "review", hits[0].DocumentType)

	hits, err = repo.SearchSimilar(ctx, ws.Id, []float32{1, 0}, 10, map[string]string{"brand": "B"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 0.8, hits[0].Similarity, 1e-6)

	hits, err = repo.SearchSimilar(ctx, ws.Id, []float32{1, 0}, 1, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = repo.SearchSimilar(ctx, uuid.New(), []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ws, src := seedSource(t, s)
	addDocument(t, s, src.Id, nil, []float32{1, 0})

	uow := s.NewUnitOfWork(ctx)
	require.NoError(t, uow.InsightRepository().CreateBulk(ctx, []*entity.Insight{{WorkspaceId: ws.Id, Kind: entity.InsightKindStats}}))
	sc := &entity.Scorecard{WorkspaceId: ws.Id, Name: "sc"}
	require.NoError(t, uow.ScorecardRepository().Create(ctx, sc))
	require.NoError(t, uow.ScorecardResultRepository().CreateBulk(ctx, []*entity.ScorecardResult{{ScorecardId: sc.Id, Brand: "A"}}))

	require.NoError(t, uow.WorkspaceRepository().Delete(ctx, ws.Id))

	count, err := uow.ChunkRepository().CountByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
	docs, err := uow.DocumentRepository().FindBySource(ctx, src.Id)
	require.NoError(t, err)
	assert.Empty(t, docs)
	insights, err := uow.InsightRepository().FindByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	assert.Empty(t, insights)
	results, err := uow.ScorecardResultRepository().FindByScorecard(ctx, sc.Id)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTransactionLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	uow := s.NewUnitOfWork(ctx)

	assert.ErrorIs(t, uow.Commit(), unitofwork.ErrNoTx)
	assert.NoError(t, uow.Rollback())

	require.NoError(t, uow.Begin(ctx))
	assert.ErrorIs(t, uow.Begin(ctx), unitofwork.ErrTxActive)
	require.NoError(t, uow.WorkspaceRepository().Create(ctx, &entity.Workspace{Name: "kept"}))
	require.NoError(t, uow.Commit())
	assert.NoError(t, uow.Rollback(), "rollback after commit is a no-op")

	all, err := s.NewUnitOfWork(ctx).WorkspaceRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestChunksByWorkspace(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ws, src := seedSource(t, s)
	first := addDocument(t, s, src.Id, nil, nil, []float32{1, 0})
	second := addDocument(t, s, src.Id, nil, []float32{0, 1})

	_, otherSrc := seedSource(t, s)
	addDocument(t, s, otherSrc.Id, nil, []float32{1, 1})

	chunks, err := s.NewUnitOfWork(ctx).ChunkRepository().FindByWorkspace(ctx, ws.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 3, "chunks without embeddings are included")

	perDoc := map[uuid.UUID][]int{}
	for _, c := range chunks {
		perDoc[c.DocumentId] = append(perDoc[c.DocumentId], c.ChunkIndex)
	}
	assert.Equal(t, []int{0, 1}, perDoc[first.Id])
	assert.Equal(t, []int{0}, perDoc[second.Id])

	byIds, err := s.NewUnitOfWork(ctx).ChunkRepository().FindByDocumentIDs(ctx, []uuid.UUID{first.Id, second.Id})
	require.NoError(t, err)
	assert.Equal(t, chunks, byIds)
}
