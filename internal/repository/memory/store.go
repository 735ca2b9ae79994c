package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/repository/contract"
	"insighthub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type tables struct {
	workspaces *table[entity.Workspace]
	sources    *table[entity.Source]
	documents  *table[entity.Document]
	chunks     *table[entity.Chunk]
	insights   *table[entity.Insight]
	scorecards *table[entity.Scorecard]
	results    *table[entity.ScorecardResult]
}

func newTables() *tables {
	return &tables{
		workspaces: newTable[entity.Workspace](),
		sources:    newTable[entity.Source](),
		documents:  newTable[entity.Document](),
		chunks:     newTable[entity.Chunk](),
		insights:   newTable[entity.Insight](),
		scorecards: newTable[entity.Scorecard](),
		results:    newTable[entity.ScorecardResult](),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		workspaces: t.workspaces.clone(),
		sources:    t.sources.clone(),
		documents:  t.documents.clone(),
		chunks:     t.chunks.clone(),
		insights:   t.insights.clone(),
		scorecards: t.scorecards.clone(),
		results:    t.results.clone(),
	}
}

func (t *tables) apply(tx *tables) {
	t.workspaces.apply(tx.workspaces)
	t.sources.apply(tx.sources)
	t.documents.apply(tx.documents)
	t.chunks.apply(tx.chunks)
	t.insights.apply(tx.insights)
	t.scorecards.apply(tx.scorecards)
	t.results.apply(tx.results)
}

// Store is an in-process stand-in for the relational store. Transactions work on
// a private snapshot taken at Begin; Commit writes back only the rows the
// transaction touched.
type Store struct {
	mu   sync.RWMutex
	data *tables
	seq  atomic.Int64
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: s}
}

func (s *Store) nextSeq() int64 {
	return s.seq.Add(1)
}

type unitOfWork struct {
	store *Store
	tx    *tables
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return unitofwork.ErrTxActive
	}
	u.store.mu.RLock()
	u.tx = u.store.data.clone()
	u.store.mu.RUnlock()
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return unitofwork.ErrNoTx
	}
	u.store.mu.Lock()
	u.store.data.apply(u.tx)
	u.store.mu.Unlock()
	u.tx = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	u.tx = nil
	return nil
}

func (u *unitOfWork) read(fn func(t *tables) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return fn(u.store.data)
}

func (u *unitOfWork) write(fn func(t *tables) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(u.store.data)
}

func (u *unitOfWork) WorkspaceRepository() contract.WorkspaceRepository {
	return &workspaceRepository{uow: u}
}

func (u *unitOfWork) SourceRepository() contract.SourceRepository {
	return &sourceRepository{uow: u}
}

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &documentRepository{uow: u}
}

func (u *unitOfWork) ChunkRepository() contract.ChunkRepository {
	return &chunkRepository{uow: u}
}

func (u *unitOfWork) InsightRepository() contract.InsightRepository {
	return &insightRepository{uow: u}
}

func (u *unitOfWork) ScorecardRepository() contract.ScorecardRepository {
	return &scorecardRepository{uow: u}
}

func (u *unitOfWork) ScorecardResultRepository() contract.ScorecardResultRepository {
	return &scorecardResultRepository{uow: u}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// cascade helpers, mirroring the ON DELETE CASCADE foreign keys

func (t *tables) deleteSource(id uuid.UUID) {
	for _, d := range t.documents.list(func(d entity.Document) bool { return d.SourceId == id }) {
		t.deleteDocument(d.Id)
	}
	t.sources.del(id)
}

func (t *tables) deleteDocument(id uuid.UUID) {
	for _, c := range t.chunks.list(func(c entity.Chunk) bool { return c.DocumentId == id }) {
		t.chunks.del(c.Id)
	}
	t.documents.del(id)
}

func (t *tables) deleteScorecard(id uuid.UUID) {
	for _, r := range t.results.list(func(r entity.ScorecardResult) bool { return r.ScorecardId == id }) {
		t.results.del(r.Id)
	}
	t.scorecards.del(id)
}

// workspaceOfDocument resolves a document to its source's workspace.
func (t *tables) workspaceOfDocument(documentId uuid.UUID) (uuid.UUID, *entity.Source, *entity.Document, bool) {
	doc, ok := t.documents.get(documentId)
	if !ok {
		return uuid.Nil, nil, nil, false
	}
	src, ok := t.sources.get(doc.SourceId)
	if !ok {
		return uuid.Nil, nil, nil, false
	}
	return src.WorkspaceId, &src, &doc, true
}
