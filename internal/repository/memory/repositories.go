package memory

import (
	"context"
	"sort"
	"time"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/repository/contract"
	"insighthub-be/pkg/embedding"

	"github.com/google/uuid"
)

type workspaceRepository struct{ uow *unitOfWork }

func (r *workspaceRepository) Create(ctx context.Context, workspace *entity.Workspace) error {
	ensureID(&workspace.Id)
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now()
	}
	return r.uow.write(func(t *tables) error {
		t.workspaces.put(workspace.Id, r.uow.store.nextSeq(), *workspace)
		return nil
	})
}

func (r *workspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Workspace, error) {
	var out *entity.Workspace
	err := r.uow.read(func(t *tables) error {
		if w, ok := t.workspaces.get(id); ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *workspaceRepository) FindAll(ctx context.Context) ([]*entity.Workspace, error) {
	var out []*entity.Workspace
	err := r.uow.read(func(t *tables) error {
		rows := t.workspaces.list(nil)
		for i := len(rows) - 1; i >= 0; i-- {
			w := rows[i]
			out = append(out, &w)
		}
		return nil
	})
	return out, err
}

func (r *workspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.write(func(t *tables) error {
		for _, s := range t.sources.list(func(s entity.Source) bool { return s.WorkspaceId == id }) {
			t.deleteSource(s.Id)
		}
		for _, i := range t.insights.list(func(i entity.Insight) bool { return i.WorkspaceId == id }) {
			t.insights.del(i.Id)
		}
		for _, s := range t.scorecards.list(func(s entity.Scorecard) bool { return s.WorkspaceId == id }) {
			t.deleteScorecard(s.Id)
		}
		t.workspaces.del(id)
		return nil
	})
}

type sourceRepository struct{ uow *unitOfWork }

func (r *sourceRepository) Create(ctx context.Context, source *entity.Source) error {
	ensureID(&source.Id)
	now := time.Now()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	source.UpdatedAt = now
	if source.Status == "" {
		source.Status = entity.SourceStatusPending
	}
	return r.uow.write(func(t *tables) error {
		t.sources.put(source.Id, r.uow.store.nextSeq(), *source)
		return nil
	})
}

func (r *sourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Source, error) {
	var out *entity.Source
	err := r.uow.read(func(t *tables) error {
		if s, ok := t.sources.get(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *sourceRepository) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID, statuses ...string) ([]*entity.Source, error) {
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []*entity.Source
	err := r.uow.read(func(t *tables) error {
		for _, s := range t.sources.list(func(s entity.Source) bool {
			return s.WorkspaceId == workspaceId && (len(allowed) == 0 || allowed[s.Status])
		}) {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *sourceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMessage *string) error {
	return r.uow.write(func(t *tables) error {
		s, ok := t.sources.get(id)
		if !ok {
			return nil
		}
		s.Status = status
		s.ErrorMessage = errorMessage
		s.UpdatedAt = time.Now()
		t.sources.put(id, 0, s)
		return nil
	})
}

func (r *sourceRepository) ClaimForProcessing(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error) {
	claimed := false
	err := r.uow.write(func(t *tables) error {
		s, ok := t.sources.get(id)
		if !ok {
			return nil
		}
		switch {
		case s.Status == entity.SourceStatusPending, s.Status == entity.SourceStatusFailed:
		case s.Status == entity.SourceStatusProcessing && s.UpdatedAt.Before(staleBefore):
		default:
			return nil
		}
		s.Status = entity.SourceStatusProcessing
		s.ErrorMessage = nil
		s.UpdatedAt = time.Now()
		t.sources.put(id, 0, s)
		claimed = true
		return nil
	})
	return claimed, err
}

func (r *sourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.write(func(t *tables) error {
		t.deleteSource(id)
		return nil
	})
}

type documentRepository struct{ uow *unitOfWork }

func (r *documentRepository) Create(ctx context.Context, document *entity.Document) error {
	ensureID(&document.Id)
	if document.CreatedAt.IsZero() {
		document.CreatedAt = time.Now()
	}
	if document.Metadata == nil {
		document.Metadata = map[string]interface{}{}
	}
	return r.uow.write(func(t *tables) error {
		t.documents.put(document.Id, r.uow.store.nextSeq(), *document)
		return nil
	})
}

func (r *documentRepository) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.uow.read(func(t *tables) error {
		for _, d := range t.documents.list(nil) {
			src, ok := t.sources.get(d.SourceId)
			if !ok || src.WorkspaceId != workspaceId {
				continue
			}
			d := d
			out = append(out, &d)
		}
		return nil
	})
	return out, err
}

func (r *documentRepository) FindBySource(ctx context.Context, sourceId uuid.UUID) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.uow.read(func(t *tables) error {
		for _, d := range t.documents.list(func(d entity.Document) bool { return d.SourceId == sourceId }) {
			d := d
			out = append(out, &d)
		}
		return nil
	})
	return out, err
}

func (r *documentRepository) DeleteBySource(ctx context.Context, sourceId uuid.UUID) error {
	return r.uow.write(func(t *tables) error {
		for _, d := range t.documents.list(func(d entity.Document) bool { return d.SourceId == sourceId }) {
			t.deleteDocument(d.Id)
		}
		return nil
	})
}

type chunkRepository struct{ uow *unitOfWork }

func (r *chunkRepository) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	now := time.Now()
	return r.uow.write(func(t *tables) error {
		for _, c := range chunks {
			ensureID(&c.Id)
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			t.chunks.put(c.Id, r.uow.store.nextSeq(), *c)
		}
		return nil
	})
}

func (r *chunkRepository) FindByDocumentIDs(ctx context.Context, documentIds []uuid.UUID) ([]*entity.Chunk, error) {
	wanted := make(map[uuid.UUID]bool, len(documentIds))
	for _, id := range documentIds {
		wanted[id] = true
	}
	var out []*entity.Chunk
	err := r.uow.read(func(t *tables) error {
		for _, c := range t.chunks.list(func(c entity.Chunk) bool { return wanted[c.DocumentId] }) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sortByDocument(out)
	return out, err
}

func (r *chunkRepository) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Chunk, error) {
	var out []*entity.Chunk
	err := r.uow.read(func(t *tables) error {
		for _, c := range t.chunks.list(nil) {
			ws, _, _, ok := t.workspaceOfDocument(c.DocumentId)
			if !ok || ws != workspaceId {
				continue
			}
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sortByDocument(out)
	return out, err
}

func (r *chunkRepository) FindEmbeddedByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Chunk, error) {
	var out []*entity.Chunk
	err := r.uow.read(func(t *tables) error {
		for _, c := range t.chunks.list(func(c entity.Chunk) bool { return c.Embedding != nil }) {
			ws, _, _, ok := t.workspaceOfDocument(c.DocumentId)
			if !ok || ws != workspaceId {
				continue
			}
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// SearchSimilar is an exact scan; ties keep insertion order.
func (r *chunkRepository) SearchSimilar(ctx context.Context, workspaceId uuid.UUID, vector []float32, limit int, filters map[string]string) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	var hits []*contract.ScoredChunk
	err := r.uow.read(func(t *tables) error {
		for _, c := range t.chunks.list(func(c entity.Chunk) bool { return c.Embedding != nil }) {
			ws, src, doc, ok := t.workspaceOfDocument(c.DocumentId)
			if !ok || ws != workspaceId || !metadataMatches(doc, filters) {
				continue
			}
			c := c
			hits = append(hits, &contract.ScoredChunk{
				Chunk:        &c,
				SourceTitle:  src.Title,
				SourceUrl:    src.Url,
				DocumentType: doc.DocType,
				Similarity:   embedding.CosineSimilarity(vector, c.Embedding),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Similarity > hits[j].Similarity })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (r *chunkRepository) CountByWorkspace(ctx context.Context, workspaceId uuid.UUID) (int64, error) {
	var count int64
	err := r.uow.read(func(t *tables) error {
		for _, c := range t.chunks.list(nil) {
			if ws, _, _, ok := t.workspaceOfDocument(c.DocumentId); ok && ws == workspaceId {
				count++
			}
		}
		return nil
	})
	return count, err
}

func metadataMatches(doc *entity.Document, filters map[string]string) bool {
	for key, want := range filters {
		if _, ok := doc.Metadata[key]; !ok || doc.MetaString(key) != want {
			return false
		}
	}
	return true
}

type insightRepository struct{ uow *unitOfWork }

func (r *insightRepository) CreateBulk(ctx context.Context, insights []*entity.Insight) error {
	now := time.Now()
	return r.uow.write(func(t *tables) error {
		for _, i := range insights {
			ensureID(&i.Id)
			if i.CreatedAt.IsZero() {
				i.CreatedAt = now
			}
			t.insights.put(i.Id, r.uow.store.nextSeq(), *i)
		}
		return nil
	})
}

func (r *insightRepository) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID, kinds ...string) ([]*entity.Insight, error) {
	wanted := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}
	var out []*entity.Insight
	err := r.uow.read(func(t *tables) error {
		rows := t.insights.list(func(i entity.Insight) bool {
			return i.WorkspaceId == workspaceId && (len(wanted) == 0 || wanted[i.Kind])
		})
		for i := len(rows) - 1; i >= 0; i-- {
			ins := rows[i]
			out = append(out, &ins)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r *insightRepository) DeleteByWorkspaceAndKinds(ctx context.Context, workspaceId uuid.UUID, kinds ...string) error {
	wanted := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}
	return r.uow.write(func(t *tables) error {
		for _, i := range t.insights.list(func(i entity.Insight) bool {
			return i.WorkspaceId == workspaceId && (len(wanted) == 0 || wanted[i.Kind])
		}) {
			t.insights.del(i.Id)
		}
		return nil
	})
}

type scorecardRepository struct{ uow *unitOfWork }

func (r *scorecardRepository) Create(ctx context.Context, scorecard *entity.Scorecard) error {
	ensureID(&scorecard.Id)
	if scorecard.CreatedAt.IsZero() {
		scorecard.CreatedAt = time.Now()
	}
	return r.uow.write(func(t *tables) error {
		t.scorecards.put(scorecard.Id, r.uow.store.nextSeq(), *scorecard)
		return nil
	})
}

func (r *scorecardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Scorecard, error) {
	var out *entity.Scorecard
	err := r.uow.read(func(t *tables) error {
		if s, ok := t.scorecards.get(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *scorecardRepository) FindByWorkspace(ctx context.Context, workspaceId uuid.UUID) ([]*entity.Scorecard, error) {
	var out []*entity.Scorecard
	err := r.uow.read(func(t *tables) error {
		rows := t.scorecards.list(func(s entity.Scorecard) bool { return s.WorkspaceId == workspaceId })
		for i := len(rows) - 1; i >= 0; i-- {
			s := rows[i]
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

type scorecardResultRepository struct{ uow *unitOfWork }

func (r *scorecardResultRepository) CreateBulk(ctx context.Context, results []*entity.ScorecardResult) error {
	now := time.Now()
	return r.uow.write(func(t *tables) error {
		for _, res := range results {
			ensureID(&res.Id)
			if res.CreatedAt.IsZero() {
				res.CreatedAt = now
			}
			t.results.put(res.Id, r.uow.store.nextSeq(), *res)
		}
		return nil
	})
}

func (r *scorecardResultRepository) FindByScorecard(ctx context.Context, scorecardId uuid.UUID) ([]*entity.ScorecardResult, error) {
	var out []*entity.ScorecardResult
	err := r.uow.read(func(t *tables) error {
		for _, res := range t.results.list(func(res entity.ScorecardResult) bool { return res.ScorecardId == scorecardId }) {
			res := res
			out = append(out, &res)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Brand < out[j].Brand })
	return out, err
}

func (r *scorecardResultRepository) DeleteByScorecard(ctx context.Context, scorecardId uuid.UUID) error {
	return r.uow.write(func(t *tables) error {
		for _, res := range t.results.list(func(res entity.ScorecardResult) bool { return res.ScorecardId == scorecardId }) {
			t.results.del(res.Id)
		}
		return nil
	})
}

func sortByDocument(chunks []*entity.Chunk) {
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].DocumentId != chunks[j].DocumentId {
			return chunks[i].DocumentId.String() < chunks[j].DocumentId.String()
		}
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})
}
