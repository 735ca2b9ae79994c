package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByWorkspace filters tables that carry workspace_id directly (sources, insights, scorecards).
type ByWorkspace struct {
	WorkspaceID uuid.UUID
	Table       string
}

func (s ByWorkspace) Apply(db *gorm.DB) *gorm.DB {
	if s.Table != "" {
		return db.Where(s.Table+".workspace_id = ?", s.WorkspaceID)
	}
	return db.Where("workspace_id = ?", s.WorkspaceID)
}

// ByStatuses filters sources by status; empty means no filter.
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Statuses) == 0 {
		return db
	}
	return db.Where("status IN ?", s.Statuses)
}

// ByKinds filters insights by kind; empty means no filter.
type ByKinds struct {
	Kinds []string
}

func (s ByKinds) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Kinds) == 0 {
		return db
	}
	return db.Where("kind IN ?", s.Kinds)
}

type BySource struct {
	SourceID uuid.UUID
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_id = ?", s.SourceID)
}

type ByScorecard struct {
	ScorecardID uuid.UUID
}

func (s ByScorecard) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scorecard_id = ?", s.ScorecardID)
}

type ByDocumentIDs struct {
	DocumentIDs []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunks.document_id IN ?", s.DocumentIDs)
}

// DocumentsInWorkspace scopes a documents query through its source.
type DocumentsInWorkspace struct {
	WorkspaceID uuid.UUID
}

func (s DocumentsInWorkspace) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN sources ON sources.id = documents.source_id").
		Where("sources.workspace_id = ?", s.WorkspaceID)
}

// ChunksInWorkspace scopes a chunks query through document and source.
type ChunksInWorkspace struct {
	WorkspaceID uuid.UUID
}

func (s ChunksInWorkspace) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN documents ON documents.id = chunks.document_id").
		Joins("JOIN sources ON sources.id = documents.source_id").
		Where("sources.workspace_id = ?", s.WorkspaceID)
}

type HasEmbedding struct{}

func (s HasEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunks.embedding IS NOT NULL")
}

// MetadataEquals matches document metadata keys as text (documents must be joined).
type MetadataEquals struct {
	Filters map[string]string
}

func (s MetadataEquals) Apply(db *gorm.DB) *gorm.DB {
	for key, value := range s.Filters {
		db = db.Where("documents.metadata ->> ? = ?", key, value)
	}
	return db
}
