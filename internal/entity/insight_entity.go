package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	InsightKindStats  = "stats"
	InsightKindClaims = "claims"
	InsightKindTrends = "trends"
	InsightKindTheme  = "theme"
)

type InsightEvidence struct {
	Text    string    `json:"text"`
	ChunkId uuid.UUID `json:"chunk_id"`
}

type Insight struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Kind        string
	Title       string
	Summary     string
	Evidence    []InsightEvidence
	Metrics     map[string]interface{}
	CreatedAt   time.Time
}
