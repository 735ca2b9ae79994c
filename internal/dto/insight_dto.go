package dto

import (
	"time"

	"github.com/google/uuid"
)

type EvidenceResponse struct {
	Text    string    `json:"text"`
	ChunkId uuid.UUID `json:"chunk_id"`
}

type InsightResponse struct {
	Id        uuid.UUID              `json:"id"`
	Kind      string                 `json:"kind"`
	Title     string                 `json:"title"`
	Summary   string                 `json:"summary"`
	Evidence  []EvidenceResponse     `json:"evidence,omitempty"`
	Metrics   map[string]interface{} `json:"metrics"`
	CreatedAt time.Time              `json:"created_at"`
}

type DashboardResponse struct {
	WorkspaceId uuid.UUID          `json:"workspace_id"`
	Stats       *InsightResponse   `json:"stats"`
	Claims      *InsightResponse   `json:"claims"`
	Trends      *InsightResponse   `json:"trends"`
	Others      []*InsightResponse `json:"others"`
}

type AnalyticsRunResponse struct {
	WorkspaceId uuid.UUID `json:"workspace_id"`
	Updated     bool      `json:"updated"`
	Themes      int       `json:"themes"`
}
