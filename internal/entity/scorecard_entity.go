package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScorecardFactor struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
}

type Scorecard struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Name        string
	Factors     []ScorecardFactor
	CreatedAt   time.Time
}

type ScorecardResult struct {
	Id          uuid.UUID
	ScorecardId uuid.UUID
	Brand       string
	Overall     float64
	Factors     map[string]float64
	CreatedAt   time.Time
}
