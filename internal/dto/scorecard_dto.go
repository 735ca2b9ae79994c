package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScorecardFactorRequest struct {
	Name     string   `json:"name" validate:"required"`
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
	// Weight defaults to 1.0 when omitted.
	Weight *float64 `json:"weight" validate:"omitempty,gte=0"`
}

type CreateScorecardRequest struct {
	Name    string                   `json:"name" validate:"required,max=255"`
	Factors []ScorecardFactorRequest `json:"factors" validate:"required,min=1,dive"`
}

type ScorecardFactorResponse struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
}

type ScorecardResponse struct {
	Id          uuid.UUID                 `json:"id"`
	WorkspaceId uuid.UUID                 `json:"workspace_id"`
	Name        string                    `json:"name"`
	Factors     []ScorecardFactorResponse `json:"factors"`
	CreatedAt   time.Time                 `json:"created_at"`
}

type ScorecardResultResponse struct {
	Brand   string             `json:"brand"`
	Overall float64            `json:"overall"`
	Factors map[string]float64 `json:"factors"`
}
