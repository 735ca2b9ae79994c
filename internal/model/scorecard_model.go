package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Scorecard struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Config      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`

	Results []ScorecardResult `gorm:"foreignKey:ScorecardId;constraint:OnDelete:CASCADE"`
}

func (Scorecard) TableName() string {
	return "scorecards"
}

type ScorecardResult struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ScorecardId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Brand       string         `gorm:"type:varchar(255);not null"`
	Results     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (ScorecardResult) TableName() string {
	return "scorecard_results"
}
