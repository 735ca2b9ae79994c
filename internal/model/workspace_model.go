package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Sources    []Source    `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
	Insights   []Insight   `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
	Scorecards []Scorecard `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
