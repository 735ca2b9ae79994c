package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Insight struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind        string            `gorm:"type:varchar(20);not null;index"`
	Title       string            `gorm:"type:varchar(500);not null"`
	Summary     string            `gorm:"type:text"`
	Evidence    datatypes.JSON    `gorm:"type:jsonb"`
	Metrics     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
}

func (Insight) TableName() string {
	return "insights"
}
