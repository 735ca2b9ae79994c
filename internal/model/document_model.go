package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceId  uuid.UUID         `gorm:"type:uuid;not null;index"`
	DocType   string            `gorm:"type:varchar(20);not null"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`

	Chunks []Chunk `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (Document) TableName() string {
	return "documents"
}
