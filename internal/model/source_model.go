package model

import (
	"time"

	"github.com/google/uuid"
)

type Source struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(20);not null"`
	Title        string    `gorm:"type:varchar(500);not null"`
	Url          *string   `gorm:"type:text"`
	Filename     *string   `gorm:"type:varchar(500)"`
	RawText      *string   `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ErrorMessage *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Documents []Document `gorm:"foreignKey:SourceId;constraint:OnDelete:CASCADE"`
}

func (Source) TableName() string {
	return "sources"
}
