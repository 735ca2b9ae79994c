package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Chunk struct {
	Id         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID        `gorm:"type:uuid;not null;index"`
	ChunkIndex int              `gorm:"not null"`
	Text       string           `gorm:"type:text;not null"`
	Embedding  *pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2
	CreatedAt  time.Time        `gorm:"autoCreateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
