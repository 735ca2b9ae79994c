package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Text       string
	// Embedding is nil until the chunk has been embedded.
	Embedding []float32
	CreatedAt time.Time
}
