package dto

import "github.com/google/uuid"

type SearchRequest struct {
	Query   string            `json:"query" validate:"required"`
	Limit   int               `json:"limit" validate:"gte=0,lte=100"`
	Filters map[string]string `json:"filters"`
}

type SearchResult struct {
	ChunkId      uuid.UUID `json:"chunk_id"`
	DocumentId   uuid.UUID `json:"document_id"`
	ChunkText    string    `json:"chunk_text"`
	SourceTitle  string    `json:"source_title"`
	SourceUrl    *string   `json:"source_url"`
	DocumentType string    `json:"document_type"`
	Score        float64   `json:"score"`
}
