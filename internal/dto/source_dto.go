package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type CreateUrlSourceRequest struct {
	WorkspaceId uuid.UUID `json:"workspace_id" validate:"required"`
	Url         string    `json:"url" validate:"required,url"`
	Title       string    `json:"title" validate:"max=500"`
}

type CreateNoteSourceRequest struct {
	WorkspaceId uuid.UUID `json:"workspace_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=500"`
	Content     string    `json:"content" validate:"required"`
}

// UploadSourceRequest is assembled by the controller from a multipart form.
type UploadSourceRequest struct {
	WorkspaceId uuid.UUID
	Title       string
	Filename    string
	File        io.Reader
}

type SourceResponse struct {
	Id           uuid.UUID `json:"id"`
	WorkspaceId  uuid.UUID `json:"workspace_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Url          *string   `json:"url,omitempty"`
	Filename     *string   `json:"filename,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type IngestionSummary struct {
	WorkspaceId uuid.UUID `json:"workspace_id"`
	Total       int       `json:"total"`
	Completed   int       `json:"completed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
}
