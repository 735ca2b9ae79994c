package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceKindURL  = "url"
	SourceKindNote = "note"
	SourceKindPDF  = "pdf"
	SourceKindCSV  = "csv"
	SourceKindFile = "file"
)

const (
	SourceStatusPending    = "pending"
	SourceStatusProcessing = "processing"
	SourceStatusCompleted  = "completed"
	SourceStatusFailed     = "failed"
)

type Source struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Kind        string
	Title       string
	Url         *string
	Filename    *string
	// RawText holds the note body, or the storage locator of an uploaded file.
	RawText      *string
	Status       string
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
