package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID
	SourceId  uuid.UUID
	DocType   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// MetaString returns a metadata value as a trimmed string. Numbers are formatted
// without a trailing ".0"; missing or empty values yield "".
func (d *Document) MetaString(key string) string {
	return metaString(d.Metadata[key])
}
