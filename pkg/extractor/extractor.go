package extractor

import (
	"context"
	"errors"
	"fmt"
)

const (
	KindURL  = "url"
	KindNote = "note"
	KindPDF  = "pdf"
	KindCSV  = "csv"
	KindFile = "file"
)

const (
	DocTypePage   = "page"
	DocTypeNote   = "note"
	DocTypeReport = "report"
	DocTypeReview = "review"
)

var ErrUnsupportedKind = errors.New("unsupported source kind")

// Source is the slice of a persisted source an extractor needs.
type Source struct {
	Kind     string
	Title    string
	URL      string
	Filename string
	// Payload is the note body for notes and the storage locator for uploaded files.
	Payload string
}

// Document is one logical document produced from a source, with its raw text.
type Document struct {
	DocType  string
	Metadata map[string]interface{}
	Text     string
}

type Extractor interface {
	Extract(ctx context.Context, src Source) ([]Document, error)
}

// Registry dispatches a source to the extractor registered for its kind.
type Registry struct {
	extractors map[string]Extractor
}

func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

func (r *Registry) Register(kind string, e Extractor) *Registry {
	r.extractors[kind] = e
	return r
}

func (r *Registry) Extract(ctx context.Context, src Source) ([]Document, error) {
	e, ok := r.extractors[src.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, src.Kind)
	}
	return e.Extract(ctx, src)
}
