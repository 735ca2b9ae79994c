package extractor

import "context"

type NoteExtractor struct{}

func (NoteExtractor) Extract(ctx context.Context, src Source) ([]Document, error) {
	return []Document{{
		DocType:  DocTypeNote,
		Metadata: map[string]interface{}{"title": src.Title},
		Text:     src.Payload,
	}}, nil
}
