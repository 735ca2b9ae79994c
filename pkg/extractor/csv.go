package extractor

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"insighthub-be/pkg/storage"
)

// TextColumns are tried in order; the first holding a non-numeric, non-empty value becomes the document text.
var TextColumns = []string{"review", "text", "content", "body", "review_text"}

type CSVExtractor struct {
	files storage.FileStore
}

func NewCSVExtractor(files storage.FileStore) *CSVExtractor {
	return &CSVExtractor{files: files}
}

// Extract emits one review document per data row. Every column lands in the metadata.
func (e *CSVExtractor) Extract(ctx context.Context, src Source) ([]Document, error) {
	rc, err := e.files.Open(ctx, src.Payload)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer rc.Close()

	return ParseCSV(rc)
}

func ParseCSV(r io.Reader) ([]Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv has no header row")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var docs []Document
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		raw := make(map[string]string, len(header))
		metadata := make(map[string]interface{}, len(header))
		values := make([]string, 0, len(header))
		for i, col := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			raw[col] = cell
			metadata[col] = typedCell(cell)
			values = append(values, cell)
		}

		text := ""
		for _, col := range TextColumns {
			if cell, ok := raw[col]; ok && isTextCell(cell) {
				text = cell
				break
			}
		}
		if text == "" {
			text = strings.Join(values, " ")
		}

		docs = append(docs, Document{
			DocType:  DocTypeReview,
			Metadata: metadata,
			Text:     text,
		})
	}

	return docs, nil
}

func isTextCell(cell string) bool {
	if strings.TrimSpace(cell) == "" {
		return false
	}
	_, numeric := parseNumber(cell)
	return !numeric
}

func typedCell(cell string) interface{} {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	if f, ok := parseNumber(cell); ok {
		return f
	}
	return cell
}

func parseNumber(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
