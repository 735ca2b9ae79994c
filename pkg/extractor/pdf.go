package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"insighthub-be/pkg/storage"

	"github.com/dslipak/pdf"
)

type PDFExtractor struct {
	files storage.FileStore
}

func NewPDFExtractor(files storage.FileStore) *PDFExtractor {
	return &PDFExtractor{files: files}
}

func (e *PDFExtractor) Extract(ctx context.Context, src Source) ([]Document, error) {
	rc, err := e.files.Open(ctx, src.Payload)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	r, err := openPDF(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		pages = append(pages, pageText(r.Page(i)))
	}

	return []Document{{
		DocType:  DocTypeReport,
		Metadata: map[string]interface{}{"filename": src.Filename},
		Text:     strings.Join(pages, "\n"),
	}}, nil
}

func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// pageText yields "" for pages with no extractable text, including ones the parser chokes on.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}
