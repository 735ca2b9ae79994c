package extractor

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type URLExtractor struct {
	client *http.Client
}

func NewURLExtractor(timeout time.Duration) *URLExtractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &URLExtractor{client: &http.Client{Timeout: timeout}}
}

func (e *URLExtractor) Extract(ctx context.Context, src Source) ([]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "insighthub-ingest/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), src.URL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style").Remove()

	title := src.Title
	if sel := doc.Find("title").First(); sel.Length() > 0 {
		title = strings.TrimSpace(sel.Text())
	}

	return []Document{{
		DocType:  DocTypePage,
		Metadata: map[string]interface{}{"url": src.URL, "title": title},
		Text:     doc.Text(),
	}}, nil
}
