package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"insighthub-be/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UnsupportedKind(t *testing.T) {
	r := NewRegistry().Register(KindNote, NoteExtractor{})

	_, err := r.Extract(context.Background(), Source{Kind: KindFile})
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	docs, err := r.Extract(context.Background(), Source{Kind: KindNote, Title: "Memo", Payload: "body text"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, DocTypeNote, docs[0].DocType)
	assert.Equal(t, "Memo", docs[0].Metadata["title"])
	assert.Equal(t, "body text", docs[0].Text)
}

func TestURLExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><head><title> Brand Review </title><style>body{color:red}</style></head>
<body><script>var x = "hidden";</script><p>Great whitening results.</p></body></html>`))
		case "/untitled":
			w.Write([]byte(`<html><body><p>No title here</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	e := NewURLExtractor(2 * time.Second)

	t.Run("extracts visible text and title", func(t *testing.T) {
		docs, err := e.Extract(context.Background(), Source{Kind: KindURL, URL: srv.URL + "/page", Title: "Fallback"})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, DocTypePage, docs[0].DocType)
		assert.Equal(t, "Brand Review", docs[0].Metadata["title"])
		assert.Equal(t, srv.URL+"/page", docs[0].Metadata["url"])
		assert.Contains(t, docs[0].Text, "Great whitening results.")
		assert.NotContains(t, docs[0].Text, "hidden")
		assert.NotContains(t, docs[0].Text, "color:red")
	})

	t.Run("falls back to source title", func(t *testing.T) {
		docs, err := e.Extract(context.Background(), Source{Kind: KindURL, URL: srv.URL + "/untitled", Title: "Fallback"})
		require.NoError(t, err)
		assert.Equal(t, "Fallback", docs[0].Metadata["title"])
	})

	t.Run("non-2xx fails loudly", func(t *testing.T) {
		_, err := e.Extract(context.Background(), Source{Kind: KindURL, URL: srv.URL + "/missing"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestURLExtractor_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewURLExtractor(50*time.Millisecond).Extract(context.Background(), Source{URL: srv.URL})
	assert.Error(t, err)
}

func TestParseCSV_ReviewTextColumn(t *testing.T) {
	input := "brand,date,rating,review_text\n" +
		"Acme,2024-01-15,4,\"Whitening works, no sensitivity\"\n" +
		"Zest,2024-02-03,2,Too much charcoal\n"

	docs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, DocTypeReview, docs[0].DocType)
	assert.Equal(t, "Whitening works, no sensitivity", docs[0].Text)
	assert.Equal(t, map[string]interface{}{
		"brand":       "Acme",
		"date":        "2024-01-15",
		"rating":      4.0,
		"review_text": "Whitening works, no sensitivity",
	}, docs[0].Metadata)
	assert.Equal(t, "Too much charcoal", docs[1].Text)
}

func TestParseCSV_TextColumnPriority(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "review beats text", input: "text,review\nsecond,first\n", want: "first"},
		{name: "numeric column skipped", input: "review,body\n5,actual words\n", want: "actual words"},
		{name: "empty column skipped", input: "review,content\n,from content\n", want: "from content"},
		{name: "fallback joins all values", input: "brand,rating\nAcme,5\n", want: "Acme 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := ParseCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, tt.want, docs[0].Text)
		})
	}
}

func TestParseCSV_RaggedRowsAndEmpty(t *testing.T) {
	docs, err := ParseCSV(strings.NewReader("brand,review,rating\nAcme,nice\n"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].Metadata["rating"])
	assert.Equal(t, "nice", docs[0].Text)

	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCSVExtractor_FromStore(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	locator, err := store.Save(context.Background(), "reviews.csv", strings.NewReader("review\none\ntwo\nthree\n"))
	require.NoError(t, err)

	docs, err := NewCSVExtractor(store).Extract(context.Background(), Source{Kind: KindCSV, Payload: locator})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestPDFExtractor_BadFile(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	locator, err := store.Save(context.Background(), "broken.pdf", strings.NewReader("not a pdf"))
	require.NoError(t, err)

	_, err = NewPDFExtractor(store).Extract(context.Background(), Source{Kind: KindPDF, Payload: locator})
	assert.Error(t, err)
}
