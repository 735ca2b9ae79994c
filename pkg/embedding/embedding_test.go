package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"insighthub-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls atomic.Int32
	inner EmbeddingProvider
}

func (c *countingProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	c.calls.Add(1)
	return c.inner.Generate(ctx, text, taskType)
}

type shortProvider struct{}

func (shortProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: []float32{1, 2, 3}}}, nil
}

func TestHashProvider_Deterministic(t *testing.T) {
	p := NewHashProvider()
	ctx := context.Background()

	a, err := p.Generate(ctx, "Whitening toothpaste works great", TaskRetrievalDocument)
	require.NoError(t, err)
	b, err := p.Generate(ctx, "whitening toothpaste works great!", TaskRetrievalQuery)
	require.NoError(t, err)
	c, err := p.Generate(ctx, "charcoal made my gums bleed", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Len(t, a.Embedding.Values, Dimension)
	assert.InDelta(t, 1.0, CosineSimilarity(a.Embedding.Values, b.Embedding.Values), 1e-6)
	assert.Less(t, CosineSimilarity(a.Embedding.Values, c.Embedding.Values), 0.9)
}

func TestCachedProvider_LocalAndShared(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	inner := &countingProvider{inner: NewHashProvider()}
	p := NewCachedProvider(inner, client, time.Hour, logger.NewNopLogger())

	first, err := p.Generate(ctx, "fresh breath all day", TaskRetrievalDocument)
	require.NoError(t, err)
	second, err := p.Generate(ctx, "fresh breath all day", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, first.Embedding.Values, second.Embedding.Values)
	assert.True(t, mr.Exists("emb:fresh breath all day"))
	assert.Equal(t, time.Hour, mr.TTL("emb:fresh breath all day"))

	// A second process sharing the same redis does not recompute.
	otherInner := &countingProvider{inner: NewHashProvider()}
	other := NewCachedProvider(otherInner, client, time.Hour, logger.NewNopLogger())
	third, err := other.Generate(ctx, "fresh breath all day", TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, int32(0), otherInner.calls.Load())
	assert.Equal(t, first.Embedding.Values, third.Embedding.Values)
}

func TestCachedProvider_SharedCacheDownFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	inner := &countingProvider{inner: NewHashProvider()}
	p := NewCachedProvider(inner, client, time.Hour, logger.NewNopLogger())

	res, err := p.Generate(context.Background(), "plaque", TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Len(t, res.Embedding.Values, Dimension)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedProvider_MalformedSharedEntryIgnored(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set("emb:enamel", "not json"))

	inner := &countingProvider{inner: NewHashProvider()}
	p := NewCachedProvider(inner, client, time.Hour, logger.NewNopLogger())

	res, err := p.Generate(context.Background(), "enamel", TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Len(t, res.Embedding.Values, Dimension)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedProvider_DimensionMismatch(t *testing.T) {
	p := NewCachedProvider(shortProvider{}, nil, time.Hour, logger.NewNopLogger())

	_, err := p.Generate(context.Background(), "anything", TaskRetrievalDocument)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOllamaProvider_LazyInitOnce(t *testing.T) {
	var showCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/show":
			showCalls.Add(1)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		case "/api/embeddings":
			vec := make([]float64, Dimension)
			vec[0] = 3
			vec[1] = 4
			json.NewEncoder(w).Encode(map[string]interface{}{"embedding": vec})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "all-minilm")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Generate(context.Background(), "gum health", TaskRetrievalDocument)
			assert.NoError(t, err)
			if err == nil {
				assert.InDelta(t, 0.6, res.Embedding.Values[0], 1e-6)
				assert.InDelta(t, 0.8, res.Embedding.Values[1], 1e-6)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), showCalls.Load())
}

func TestOllamaProvider_WrongDimension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/show" {
			w.Write([]byte(`{}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float64{1, 2}})
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "nomic-embed-text").Generate(context.Background(), "x", TaskRetrievalQuery)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
