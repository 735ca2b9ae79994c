package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"insighthub-be/internal/metrics"
	"insighthub-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "emb:"

// CachedProvider keeps vectors keyed by exact text in a process-local cache and,
// when a redis client is configured, a shared cache. Any cache failure falls
// through to the wrapped provider.
type CachedProvider struct {
	inner  EmbeddingProvider
	local  *cache.Cache
	shared *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

// NewCachedProvider wraps inner. shared may be nil.
func NewCachedProvider(inner EmbeddingProvider, shared *redis.Client, ttl time.Duration, log logger.ILogger) *CachedProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedProvider{
		inner:  inner,
		local:  cache.New(ttl, 10*time.Minute),
		shared: shared,
		ttl:    ttl,
		logger: log,
	}
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := cacheKeyPrefix + text

	if v, ok := p.local.Get(key); ok {
		metrics.RecordCacheLookup("local", true)
		return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: v.([]float32)}}, nil
	}
	metrics.RecordCacheLookup("local", false)

	if values, ok := p.fromShared(ctx, key); ok {
		p.local.Set(key, values, p.ttl)
		return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
	}

	res, err := p.inner.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	if err := CheckDimension(res.Embedding.Values); err != nil {
		return nil, err
	}

	p.local.Set(key, res.Embedding.Values, p.ttl)
	p.toShared(ctx, key, res.Embedding.Values)
	return res, nil
}

func (p *CachedProvider) fromShared(ctx context.Context, key string) ([]float32, bool) {
	if p.shared == nil {
		return nil, false
	}

	data, err := p.shared.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.logger.Warn("EMBEDDING", "Shared cache read failed", map[string]interface{}{"error": err.Error()})
		}
		metrics.RecordCacheLookup("shared", false)
		return nil, false
	}

	var values []float32
	if err := json.Unmarshal(data, &values); err != nil || CheckDimension(values) != nil {
		p.logger.Warn("EMBEDDING", "Discarding malformed cached vector", map[string]interface{}{"key_len": len(key)})
		metrics.RecordCacheLookup("shared", false)
		return nil, false
	}

	metrics.RecordCacheLookup("shared", true)
	return values, true
}

func (p *CachedProvider) toShared(ctx context.Context, key string, values []float32) {
	if p.shared == nil {
		return
	}
	data, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := p.shared.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.logger.Warn("EMBEDDING", "Shared cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
