package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "")
	t.Setenv("EMBEDDING_CACHE_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.True(t, cfg.UseMemoryStore())
	assert.Equal(t, 24*time.Hour, cfg.Embedding.CacheTTL)
	assert.Equal(t, 800, cfg.Ingestion.ChunkSize)
	assert.Equal(t, 100, cfg.Ingestion.ChunkOverlap)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "postgres://localhost/insighthub")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("TASK_TRANSPORT", "nats")
	t.Setenv("URL_FETCH_TIMEOUT", "3s")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.False(t, cfg.UseMemoryStore())
	assert.Equal(t, "nats", cfg.Tasks.Transport)
	assert.Equal(t, 3*time.Second, cfg.Ingestion.URLFetchTimeout)
	assert.True(t, cfg.IsProduction())
}
