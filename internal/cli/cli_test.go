package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type fakeSearch struct {
	got     *dto.SearchRequest
	results []*dto.SearchResult
}

func (f *fakeSearch) Search(ctx context.Context, ws uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchResult, error) {
	f.got = req
	return f.results, nil
}

type fakeIngestion struct{}

func (fakeIngestion) ProcessSource(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}

func (fakeIngestion) ProcessPendingSources(ctx context.Context, ws uuid.UUID) (*dto.IngestionSummary, error) {
	return &dto.IngestionSummary{WorkspaceId: ws, Total: 3, Completed: 2, Failed: 1}, nil
}

type fakeLogs struct {
	level string
}

func (f *fakeLogs) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	f.level = level
	return []logger.LogEntry{
		{Timestamp: "2024-05-01T10:00:00Z", Level: "WARN", Module: "INGESTION", Message: "Source not found"},
	}, nil
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		searchLimit, searchFilters, searchJSON = 5, nil, false
		logsLevel, logsLimit, logsOffset = "", 50, 0
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	url := "https://example.com/r/1"
	search := &fakeSearch{results: []*dto.SearchResult{
		{ChunkId: uuid.New(), SourceTitle: "Reviews", SourceUrl: &url, ChunkText: "great whitening", Score: 0.912},
	}}
	SetServices(&Services{Search: search})
	t.Cleanup(func() { SetServices(nil) })

	ws := uuid.NewString()
	out, err := run(t, "search", ws, "whitening", "-n", "3", "--filter", "brand=Crest")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Reviews (0.912)")
	assert.Contains(t, out, "Source: https://example.com/r/1")
	assert.Equal(t, 3, search.got.Limit)
	assert.Equal(t, map[string]string{"brand": "Crest"}, search.got.Filters)

	out, err = run(t, "search", ws, "whitening", "--json")
	require.NoError(t, err)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "great whitening", decoded[0]["chunk_text"])
}

func TestSearchCommand_BadFilter(t *testing.T) {
	SetServices(&Services{Search: &fakeSearch{}})
	t.Cleanup(func() { SetServices(nil) })

	_, err := run(t, "search", uuid.NewString(), "q", "--filter", "novalue")
	assert.ErrorContains(t, err, "expected key=value")
}

func TestIngestCommand(t *testing.T) {
	SetServices(&Services{Ingestion: fakeIngestion{}})
	t.Cleanup(func() { SetServices(nil) })

	out, err := run(t, "ingest", uuid.NewString())
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 3 sources: 2 completed, 1 failed, 0 skipped")

	_, err = run(t, "ingest", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid id")
}

func TestCommandsWithoutServices(t *testing.T) {
	SetServices(nil)

	_, err := run(t, "analytics", uuid.NewString())
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestLogsCommand(t *testing.T) {
	logs := &fakeLogs{}
	SetServices(&Services{Logs: logs})
	t.Cleanup(func() { SetServices(nil) })

	out, err := run(t, "logs", "--level", "warn")
	require.NoError(t, err)
	assert.Equal(t, "WARN", logs.level)
	assert.Contains(t, out, "WARN  [INGESTION] Source not found")
}

func TestParseFilters(t *testing.T) {
	f, err := parseFilters([]string{"brand=Acme", "rating=5", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"brand": "Acme", "rating": "5", "note": "a=b"}, f)

	f, err = parseFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = parseFilters([]string{"=x"})
	assert.Error(t, err)
}
