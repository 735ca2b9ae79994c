package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/cluster"

	"github.com/google/uuid"
)

const (
	DefaultThemeCount = 5
	maxEvidence       = 5
	titleTerms        = 3
)

type ThemeExtractor struct {
	seed   int64
	logger logger.ILogger
}

func NewThemeExtractor(seed int64, log logger.ILogger) *ThemeExtractor {
	return &ThemeExtractor{seed: seed, logger: log}
}

// Apply clusters the workspace's embedded chunks into k themes and replaces the
// workspace's theme insights. With no embedded chunks nothing changes. It
// returns the number of themes written.
func (x *ThemeExtractor) Apply(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId uuid.UUID, k int) (int, error) {
	chunks, err := uow.ChunkRepository().FindEmbeddedByWorkspace(ctx, workspaceId)
	if err != nil {
		return 0, fmt.Errorf("load embedded chunks: %w", err)
	}
	if len(chunks) == 0 {
		x.logger.Info("THEMES", "No embedded chunks, skipping theme extraction", map[string]interface{}{"workspace_id": workspaceId.String()})
		return 0, nil
	}

	if k <= 0 {
		k = DefaultThemeCount
	}
	if len(chunks) < k {
		k = len(chunks)
	}

	points := make([][]float32, len(chunks))
	for i, c := range chunks {
		points[i] = c.Embedding
	}
	result, err := cluster.KMeans(points, k, x.seed)
	if err != nil {
		return 0, fmt.Errorf("cluster chunks: %w", err)
	}

	groups := make([][]*entity.Chunk, k)
	for i, label := range result.Labels {
		groups[label] = append(groups[label], chunks[i])
	}

	if err := uow.InsightRepository().DeleteByWorkspaceAndKinds(ctx, workspaceId, entity.InsightKindTheme); err != nil {
		return 0, fmt.Errorf("clear previous themes: %w", err)
	}

	var insights []*entity.Insight
	for label, members := range groups {
		if len(members) == 0 {
			continue
		}
		metrics, err := EncodeMetrics(ThemeMetrics{Count: len(members)})
		if err != nil {
			return 0, err
		}
		insights = append(insights, &entity.Insight{
			Id:          uuid.New(),
			WorkspaceId: workspaceId,
			Kind:        entity.InsightKindTheme,
			Title:       themeTitle(members, label),
			Summary:     fmt.Sprintf("Cluster containing %d text segments.", len(members)),
			Evidence:    evidence(members),
			Metrics:     metrics,
		})
	}

	if err := uow.InsightRepository().CreateBulk(ctx, insights); err != nil {
		return 0, fmt.Errorf("save themes: %w", err)
	}

	x.logger.Info("THEMES", "Themes extracted", map[string]interface{}{
		"workspace_id": workspaceId.String(),
		"chunks":       len(chunks),
		"themes":       len(insights),
	})
	return len(insights), nil
}

func themeTitle(members []*entity.Chunk, label int) string {
	texts := make([]string, len(members))
	for i, c := range members {
		texts[i] = c.Text
	}
	terms := cluster.TopTerms(texts, titleTerms)
	if len(terms) == 0 {
		return fmt.Sprintf("Theme %d", label+1)
	}
	return cluster.TitleCase(strings.Join(terms, ", "))
}

// evidence keeps the longest chunks; equal lengths keep their load order.
func evidence(members []*entity.Chunk) []entity.InsightEvidence {
	sorted := make([]*entity.Chunk, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Text) > utf8.RuneCountInString(sorted[j].Text)
	})
	if len(sorted) > maxEvidence {
		sorted = sorted[:maxEvidence]
	}

	out := make([]entity.InsightEvidence, len(sorted))
	for i, c := range sorted {
		out[i] = entity.InsightEvidence{Text: c.Text, ChunkId: c.Id}
	}
	return out
}
