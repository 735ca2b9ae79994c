package analytics

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/sentiment"

	"github.com/google/uuid"
)

const UnknownBrand = "Unknown"

// DefaultClaims is the claim vocabulary scanned for in every document.
var DefaultClaims = []string{
	"whitening", "sensitivity", "enamel", "fresh breath",
	"fluoride-free", "natural", "cavity protection",
	"gum health", "plaque", "charcoal",
}

// SummaryKinds are the insight kinds owned by the engine; each run replaces them.
var SummaryKinds = []string{entity.InsightKindStats, entity.InsightKindClaims, entity.InsightKindTrends}

type Engine struct {
	analyzer *sentiment.Analyzer
	claims   []string
	logger   logger.ILogger
}

// NewEngine uses DefaultClaims when claims is empty.
func NewEngine(analyzer *sentiment.Analyzer, claims []string, log logger.ILogger) *Engine {
	if len(claims) == 0 {
		claims = DefaultClaims
	}
	normalized := make([]string, len(claims))
	for i, c := range claims {
		normalized[i] = strings.ToLower(c)
	}
	return &Engine{analyzer: analyzer, claims: normalized, logger: log}
}

type brandAccumulator struct {
	totalDocs  int
	sentiments []float64
	ratings    []float64
	claims     map[string]int
}

// Apply recomputes the workspace's stats, claims and trends insights inside uow.
// A workspace without documents is left untouched and Apply reports false.
func (e *Engine) Apply(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId uuid.UUID) (bool, error) {
	docs, err := uow.DocumentRepository().FindByWorkspace(ctx, workspaceId)
	if err != nil {
		return false, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		e.logger.Info("ANALYTICS", "No documents, skipping analytics", map[string]interface{}{"workspace_id": workspaceId.String()})
		return false, nil
	}

	texts, err := documentTexts(ctx, uow, workspaceId)
	if err != nil {
		return false, err
	}

	var (
		distribution SentimentDistribution
		scores       []float64
		claimCounts  = map[string]int{}
		trends       = map[string]map[string][]float64{}
		brands       = map[string]*brandAccumulator{}
	)

	for _, doc := range docs {
		brand := doc.MetaString("brand")
		if brand == "" {
			brand = UnknownBrand
		}
		acc, ok := brands[brand]
		if !ok {
			acc = &brandAccumulator{claims: map[string]int{}}
			brands[brand] = acc
		}
		acc.totalDocs++

		text := texts[doc.Id]
		if text == "" {
			continue
		}

		compound := e.analyzer.Compound(text)
		scores = append(scores, compound)
		acc.sentiments = append(acc.sentiments, compound)
		switch sentiment.Label(compound) {
		case sentiment.LabelPositive:
			distribution.Positive++
		case sentiment.LabelNegative:
			distribution.Negative++
		default:
			distribution.Neutral++
		}

		lower := strings.ToLower(text)
		for _, claim := range e.claims {
			if strings.Contains(lower, claim) {
				claimCounts[claim]++
				acc.claims[claim]++
			}
		}

		month, rating, ok := ratingPoint(doc)
		if !ok {
			continue
		}
		if trends[brand] == nil {
			trends[brand] = map[string][]float64{}
		}
		trends[brand][month] = append(trends[brand][month], rating)
		acc.ratings = append(acc.ratings, rating)
	}

	stats := StatsMetrics{
		TotalDocuments:        len(docs),
		SentimentDistribution: distribution,
		AverageSentiment:      round(mean(scores), 3),
		BrandsSummary:         make(map[string]BrandSummary, len(brands)),
	}
	for brand, acc := range brands {
		stats.BrandsSummary[brand] = BrandSummary{
			TotalDocs:       acc.totalDocs,
			AvgSentiment:    round(mean(acc.sentiments), 3),
			AvgRating:       round(mean(acc.ratings), 2),
			TopClaim:        e.topClaim(acc.claims),
			ClaimsBreakdown: acc.claims,
		}
	}

	trendMetrics := TrendsMetrics{}
	for brand, months := range trends {
		trendMetrics[brand] = make(map[string]float64, len(months))
		for month, ratings := range months {
			trendMetrics[brand][month] = round(mean(ratings), 2)
		}
	}

	insights, err := e.buildInsights(workspaceId, stats, ClaimsMetrics(claimCounts), trendMetrics)
	if err != nil {
		return false, err
	}

	if err := uow.InsightRepository().DeleteByWorkspaceAndKinds(ctx, workspaceId, SummaryKinds...); err != nil {
		return false, fmt.Errorf("clear previous insights: %w", err)
	}
	if err := uow.InsightRepository().CreateBulk(ctx, insights); err != nil {
		return false, fmt.Errorf("save insights: %w", err)
	}

	e.logger.Info("ANALYTICS", "Workspace analytics computed", map[string]interface{}{
		"workspace_id": workspaceId.String(),
		"documents":    len(docs),
		"claims":       len(claimCounts),
		"brands":       len(brands),
	})
	return true, nil
}

func (e *Engine) buildInsights(workspaceId uuid.UUID, stats StatsMetrics, claims ClaimsMetrics, trends TrendsMetrics) ([]*entity.Insight, error) {
	statsMap, err := EncodeMetrics(stats)
	if err != nil {
		return nil, err
	}
	claimsMap, err := EncodeMetrics(claims)
	if err != nil {
		return nil, err
	}
	trendsMap, err := EncodeMetrics(trends)
	if err != nil {
		return nil, err
	}

	return []*entity.Insight{
		{
			Id:          uuid.New(),
			WorkspaceId: workspaceId,
			Kind:        entity.InsightKindStats,
			Title:       "General Statistics",
			Summary:     fmt.Sprintf("Processed %d documents. Sentiment mostly %s.", stats.TotalDocuments, dominantSentiment(stats.SentimentDistribution)),
			Metrics:     statsMap,
		},
		{
			Id:          uuid.New(),
			WorkspaceId: workspaceId,
			Kind:        entity.InsightKindClaims,
			Title:       "Claims Frequency",
			Summary:     fmt.Sprintf("Found mentions of %d distinct claims.", len(claims)),
			Metrics:     claimsMap,
		},
		{
			Id:          uuid.New(),
			WorkspaceId: workspaceId,
			Kind:        entity.InsightKindTrends,
			Title:       "Ratings Trends",
			Summary:     "Average ratings over time by brand.",
			Metrics:     trendsMap,
		},
	}, nil
}

// topClaim picks the most frequent claim; ties go to the earlier vocabulary entry.
func (e *Engine) topClaim(counts map[string]int) string {
	best, bestCount := "None", 0
	for _, claim := range e.claims {
		if c := counts[claim]; c > bestCount {
			best, bestCount = claim, c
		}
	}
	return best
}

// documentTexts joins each document's chunks in chunk order. Chunks are loaded
// through the workspace join so the query size does not grow with the
// document count.
func documentTexts(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId uuid.UUID) (map[uuid.UUID]string, error) {
	chunks, err := uow.ChunkRepository().FindByWorkspace(ctx, workspaceId)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	parts := make(map[uuid.UUID][]string)
	for _, c := range chunks {
		parts[c.DocumentId] = append(parts[c.DocumentId], c.Text)
	}
	texts := make(map[uuid.UUID]string, len(parts))
	for id, p := range parts {
		texts[id] = strings.Join(p, " ")
	}
	return texts, nil
}

// ratingPoint extracts (month, rating) from review metadata. A missing, zero or
// unparsable rating, or a date that does not start with YYYY-MM, yields ok=false.
func ratingPoint(doc *entity.Document) (string, float64, bool) {
	date := doc.MetaString("date")
	if date == "" {
		return "", 0, false
	}
	rating, ok := doc.MetaFloat("rating")
	if !ok || rating == 0 {
		return "", 0, false
	}
	if len(date) < 7 {
		return "", 0, false
	}
	month := date[:7]
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", 0, false
	}
	return month, rating, true
}

func dominantSentiment(d SentimentDistribution) string {
	label, best := "unknown", 0
	for _, c := range []struct {
		label string
		count int
	}{
		{sentiment.LabelPositive, d.Positive},
		{sentiment.LabelNeutral, d.Neutral},
		{sentiment.LabelNegative, d.Negative},
	} {
		if c.count > best {
			label, best = c.label, c.count
		}
	}
	return label
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
