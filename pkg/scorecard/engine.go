package scorecard

import (
	"context"
	"fmt"
	"math"
	"strings"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/sentiment"

	"github.com/google/uuid"
)

const (
	UnknownBrand = "Unknown"
	NeutralScore = 50.0
)

type Engine struct {
	analyzer *sentiment.Analyzer
	logger   logger.ILogger
}

func NewEngine(analyzer *sentiment.Analyzer, log logger.ILogger) *Engine {
	return &Engine{analyzer: analyzer, logger: log}
}

// BrandScore is one brand's result against a factor list.
type BrandScore struct {
	Overall float64
	Factors map[string]float64
}

// Score rates the given chunk texts against each factor. A factor with no
// matching text scores NeutralScore; otherwise the compound sentiment of the
// matching texts is mapped from [-1, 1] onto [0, 100]. Factor scores are
// rounded to one decimal; overall is the weight-normalised mean of the
// unrounded scores, or 0 when the weights sum to 0.
func (e *Engine) Score(texts []string, factors []entity.ScorecardFactor) BrandScore {
	lowered := make([]string, len(texts))
	for i, t := range texts {
		lowered[i] = strings.ToLower(t)
	}

	scores := make(map[string]float64, len(factors))
	totalWeighted, totalWeight := 0.0, 0.0
	for _, factor := range factors {
		keywords := make([]string, len(factor.Keywords))
		for i, k := range factor.Keywords {
			keywords[i] = strings.ToLower(k)
		}

		var relevant []string
		for i, text := range lowered {
			if containsAny(text, keywords) {
				relevant = append(relevant, texts[i])
			}
		}

		score := NeutralScore
		if len(relevant) > 0 {
			compound := e.analyzer.Compound(strings.Join(relevant, " "))
			score = (compound + 1) * 50
		}

		scores[factor.Name] = round1(score)
		totalWeighted += score * factor.Weight
		totalWeight += factor.Weight
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = totalWeighted / totalWeight
	}
	return BrandScore{Overall: round1(overall), Factors: scores}
}

// Apply recomputes every brand's result for the scorecard inside uow. A missing
// scorecard or one without factors is a no-op. It returns the number of
// results written.
func (e *Engine) Apply(ctx context.Context, uow unitofwork.UnitOfWork, scorecardId uuid.UUID) (int, error) {
	sc, err := uow.ScorecardRepository().FindByID(ctx, scorecardId)
	if err != nil {
		return 0, fmt.Errorf("load scorecard: %w", err)
	}
	if sc == nil {
		e.logger.Warn("SCORECARD", "Scorecard not found", map[string]interface{}{"scorecard_id": scorecardId.String()})
		return 0, nil
	}
	if len(sc.Factors) == 0 {
		e.logger.Info("SCORECARD", "Scorecard has no factors, skipping", map[string]interface{}{"scorecard_id": scorecardId.String()})
		return 0, nil
	}

	docs, err := uow.DocumentRepository().FindByWorkspace(ctx, sc.WorkspaceId)
	if err != nil {
		return 0, fmt.Errorf("load documents: %w", err)
	}

	var brands []string
	brandOf := make(map[uuid.UUID]string, len(docs))
	seen := map[string]bool{}
	for _, doc := range docs {
		brand := doc.MetaString("brand")
		if brand == "" {
			brand = UnknownBrand
		}
		if !seen[brand] {
			seen[brand] = true
			brands = append(brands, brand)
		}
		brandOf[doc.Id] = brand
	}

	chunks, err := uow.ChunkRepository().FindByWorkspace(ctx, sc.WorkspaceId)
	if err != nil {
		return 0, fmt.Errorf("load chunks: %w", err)
	}
	textsByBrand := make(map[string][]string, len(brands))
	for _, c := range chunks {
		if brand, ok := brandOf[c.DocumentId]; ok {
			textsByBrand[brand] = append(textsByBrand[brand], c.Text)
		}
	}

	if err := uow.ScorecardResultRepository().DeleteByScorecard(ctx, sc.Id); err != nil {
		return 0, fmt.Errorf("clear previous results: %w", err)
	}

	results := make([]*entity.ScorecardResult, 0, len(brands))
	for _, brand := range brands {
		score := e.Score(textsByBrand[brand], sc.Factors)
		results = append(results, &entity.ScorecardResult{
			Id:          uuid.New(),
			ScorecardId: sc.Id,
			Brand:       brand,
			Overall:     score.Overall,
			Factors:     score.Factors,
		})
	}

	if err := uow.ScorecardResultRepository().CreateBulk(ctx, results); err != nil {
		return 0, fmt.Errorf("save results: %w", err)
	}

	e.logger.Info("SCORECARD", "Scorecard calculated", map[string]interface{}{
		"scorecard_id": sc.Id.String(),
		"brands":       len(results),
	})
	return len(results), nil
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
