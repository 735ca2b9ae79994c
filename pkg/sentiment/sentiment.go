package sentiment

import (
	"github.com/jonreiter/govader"
)

const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Analyzer scores review text with VADER. The lexicon is loaded once in
// NewAnalyzer; scoring only reads it and is safe for concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound polarity in [-1, 1]. Text without
// sentiment words scores 0.
func (a *Analyzer) Compound(text string) float64 {
	if text == "" {
		return 0
	}
	return a.vader.PolarityScores(text).Compound
}

// Label buckets a compound score at the ±0.05 thresholds.
func Label(compound float64) string {
	switch {
	case compound >= 0.05:
		return LabelPositive
	case compound <= -0.05:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
