package analytics

import "encoding/json"

type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type BrandSummary struct {
	TotalDocs       int            `json:"total_docs"`
	AvgSentiment    float64        `json:"avg_sentiment"`
	AvgRating       float64        `json:"avg_rating"`
	TopClaim        string         `json:"top_claim"`
	ClaimsBreakdown map[string]int `json:"claims_breakdown"`
}

type StatsMetrics struct {
	TotalDocuments        int                     `json:"total_documents"`
	SentimentDistribution SentimentDistribution   `json:"sentiment_distribution"`
	AverageSentiment      float64                 `json:"average_sentiment"`
	BrandsSummary         map[string]BrandSummary `json:"brands_summary"`
}

// TrendsMetrics maps brand -> month (YYYY-MM) -> mean rating.
type TrendsMetrics map[string]map[string]float64

// ClaimsMetrics maps claim -> number of documents mentioning it.
type ClaimsMetrics map[string]int

type ThemeMetrics struct {
	Count int `json:"count"`
}

// EncodeMetrics flattens a typed metrics payload into the JSON object stored on an insight.
func EncodeMetrics(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeMetrics reads a stored metrics object back into a typed payload.
func DecodeMetrics(m map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
