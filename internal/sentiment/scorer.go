package sentiment

import (
	"math"
	"time"

	"StockPredict/internal/model"
)

const (
	// DefaultSourceWeight applies to any outlet missing from the credibility table.
	DefaultSourceWeight = 0.7

	// recencyHorizon is the age at which an article reaches the weight floor.
	recencyHorizon = 48 * time.Hour
	recencyFloor   = 0.1
)

// sourceWeights maps outlet names to credibility weights in [0.8, 1.0].
var sourceWeights = map[string]float64{
	"Reuters":             1.0,
	"Bloomberg":           1.0,
	"Financial Times":     1.0,
	"Wall Street Journal": 1.0,
	"MarketWatch":         0.9,
	"CNBC":                0.9,
	"Yahoo Finance":       0.8,
	"CNN Business":        0.8,
}

// SourceWeight returns the credibility weight for an outlet.
func SourceWeight(source string) float64 {
	if w, ok := sourceWeights[source]; ok {
		return w
	}
	return DefaultSourceWeight
}

// RecencyWeight decays linearly from 1 to 0.1 over 48 hours and stays at 0.1 after.
func RecencyWeight(publishedAt, now time.Time) float64 {
	hoursAgo := now.Sub(publishedAt).Hours()
	return math.Max(recencyFloor, 1-hoursAgo/recencyHorizon.Hours())
}

// CalculateScore returns the recency- and credibility-weighted average sentiment.
// An empty list scores 0.
func CalculateScore(articles []model.NewsArticle, now time.Time) float64 {
	if len(articles) == 0 {
		return 0
	}

	var weighted, total float64
	for _, a := range articles {
		w := RecencyWeight(a.PublishedAt, now) * SourceWeight(a.Source)
		weighted += a.Sentiment * w
		total += w
	}
	return weighted / total
}
