package sentiment

import (
	"math"
	"testing"
	"time"

	"StockPredict/internal/model"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func article(source string, hoursAgo, sentiment float64) model.NewsArticle {
	return model.NewsArticle{
		Title:       "headline",
		Source:      source,
		PublishedAt: now.Add(-time.Duration(hoursAgo * float64(time.Hour))),
		Sentiment:   sentiment,
	}
}

func TestCalculateScore_Empty(t *testing.T) {
	if got := CalculateScore(nil, now); got != 0 {
		t.Errorf("expected 0 for no articles, got %.4f", got)
	}
}

func TestCalculateScore_SingleArticle(t *testing.T) {
	tests := []model.NewsArticle{
		article("Reuters", 3, -7.5),
		article("Unknown Blog", 100, 4.2),
		article("CNBC", 0, 9.9),
	}
	for _, a := range tests {
		got := CalculateScore([]model.NewsArticle{a}, now)
		if math.Abs(got-a.Sentiment) > 1e-9 {
			t.Errorf("%s: expected %.2f, got %.6f", a.Source, a.Sentiment, got)
		}
	}
}

func TestCalculateScore_WeightedAverage(t *testing.T) {
	// Reuters fresh (weight 1.0 * 1.0) and an unknown outlet 24h old (0.5 * 0.7).
	articles := []model.NewsArticle{
		article("Reuters", 0, -6),
		article("Some Blog", 24, 4),
	}
	want := (-6*1.0 + 4*0.35) / (1.0 + 0.35)
	got := CalculateScore(articles, now)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %.6f, got %.6f", want, got)
	}
}

func TestRecencyWeight_Floor(t *testing.T) {
	tests := []struct {
		hoursAgo float64
		want     float64
	}{
		{0, 1},
		{12, 0.75},
		{43.2, 0.1},
		{48, 0.1},
		{500, 0.1},
	}
	for _, tt := range tests {
		got := RecencyWeight(now.Add(-time.Duration(tt.hoursAgo*float64(time.Hour))), now)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%.1fh: expected %.4f, got %.4f", tt.hoursAgo, tt.want, got)
		}
	}
}

func TestSourceWeight(t *testing.T) {
	tests := map[string]float64{
		"Reuters":       1.0,
		"MarketWatch":   0.9,
		"Yahoo Finance": 0.8,
		"reuters":       DefaultSourceWeight,
		"":              DefaultSourceWeight,
	}
	for source, want := range tests {
		if got := SourceWeight(source); got != want {
			t.Errorf("%q: expected %.2f, got %.2f", source, want, got)
		}
	}
}

func TestLexiconScorer(t *testing.T) {
	l := NewLexiconScorer()
	tests := []struct {
		text string
		want float64
	}{
		{"Company holds annual meeting", 0},
		{"Shares surge after strong earnings beat", 10},
		{"Analysts downgrade stock on weak guidance and regulatory probe", -10},
		{"Stock drops", -10.0 / 3},
		{"Profit rebound offsets lawsuit concerns", 0},
	}
	for _, tt := range tests {
		got := l.Score(tt.text)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%q: expected %.3f, got %.3f", tt.text, tt.want, got)
		}
		if got < -MaxScore || got > MaxScore {
			t.Errorf("%q: score %.3f out of range", tt.text, got)
		}
	}
}
