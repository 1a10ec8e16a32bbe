package news

import (
	"context"
	"fmt"
	"time"

	"StockPredict/internal/model"
)

// Source provides recent news for a ticker.
type Source interface {
	FetchNews(ctx context.Context, symbol string) ([]model.NewsArticle, error)
	Name() string
}

// MockSource returns a fixed set of realistic headlines timed relative to Now.
type MockSource struct {
	Now func() time.Time
}

// NewMockSource creates a MockSource on the wall clock.
func NewMockSource() *MockSource {
	return &MockSource{Now: time.Now}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchNews(_ context.Context, symbol string) ([]model.NewsArticle, error) {
	now := m.Now().UTC()
	ago := func(h int) time.Time { return now.Add(-time.Duration(h) * time.Hour) }

	return []model.NewsArticle{
		{
			Title:       fmt.Sprintf("%s Faces Supply Chain Disruptions", symbol),
			Source:      "Reuters",
			PublishedAt: ago(3),
			Sentiment:   -7.5,
			Summary:     "Manufacturing delays expected to impact Q4 earnings significantly...",
			URL:         "https://reuters.com/example",
		},
		{
			Title:       fmt.Sprintf("Regulatory Concerns Mount for %s", symbol),
			Source:      "MarketWatch",
			PublishedAt: ago(5),
			Sentiment:   -5.8,
			Summary:     "New legislation could impact revenue streams significantly...",
			URL:         "https://marketwatch.com/example",
		},
		{
			Title:       fmt.Sprintf("%s Announces Innovation Partnership", symbol),
			Source:      "Bloomberg",
			PublishedAt: ago(24),
			Sentiment:   4.2,
			Summary:     "Strategic partnership expected to enhance product capabilities...",
			URL:         "https://bloomberg.com/example",
		},
		{
			Title:       fmt.Sprintf("Analysts Downgrade %s Following Earnings Miss", symbol),
			Source:      "Yahoo Finance",
			PublishedAt: ago(6),
			Sentiment:   -6.3,
			Summary:     "Multiple investment firms lower price targets after disappointing quarterly results...",
			URL:         "https://finance.yahoo.com/example",
		},
		{
			Title:       fmt.Sprintf("%s Insider Trading Activity Raises Questions", symbol),
			Source:      "CNN Business",
			PublishedAt: ago(8),
			Sentiment:   -4.1,
			Summary:     "Unusual insider selling patterns detected in recent SEC filings...",
			URL:         "https://cnn.com/business/example",
		},
	}, nil
}
