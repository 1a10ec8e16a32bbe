package recorder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"StockPredict/internal/model"
)

func sampleAnalysis(ticker string, prediction float64) *model.InsertStockAnalysis {
	return &model.InsertStockAnalysis{
		Ticker:               ticker,
		PredictionPercentage: prediction,
		ConfidenceLevel:      70,
		BaseDecline:          -2,
		SentimentScore:       -4.25,
		SentimentImpact:      -0.85,
		VolumeImpact:         0.15,
		TechnicalImpact:      -0.1,
		MarketCorrelation:    0.07,
		CurrentPrice:         182.5,
		DailyChange:          -1.2,
		Volume:               "45.2M",
		MarketCap:            "$824.90B",
		RSIValue:             41.3,
		NewsArticles: []model.NewsArticle{{
			Title:       ticker + " Faces Supply Chain Disruptions",
			Source:      "Reuters",
			PublishedAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			Sentiment:   -7.5,
			Summary:     "Manufacturing delays",
		}},
	}
}

// steppingClock returns a clock that advances one minute per call.
func steppingClock() func() time.Time {
	t := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	sqlite.now = steppingClock()
	t.Cleanup(func() { sqlite.Close() })

	mem := NewMemoryStore()
	mem.now = steppingClock()

	return map[string]Store{"memory": mem, "sqlite": sqlite}
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			saved, err := store.SaveAnalysis(ctx, sampleAnalysis("AAPL", -1.93))
			if err != nil {
				t.Fatalf("save: %v", err)
			}
			if saved.ID == "" {
				t.Error("expected a generated id")
			}

			got, err := store.GetAnalysis(ctx, "AAPL")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.ID != saved.ID {
				t.Errorf("expected id %s, got %s", saved.ID, got.ID)
			}
			if got.PredictionPercentage != -1.93 || got.ConfidenceLevel != 70 || got.MarketCap != "$824.90B" {
				t.Errorf("unexpected round trip: %+v", got.InsertStockAnalysis)
			}
			if len(got.NewsArticles) != 1 || got.NewsArticles[0].Source != "Reuters" {
				t.Errorf("expected news to round trip, got %+v", got.NewsArticles)
			}
			if !got.CreatedAt.Equal(saved.CreatedAt) {
				t.Errorf("expected createdAt %v, got %v", saved.CreatedAt, got.CreatedAt)
			}
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetAnalysis(context.Background(), "NOPE")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_ReplacesPerTicker(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first, _ := store.SaveAnalysis(ctx, sampleAnalysis("TSLA", -1.5))
			second, err := store.SaveAnalysis(ctx, sampleAnalysis("TSLA", -3.2))
			if err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := store.GetAnalysis(ctx, "TSLA")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.ID != second.ID || got.ID == first.ID {
				t.Errorf("expected latest analysis %s, got %s", second.ID, got.ID)
			}
			if got.PredictionPercentage != -3.2 {
				t.Errorf("expected -3.2, got %.2f", got.PredictionPercentage)
			}

			recent, _ := store.RecentAnalyses(ctx, 10)
			if len(recent) != 1 {
				t.Errorf("expected one row per ticker, got %d", len(recent))
			}
		})
	}
}

func TestStore_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, ticker := range []string{"AAPL", "MSFT", "NVDA", "AMZN"} {
				if _, err := store.SaveAnalysis(ctx, sampleAnalysis(ticker, -1)); err != nil {
					t.Fatalf("save %s: %v", ticker, err)
				}
			}

			recent, err := store.RecentAnalyses(ctx, 3)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			want := []string{"AMZN", "NVDA", "MSFT"}
			if len(recent) != len(want) {
				t.Fatalf("expected %d analyses, got %d", len(want), len(recent))
			}
			for i, w := range want {
				if recent[i].Ticker != w {
					t.Errorf("position %d: expected %s, got %s", i, w, recent[i].Ticker)
				}
			}

			all, _ := store.RecentAnalyses(ctx, 0)
			if len(all) != 4 {
				t.Errorf("expected default limit to return all 4, got %d", len(all))
			}
		})
	}
}

func TestSQLiteStore_EmptyNewsStoredAsList(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	a := sampleAnalysis("IBM", -0.5)
	a.NewsArticles = nil
	if _, err := store.SaveAnalysis(context.Background(), a); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.GetAnalysis(context.Background(), "IBM")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.NewsArticles == nil || len(got.NewsArticles) != 0 {
		t.Errorf("expected empty non-nil news list, got %#v", got.NewsArticles)
	}
}
