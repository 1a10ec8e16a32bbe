package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"StockPredict/internal/calculator"
	"StockPredict/internal/collector"
	"StockPredict/internal/model"
	"StockPredict/internal/news"
	"StockPredict/internal/notifier"
	"StockPredict/internal/sentiment"
	"StockPredict/internal/strategy"
)

// Analyzer runs the full pipeline for one ticker: market data, indicators,
// news sentiment, prediction and confidence.
type Analyzer struct {
	Collector *collector.Collector
	News      news.Source
	Now       func() time.Time
}

// NewAnalyzer creates an Analyzer on the wall clock.
func NewAnalyzer(col *collector.Collector, src news.Source) *Analyzer {
	return &Analyzer{Collector: col, News: src, Now: time.Now}
}

// Analyze produces a fresh analysis for ticker. Only market data failures are
// returned; missing news degrades to a neutral sentiment.
func (a *Analyzer) Analyze(ctx context.Context, ticker string, analysisType model.AnalysisType) (*model.InsertStockAnalysis, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if analysisType == "" {
		analysisType = model.AnalysisStandard
	}
	log.Printf("[INFO] analyzing %s (%s)", ticker, analysisType)

	stock, err := a.Collector.Collect(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", ticker, err)
	}

	snap := calculator.BuildSnapshot(stock)

	articles, err := a.News.FetchNews(ctx, ticker)
	if err != nil {
		log.Printf("[WARN] %s news from %s unavailable: %v, continuing without news", ticker, a.News.Name(), err)
		articles = []model.NewsArticle{}
	}

	score := sentiment.CalculateScore(articles, a.Now())
	pred := strategy.GeneratePrediction(stock.History, snap, score)
	confidence := strategy.CalculateConfidenceLevel(stock.History, len(articles), snap)

	log.Printf("[INFO] %s prediction %+.2f%% confidence %d%% (rsi=%.1f sentiment=%.2f news=%d, data as of %s)\n%s",
		ticker, pred.WeeklyDecline, confidence, snap.RSI, score, len(articles),
		stock.FetchedAt.Format(time.RFC3339), notifier.FormatFactorBreakdown(pred.Factors))

	return &model.InsertStockAnalysis{
		Ticker:               ticker,
		PredictionPercentage: pred.WeeklyDecline,
		ConfidenceLevel:      confidence,
		BaseDecline:          pred.BaseDecline,
		SentimentScore:       score,
		SentimentImpact:      pred.SentimentImpact,
		VolumeImpact:         pred.VolumeImpact,
		TechnicalImpact:      pred.TechnicalImpact,
		MarketCorrelation:    pred.MarketCorrelation,
		CurrentPrice:         stock.Price,
		DailyChange:          stock.ChangePercent,
		Volume:               notifier.FormatVolume(stock.Volume),
		MarketCap:            notifier.FormatMarketCap(stock.MarketCap),
		RSIValue:             snap.RSI,
		NewsArticles:         articles,
	}, nil
}
