package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"StockPredict/internal/calculator"
	"StockPredict/internal/model"
)

// HistoryDays is how many daily sessions feed the indicators.
const HistoryDays = 20

// marketCapVolumeMultiplier stands in for shares outstanding, which the quote APIs don't return.
const marketCapVolumeMultiplier = 100

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	Volume    float64
	DailyData []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, m.volume(), days), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &model.Quote{Symbol: symbol, Price: m.Price, Volume: m.volume()}, nil
}

func (m *MockFetcher) volume() float64 {
	if m.Volume == 0 {
		return 1000000
	}
	return m.Volume
}

func generateMockBars(basePrice, volume float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: volume,
		}
	}
	return bars
}

// Collector turns raw quotes and bars into StockData.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches the latest quote and daily history for symbol.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.StockData, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	quote, err := c.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) > HistoryDays {
		bars = bars[len(bars)-HistoryDays:]
	}

	history := model.SeriesFromBars(bars)
	stock := &model.StockData{
		Symbol:        symbol,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		Volume:        quote.Volume,
		MarketCap:     quote.Price * quote.Volume * marketCapVolumeMultiplier,
		History:       history,
		FetchedAt:     time.Now(),
	}

	if avg, err := calculator.CalculateAverageVolume(history); err != nil {
		log.Printf("[WARN] %s average volume unavailable: %v", symbol, err)
	} else {
		stock.AvgVolume = avg
	}

	if h, l, err := calculator.CalculatePriceRange(history); err != nil {
		log.Printf("[WARN] %s price range unavailable: %v, using current price", symbol, err)
		stock.High52Week = quote.Price
		stock.Low52Week = quote.Price
	} else {
		stock.High52Week = h
		stock.Low52Week = l
	}

	return stock, nil
}
