package collector

import (
	"context"
	"errors"

	"StockPredict/internal/model"
)

var (
	// ErrSymbolNotFound means the data source does not know the ticker.
	ErrSymbolNotFound = errors.New("invalid stock symbol")
	// ErrUpstreamUnavailable covers rate limits and transport failures.
	ErrUpstreamUnavailable = errors.New("market data unavailable")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	// FetchDailyBars returns up to days bars in chronological order (oldest first).
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
