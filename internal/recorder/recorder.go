package recorder

import (
	"context"
	"errors"

	"StockPredict/internal/model"
)

// DefaultRecentLimit is how many analyses RecentAnalyses returns when limit <= 0.
const DefaultRecentLimit = 10

// ErrNotFound is returned when no analysis exists for a ticker.
var ErrNotFound = errors.New("analysis not found")

// Store persists the latest analysis per ticker. Saving an analysis for a
// ticker that already has one replaces it.
type Store interface {
	SaveAnalysis(ctx context.Context, a *model.InsertStockAnalysis) (*model.StockAnalysis, error)
	GetAnalysis(ctx context.Context, ticker string) (*model.StockAnalysis, error)
	RecentAnalyses(ctx context.Context, limit int) ([]model.StockAnalysis, error)
	Close() error
}
