package recorder

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"StockPredict/internal/model"
)

// MemoryStore keeps analyses in a map keyed by ticker. Used when SQLite is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]model.StockAnalysis
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]model.StockAnalysis), now: time.Now}
}

func (m *MemoryStore) SaveAnalysis(_ context.Context, a *model.InsertStockAnalysis) (*model.StockAnalysis, error) {
	saved := model.StockAnalysis{
		ID:                  uuid.NewString(),
		InsertStockAnalysis: *a,
		CreatedAt:           m.now(),
	}
	m.mu.Lock()
	m.analyses[a.Ticker] = saved
	m.mu.Unlock()
	return &saved, nil
}

func (m *MemoryStore) GetAnalysis(_ context.Context, ticker string) (*model.StockAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.analyses[ticker]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemoryStore) RecentAnalyses(_ context.Context, limit int) ([]model.StockAnalysis, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	m.mu.RLock()
	out := make([]model.StockAnalysis, 0, len(m.analyses))
	for _, a := range m.analyses {
		out = append(out, a)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
