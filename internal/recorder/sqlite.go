package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"StockPredict/internal/model"
)

// SQLiteStore persists analyses to a SQLite database, one row per ticker.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_analyses (
			id                    TEXT PRIMARY KEY,
			ticker                TEXT NOT NULL UNIQUE,
			prediction_percentage REAL NOT NULL,
			confidence_level      INTEGER NOT NULL,
			base_decline          REAL NOT NULL,
			sentiment_score       REAL NOT NULL,
			sentiment_impact      REAL NOT NULL,
			volume_impact         REAL NOT NULL,
			technical_impact      REAL NOT NULL,
			market_correlation    REAL NOT NULL,
			current_price         REAL NOT NULL,
			daily_change          REAL NOT NULL,
			volume                TEXT NOT NULL,
			market_cap            TEXT NOT NULL,
			rsi_value             REAL NOT NULL,
			news_articles         TEXT NOT NULL,
			created_at            INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON stock_analyses(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

const selectColumns = `id, ticker, prediction_percentage, confidence_level, base_decline,
	sentiment_score, sentiment_impact, volume_impact, technical_impact, market_correlation,
	current_price, daily_change, volume, market_cap, rsi_value, news_articles, created_at`

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, a *model.InsertStockAnalysis) (*model.StockAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	news := a.NewsArticles
	if news == nil {
		news = []model.NewsArticle{}
	}
	newsJSON, err := json.Marshal(news)
	if err != nil {
		return nil, fmt.Errorf("marshal news: %w", err)
	}

	saved := &model.StockAnalysis{
		ID:                  uuid.NewString(),
		InsertStockAnalysis: *a,
		// stored at millisecond precision
		CreatedAt: time.UnixMilli(s.now().UnixMilli()),
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO stock_analyses (`+selectColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(ticker) DO UPDATE SET
			id = excluded.id,
			prediction_percentage = excluded.prediction_percentage,
			confidence_level = excluded.confidence_level,
			base_decline = excluded.base_decline,
			sentiment_score = excluded.sentiment_score,
			sentiment_impact = excluded.sentiment_impact,
			volume_impact = excluded.volume_impact,
			technical_impact = excluded.technical_impact,
			market_correlation = excluded.market_correlation,
			current_price = excluded.current_price,
			daily_change = excluded.daily_change,
			volume = excluded.volume,
			market_cap = excluded.market_cap,
			rsi_value = excluded.rsi_value,
			news_articles = excluded.news_articles,
			created_at = excluded.created_at`,
		saved.ID, a.Ticker, a.PredictionPercentage, a.ConfidenceLevel, a.BaseDecline,
		a.SentimentScore, a.SentimentImpact, a.VolumeImpact, a.TechnicalImpact, a.MarketCorrelation,
		a.CurrentPrice, a.DailyChange, a.Volume, a.MarketCap, a.RSIValue, string(newsJSON),
		saved.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert analysis: %w", err)
	}
	return saved, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*model.StockAnalysis, error) {
	var (
		a         model.StockAnalysis
		newsJSON  string
		createdAt int64
	)
	err := row.Scan(&a.ID, &a.Ticker, &a.PredictionPercentage, &a.ConfidenceLevel, &a.BaseDecline,
		&a.SentimentScore, &a.SentimentImpact, &a.VolumeImpact, &a.TechnicalImpact, &a.MarketCorrelation,
		&a.CurrentPrice, &a.DailyChange, &a.Volume, &a.MarketCap, &a.RSIValue, &newsJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(newsJSON), &a.NewsArticles); err != nil {
		return nil, fmt.Errorf("decode news for %s: %w", a.Ticker, err)
	}
	a.CreatedAt = time.UnixMilli(createdAt)
	return &a, nil
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, ticker string) (*model.StockAnalysis, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM stock_analyses WHERE ticker = ?`, ticker)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %s: %w", ticker, err)
	}
	return a, nil
}

func (s *SQLiteStore) RecentAnalyses(ctx context.Context, limit int) ([]model.StockAnalysis, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM stock_analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent analyses: %w", err)
	}
	defer rows.Close()

	var out []model.StockAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
