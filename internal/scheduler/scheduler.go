package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"StockPredict/internal/model"
	"StockPredict/internal/notifier"
	"StockPredict/internal/recorder"
)

const sendRetries = 3

// Analyzer produces a fresh analysis for a ticker.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string, analysisType model.AnalysisType) (*model.InsertStockAnalysis, error)
}

// Scheduler manages all cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Store     recorder.Store
	Notifier  notifier.Notifier
	Watchlist []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Notifier may be nil.
func NewScheduler(ctx context.Context, analyzer Analyzer, store recorder.Store, n notifier.Notifier, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))),
		),
		Analyzer:  analyzer,
		Store:     store,
		Notifier:  n,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// RegisterAll registers the watchlist refresh and the daily digest.
func (s *Scheduler) RegisterAll(refreshCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("[INFO] scheduler started, watchlist: %s", strings.Join(s.Watchlist, ","))
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the watchlist refresh immediately (for RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Printf("[INFO] refreshing %d watchlist tickers", len(s.Watchlist))
	failed := 0
	for _, ticker := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		saved, err := s.analyzeAndSave(s.Ctx, ticker)
		if err != nil {
			log.Printf("[ERROR] refresh %s: %v", ticker, err)
			failed++
			continue
		}
		s.trySend(notifier.FormatAnalysisReport(saved))
	}
	if failed > 0 {
		s.trySend(fmt.Sprintf("❌ Watchlist refresh: %d/%d tickers failed", failed, len(s.Watchlist)))
	}
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running daily digest")
	analyses, err := s.Store.RecentAnalyses(s.Ctx, recorder.DefaultRecentLimit)
	if err != nil {
		log.Printf("[ERROR] digest: %v", err)
		return
	}
	s.trySend(notifier.FormatRecentDigest(analyses))
}

func (s *Scheduler) analyzeAndSave(ctx context.Context, ticker string) (*model.StockAnalysis, error) {
	fresh, err := s.Analyzer.Analyze(ctx, ticker, model.AnalysisStandard)
	if err != nil {
		return nil, err
	}
	saved, err := s.Store.SaveAnalysis(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return saved, nil
}

// HandleCommand processes a chat command and returns the reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string, args []string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] command %s %v panicked: %v", command, args, r)
			reply = "❌ Internal error, please try again later"
		}
	}()

	switch command {
	case "/analyze":
		if len(args) == 0 {
			return "Usage: /analyze TICKER"
		}
		ticker := strings.ToUpper(args[0])
		if !model.ValidTicker(ticker) {
			return fmt.Sprintf("Invalid ticker %q: use 1-10 letters", args[0])
		}
		saved, err := s.analyzeAndSave(ctx, ticker)
		if err != nil {
			log.Printf("[ERROR] /analyze %s: %v", ticker, err)
			return fmt.Sprintf("❌ Analysis of %s failed: %v", ticker, err)
		}
		return notifier.FormatAnalysisReport(saved)
	case "/recent":
		analyses, err := s.Store.RecentAnalyses(ctx, recorder.DefaultRecentLimit)
		if err != nil {
			log.Printf("[ERROR] /recent: %v", err)
			return "❌ Failed to fetch recent analyses"
		}
		return notifier.FormatRecentDigest(analyses)
	default:
		return "Available commands:\n• /analyze TICKER\n• /recent"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
