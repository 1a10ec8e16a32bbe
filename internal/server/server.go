package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"StockPredict/internal/collector"
	"StockPredict/internal/model"
	"StockPredict/internal/recorder"
)

// DefaultCacheTTL is how long a stored analysis is served before recomputing.
const DefaultCacheTTL = time.Hour

// Analyzer produces a fresh analysis for a ticker.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string, analysisType model.AnalysisType) (*model.InsertStockAnalysis, error)
}

type analyzeRequest struct {
	Ticker       string             `json:"ticker"`
	AnalysisType model.AnalysisType `json:"analysisType"`
}

// Server exposes the prediction API over HTTP.
type Server struct {
	Analyzer Analyzer
	Store    recorder.Store
	CacheTTL time.Duration
	Now      func() time.Time

	engine *gin.Engine
	http   *http.Server
}

// NewServer builds the gin engine and registers all routes.
func NewServer(analyzer Analyzer, store recorder.Store, cacheTTL time.Duration) *Server {
	gin.SetMode(gin.ReleaseMode)
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	s := &Server{
		Analyzer: analyzer,
		Store:    store,
		CacheTTL: cacheTTL,
		Now:      time.Now,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger(), cors())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.POST("/analyze", s.analyze)
	api.GET("/analyses/recent", s.recentAnalyses)
	api.GET("/analysis/:ticker", s.getAnalysis)
	api.GET("/health", s.health)
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[INFO] http server listening on %s", addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	log.Println("[INFO] http server shutting down")
	return s.http.Shutdown(ctx)
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidTicker(req.Ticker) {
		writeError(c, http.StatusBadRequest, "Ticker must be 1-10 uppercase letters")
		return
	}
	if req.AnalysisType == "" {
		req.AnalysisType = model.AnalysisStandard
	}
	if !req.AnalysisType.Valid() {
		writeError(c, http.StatusBadRequest, fmt.Sprintf("unknown analysisType %q", req.AnalysisType))
		return
	}

	ctx := c.Request.Context()
	existing, err := s.Store.GetAnalysis(ctx, req.Ticker)
	switch {
	case err == nil && s.Now().Sub(existing.CreatedAt) < s.CacheTTL:
		c.JSON(http.StatusOK, existing)
		return
	case err != nil && !errors.Is(err, recorder.ErrNotFound):
		log.Printf("[WARN] cache lookup %s: %v", req.Ticker, err)
	}

	fresh, err := s.Analyzer.Analyze(ctx, req.Ticker, req.AnalysisType)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", req.Ticker, err)
		switch {
		case errors.Is(err, collector.ErrSymbolNotFound):
			writeError(c, http.StatusBadRequest, fmt.Sprintf("Unknown ticker %s", req.Ticker))
		case errors.Is(err, collector.ErrUpstreamUnavailable):
			writeError(c, http.StatusServiceUnavailable, "Market data temporarily unavailable")
		default:
			writeError(c, http.StatusInternalServerError, "Analysis failed")
		}
		return
	}

	saved, err := s.Store.SaveAnalysis(ctx, fresh)
	if err != nil {
		log.Printf("[ERROR] save analysis %s: %v", req.Ticker, err)
		writeError(c, http.StatusInternalServerError, "Failed to save analysis")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) recentAnalyses(c *gin.Context) {
	analyses, err := s.Store.RecentAnalyses(c.Request.Context(), recorder.DefaultRecentLimit)
	if err != nil {
		log.Printf("[ERROR] recent analyses: %v", err)
		writeError(c, http.StatusInternalServerError, "Failed to fetch recent analyses")
		return
	}
	if analyses == nil {
		analyses = []model.StockAnalysis{}
	}
	c.JSON(http.StatusOK, analyses)
}

func (s *Server) getAnalysis(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))
	analysis, err := s.Store.GetAnalysis(c.Request.Context(), ticker)
	if errors.Is(err, recorder.ErrNotFound) {
		writeError(c, http.StatusNotFound, "Analysis not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] get analysis %s: %v", ticker, err)
		writeError(c, http.StatusInternalServerError, "Failed to fetch analysis")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": s.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
