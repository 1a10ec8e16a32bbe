package model

import "time"

// AnalysisType selects the depth of an analysis request.
type AnalysisType string

const (
	AnalysisStandard      AnalysisType = "standard"
	AnalysisComprehensive AnalysisType = "comprehensive"
	AnalysisQuick         AnalysisType = "quick"
)

// Valid reports whether t is one of the known analysis types.
func (t AnalysisType) Valid() bool {
	switch t {
	case AnalysisStandard, AnalysisComprehensive, AnalysisQuick:
		return true
	}
	return false
}

// FactorScore represents a single prediction component.
type FactorScore struct {
	Name       string
	RawScore   float64
	Weight     float64
	Weighted   float64
	Commentary string
}

// PredictionBreakdown is the decomposed weekly decline prediction.
// WeeklyDecline is the sum of the components; all fields are rounded to 2dp.
type PredictionBreakdown struct {
	WeeklyDecline     float64
	BaseDecline       float64
	SentimentImpact   float64
	VolumeImpact      float64
	TechnicalImpact   float64
	MarketCorrelation float64
	Factors           []FactorScore
}

// InsertStockAnalysis is a freshly computed analysis, before storage assigns an id.
type InsertStockAnalysis struct {
	Ticker               string        `json:"ticker"`
	PredictionPercentage float64       `json:"predictionPercentage"`
	ConfidenceLevel      int           `json:"confidenceLevel"`
	BaseDecline          float64       `json:"baseDecline"`
	SentimentScore       float64       `json:"sentimentScore"`
	SentimentImpact      float64       `json:"sentimentImpact"`
	VolumeImpact         float64       `json:"volumeImpact"`
	TechnicalImpact      float64       `json:"technicalImpact"`
	MarketCorrelation    float64       `json:"marketCorrelation"`
	CurrentPrice         float64       `json:"currentPrice"`
	DailyChange          float64       `json:"dailyChange"`
	Volume               string        `json:"volume"`
	MarketCap            string        `json:"marketCap"`
	RSIValue             float64       `json:"rsiValue"`
	NewsArticles         []NewsArticle `json:"newsArticles"`
}

// StockAnalysis is a stored analysis.
type StockAnalysis struct {
	ID string `json:"id"`
	InsertStockAnalysis
	CreatedAt time.Time `json:"createdAt"`
}
