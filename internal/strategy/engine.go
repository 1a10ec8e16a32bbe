package strategy

import (
	"math"

	"github.com/shopspring/decimal"

	"StockPredict/internal/model"
)

// GeneratePrediction combines trend, sentiment, volume, technical and market
// correlation components into a weekly decline prediction. Components are
// summed at full precision; rounding to 2dp only happens on the way out.
func GeneratePrediction(series model.PriceSeries, snap model.TechnicalSnapshot, sentimentScore float64) model.PredictionBreakdown {
	base := scoreBaseDecline(series)
	sent := scoreSentiment(sentimentScore)
	vol := scoreVolume(snap)
	tech := scoreTechnical(snap)
	corr := scoreMarketCorrelation(series)

	factors := []model.FactorScore{base, sent, vol, tech, corr}

	weekly := base.Weighted + sent.Weighted + vol.Weighted + tech.Weighted + corr.Weighted

	return model.PredictionBreakdown{
		WeeklyDecline:     round2(weekly),
		BaseDecline:       round2(base.Weighted),
		SentimentImpact:   round2(sent.Weighted),
		VolumeImpact:      round2(vol.Weighted),
		TechnicalImpact:   round2(tech.Weighted),
		MarketCorrelation: round2(corr.Weighted),
		Factors:           factors,
	}
}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// round2 rounds to 2dp with ties toward +Inf (-0.125 -> -0.12, 0.125 -> 0.13).
// Non-finite input rounds to 0.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Mul(hundred).Add(half).Floor().Div(hundred).InexactFloat64()
}
