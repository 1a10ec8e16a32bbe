package strategy

import (
	"math"

	"StockPredict/internal/calculator"
	"StockPredict/internal/model"
)

const (
	baseConfidence = 50
	minConfidence  = 10
	maxConfidence  = 95

	volatilityWindow = 10
)

// CalculateConfidenceLevel returns a rule-based reliability estimate in [10, 95].
// It is not a probability: each rule adds or removes a fixed number of points
// depending on data depth, news coverage and how decisive the indicators are.
func CalculateConfidenceLevel(series model.PriceSeries, newsCount int, snap model.TechnicalSnapshot) int {
	confidence := float64(baseConfidence)

	switch {
	case series.Len() >= 20:
		confidence += 20
	case series.Len() >= 10:
		confidence += 10
	}

	switch {
	case newsCount >= 5:
		confidence += 15
	case newsCount >= 3:
		confidence += 10
	case newsCount >= 1:
		confidence += 5
	}

	if snap.RSI < 30 || snap.RSI > 70 {
		confidence += 10
	}
	if snap.Position != model.PositionMiddle {
		confidence += 5
	}
	if math.Abs(snap.VolumeAnomaly) > 0.2 {
		confidence += 5
	}

	volatility := calculator.CalculateVolatility(calculator.TrailingChanges(series, volatilityWindow))
	switch {
	case volatility > 0.05:
		confidence -= 15
	case volatility > 0.03:
		confidence -= 10
	}

	return int(math.Max(minConfidence, math.Min(maxConfidence, math.Round(confidence))))
}
