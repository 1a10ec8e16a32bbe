package strategy

import (
	"fmt"
	"math"

	"StockPredict/internal/calculator"
	"StockPredict/internal/model"
)

const (
	weeklyWindow       = 5
	maxWeeklyWindows   = 5
	defaultBaseDecline = -2.0

	sentimentWeight   = 0.3
	volumeWeight      = 0.2
	technicalWeight   = 0.15
	correlationWeight = 0.1

	bollingerUpperTerm = 0.5
	bollingerLowerTerm = -0.5

	defaultCorrelation = 0.7
)

// scoreBaseDecline averages the percentage change of up to five non-overlapping
// 5-session windows, most recent first. Each window divides by its most recent
// close (index weekStart) and subtracts it from the oldest close (index weekEnd).
// Windows whose divisor is zero are skipped.
// Weight: 1.0
func scoreBaseDecline(series model.PriceSeries) model.FactorScore {
	windows := 0
	sum := 0.0
	if series.Len() >= weeklyWindow {
		limit := series.Len() / weeklyWindow
		if limit > maxWeeklyWindows {
			limit = maxWeeklyWindows
		}
		for i := 0; i < limit; i++ {
			weekStart := i * weeklyWindow
			weekEnd := weekStart + weeklyWindow - 1
			if weekEnd >= series.Len() {
				continue
			}
			startPrice := series.Close(weekEnd)
			endPrice := series.Close(weekStart)
			if startPrice == 0 {
				continue
			}
			sum += (endPrice - startPrice) / startPrice * 100
			windows++
		}
	}

	if windows == 0 {
		return model.FactorScore{
			Name: "Base decline", RawScore: defaultBaseDecline, Weight: 1, Weighted: defaultBaseDecline,
			Commentary: "insufficient history, bearish prior",
		}
	}
	avg := sum / float64(windows)
	return model.FactorScore{
		Name:       "Base decline",
		RawScore:   avg,
		Weight:     1,
		Weighted:   avg,
		Commentary: fmt.Sprintf("%d weekly windows", windows),
	}
}

// scoreSentiment clamps the news sentiment to [-10, 10].
// Weight: 0.3
func scoreSentiment(sentimentScore float64) model.FactorScore {
	normalized := math.Max(-10, math.Min(10, sentimentScore))
	return model.FactorScore{
		Name:       "Sentiment",
		RawScore:   normalized,
		Weight:     sentimentWeight,
		Weighted:   normalized * sentimentWeight,
		Commentary: fmt.Sprintf("score=%.2f", sentimentScore),
	}
}

// scoreVolume uses the fractional volume anomaly directly.
// Weight: 0.2
func scoreVolume(snap model.TechnicalSnapshot) model.FactorScore {
	return model.FactorScore{
		Name:       "Volume",
		RawScore:   snap.VolumeAnomaly,
		Weight:     volumeWeight,
		Weighted:   snap.VolumeAnomaly * volumeWeight,
		Commentary: fmt.Sprintf("anomaly %+.1f%%", snap.VolumeAnomaly*100),
	}
}

// scoreTechnical combines the RSI deviation from 50 with the band position.
// Weight: 0.15
func scoreTechnical(snap model.TechnicalSnapshot) model.FactorScore {
	rsiDeviation := (snap.RSI - 50) / 50

	var bollingerTerm float64
	switch snap.Position {
	case model.PositionLower:
		bollingerTerm = bollingerLowerTerm
	case model.PositionUpper:
		bollingerTerm = bollingerUpperTerm
	}

	raw := rsiDeviation + bollingerTerm
	return model.FactorScore{
		Name:       "Technical",
		RawScore:   raw,
		Weight:     technicalWeight,
		Weighted:   raw * technicalWeight,
		Commentary: fmt.Sprintf("RSI=%.0f, band=%s", snap.RSI, snap.Position),
	}
}

// scoreMarketCorrelation uses historical volatility as a stand-in for beta.
// Weight: 0.1
func scoreMarketCorrelation(series model.PriceSeries) model.FactorScore {
	proxy := defaultCorrelation
	commentary := "insufficient history"
	if series.Len() >= 2 {
		volatility := calculator.CalculateVolatility(calculator.PeriodChanges(series))
		proxy = math.Min(1.0, 0.5+volatility*10)
		commentary = fmt.Sprintf("volatility=%.4f", volatility)
	}
	return model.FactorScore{
		Name:       "Market correlation",
		RawScore:   proxy,
		Weight:     correlationWeight,
		Weighted:   proxy * correlationWeight,
		Commentary: commentary,
	}
}
