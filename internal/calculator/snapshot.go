package calculator

import (
	"log"

	"StockPredict/internal/model"
)

// BuildSnapshot computes every technical indicator the prediction consumes.
// Sparse or degenerate inputs fall back to neutral values instead of failing.
func BuildSnapshot(stock *model.StockData) model.TechnicalSnapshot {
	snap := model.TechnicalSnapshot{}

	if rsi, err := CalculateRSI(stock.History, DefaultRSIPeriod); err != nil {
		log.Printf("[WARN] %s RSI calculation failed: %v, defaulting to 50", stock.Symbol, err)
		snap.RSI = 50
	} else {
		snap.RSI = rsi
	}

	if bands, err := CalculateBollingerBands(stock.History, DefaultBollingerPeriod); err != nil {
		log.Printf("[WARN] %s Bollinger calculation failed: %v, using band around current price", stock.Symbol, err)
		snap.Bands = FixedBand(stock.Price)
	} else {
		snap.Bands = bands
	}
	snap.Position = ClassifyPosition(stock.Price, snap.Bands)

	if anomaly, err := CalculateVolumeAnomaly(stock.Volume, stock.AvgVolume); err != nil {
		log.Printf("[WARN] %s volume anomaly unavailable: %v, defaulting to 0", stock.Symbol, err)
		snap.VolumeAnomaly = 0
	} else {
		snap.VolumeAnomaly = anomaly
	}

	return snap
}
