package calculator

import (
	"errors"

	"StockPredict/internal/model"
)

// DefaultBollingerPeriod is the band lookback used by the prediction.
const DefaultBollingerPeriod = 20

// fallbackBandWidth is the fixed band used when there are fewer than period closes.
const fallbackBandWidth = 0.02

// CalculateBollingerBands returns mean ± 2 population standard deviations over
// the most recent period closes. With fewer closes it falls back to a ±2% band
// around the mean of everything available.
func CalculateBollingerBands(series model.PriceSeries, period int) (model.BollingerBands, error) {
	if period <= 0 {
		return model.BollingerBands{}, errors.New("period must be positive")
	}
	if series.Len() == 0 {
		return model.BollingerBands{}, errors.New("no prices provided")
	}

	closes := series.Closes()
	if len(closes) < period {
		return FixedBand(Mean(closes)), nil
	}

	middle, err := CalculateSMA(closes, period)
	if err != nil {
		return model.BollingerBands{}, err
	}
	stdDev := PopulationStdDev(closes[:period])
	return model.BollingerBands{
		Upper:  middle + 2*stdDev,
		Middle: middle,
		Lower:  middle - 2*stdDev,
	}, nil
}

// FixedBand returns a ±2% band centred on middle.
func FixedBand(middle float64) model.BollingerBands {
	return model.BollingerBands{
		Upper:  middle * (1 + fallbackBandWidth),
		Middle: middle,
		Lower:  middle * (1 - fallbackBandWidth),
	}
}

// ClassifyPosition reports whether price is above, below or inside the bands.
func ClassifyPosition(price float64, bands model.BollingerBands) model.BandPosition {
	switch {
	case price > bands.Upper:
		return model.PositionUpper
	case price < bands.Lower:
		return model.PositionLower
	default:
		return model.PositionMiddle
	}
}
