package calculator

import (
	"errors"
	"math"

	"StockPredict/internal/model"
)

// CalculatePriceRange scans every close in the series and returns the high and low.
func CalculatePriceRange(series model.PriceSeries) (high, low float64, err error) {
	if series.Len() == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := 0; i < series.Len(); i++ {
		c := series.Close(i)
		if c > high {
			high = c
		}
		if c < low {
			low = c
		}
	}
	return high, low, nil
}

// CalculateAverageVolume returns the mean volume across the series.
func CalculateAverageVolume(series model.PriceSeries) (float64, error) {
	if series.Len() == 0 {
		return 0, errors.New("no volumes provided")
	}
	return Mean(series.Volumes()), nil
}
