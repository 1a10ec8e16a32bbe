package calculator

import (
	"errors"

	"StockPredict/internal/model"
)

// DefaultRSIPeriod is the lookback used by the prediction.
const DefaultRSIPeriod = 14

// CalculateRSI computes a simple-average RSI over the most recent period changes.
// Changes are taken backwards in time, prices[i-1] - prices[i], with index 0 the latest close.
// Requires at least period+1 closes. Returns 50.0 if data is insufficient.
func CalculateRSI(series model.PriceSeries, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if series.Len() < period+1 {
		return 50.0, nil // default when data insufficient
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := series.Close(i-1) - series.Close(i)
		if change > 0 {
			gains += change
		} else {
			losses -= change // make positive
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
