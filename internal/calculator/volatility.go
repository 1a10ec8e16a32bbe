package calculator

import "StockPredict/internal/model"

// PeriodChanges returns the fractional change between each pair of adjacent
// closes, measured against the older close: (p[i-1] - p[i]) / p[i].
// Pairs with a zero older close are skipped.
func PeriodChanges(series model.PriceSeries) []float64 {
	if series.Len() < 2 {
		return nil
	}
	changes := make([]float64, 0, series.Len()-1)
	for i := 1; i < series.Len(); i++ {
		if series.Close(i) == 0 {
			continue
		}
		changes = append(changes, (series.Close(i-1)-series.Close(i))/series.Close(i))
	}
	return changes
}

// TrailingChanges walks the first n closes in storage order and returns
// (p[i] - p[i-1]) / p[i-1] for each adjacent pair.
// Pairs with a zero p[i-1] are skipped.
func TrailingChanges(series model.PriceSeries, n int) []float64 {
	head := series.Head(n)
	if head.Len() < 2 {
		return nil
	}
	changes := make([]float64, 0, head.Len()-1)
	for i := 1; i < head.Len(); i++ {
		prev := head.Close(i - 1)
		if prev == 0 {
			continue
		}
		changes = append(changes, (head.Close(i)-prev)/prev)
	}
	return changes
}

// CalculateVolatility is the population standard deviation of a set of changes.
func CalculateVolatility(changes []float64) float64 {
	return PopulationStdDev(changes)
}
