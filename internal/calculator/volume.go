package calculator

import "errors"

// CalculateVolumeAnomaly returns the fractional deviation of today's volume from the average.
func CalculateVolumeAnomaly(current, avg float64) (float64, error) {
	if avg == 0 {
		return 0, errors.New("average volume is zero")
	}
	return (current - avg) / avg, nil
}
