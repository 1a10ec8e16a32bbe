package model

import (
	"regexp"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds daily closes and volumes ordered most-recent-first.
// Index 0 is the latest session. The slices are unexported so the ordering
// can only be established through the constructors below.
type PriceSeries struct {
	closes  []float64
	volumes []float64
}

// NewPriceSeries builds a series from slices that are already most-recent-first.
// volumes may be nil or shorter than closes; missing volumes read as 0.
func NewPriceSeries(closesRecentFirst, volumesRecentFirst []float64) PriceSeries {
	s := PriceSeries{
		closes:  make([]float64, len(closesRecentFirst)),
		volumes: make([]float64, len(closesRecentFirst)),
	}
	copy(s.closes, closesRecentFirst)
	copy(s.volumes, volumesRecentFirst)
	return s
}

// SeriesFromBars converts chronological bars (oldest first) into a series.
func SeriesFromBars(bars []OHLCV) PriceSeries {
	n := len(bars)
	s := PriceSeries{
		closes:  make([]float64, n),
		volumes: make([]float64, n),
	}
	for i, b := range bars {
		s.closes[n-1-i] = b.Close
		s.volumes[n-1-i] = b.Volume
	}
	return s
}

// Len returns the number of sessions in the series.
func (s PriceSeries) Len() int { return len(s.closes) }

// Close returns the close i sessions ago.
func (s PriceSeries) Close(i int) float64 { return s.closes[i] }

// Volume returns the volume i sessions ago.
func (s PriceSeries) Volume(i int) float64 { return s.volumes[i] }

// Closes returns a copy of the closes, most-recent-first.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.closes))
	copy(out, s.closes)
	return out
}

// Volumes returns a copy of the volumes, most-recent-first.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.volumes))
	copy(out, s.volumes)
	return out
}

// Head returns the n most recent sessions (or the whole series if shorter).
func (s PriceSeries) Head(n int) PriceSeries {
	if n > len(s.closes) {
		n = len(s.closes)
	}
	if n < 0 {
		n = 0
	}
	return NewPriceSeries(s.closes[:n], s.volumes[:n])
}

// Quote is the latest session snapshot returned by a data source.
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        float64
}

// StockData is everything the prediction needs about a ticker.
type StockData struct {
	Symbol        string      `json:"symbol"`
	Price         float64     `json:"price"`
	Change        float64     `json:"change"`
	ChangePercent float64     `json:"changePercent"`
	Volume        float64     `json:"volume"`
	MarketCap     float64     `json:"marketCap"`
	High52Week    float64     `json:"high52Week"`
	Low52Week     float64     `json:"low52Week"`
	AvgVolume     float64     `json:"avgVolume"`
	History       PriceSeries `json:"-"`
	FetchedAt     time.Time   `json:"fetchedAt"`
}

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,10}$`)

// ValidTicker reports whether s is 1-10 uppercase ASCII letters.
func ValidTicker(s string) bool {
	return tickerPattern.MatchString(s)
}
