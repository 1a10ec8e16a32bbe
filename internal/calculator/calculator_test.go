package calculator

import (
	"math"
	"testing"

	"StockPredict/internal/model"
)

func series(closes ...float64) model.PriceSeries {
	return model.NewPriceSeries(closes, nil)
}

func declining(n int, start, step float64) model.PriceSeries {
	closes := make([]float64, n)
	for i := range closes {
		// most-recent-first: each older close is higher, so price fell every session
		closes[i] = start + float64(i)*step
	}
	return series(closes...)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	for n := 0; n < 15; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i%3)
		}
		rsi, err := CalculateRSI(series(closes...), 14)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if rsi != 50 {
			t.Errorf("n=%d: expected neutral 50, got %.2f", n, rsi)
		}
	}
}

func TestCalculateRSI_NoLossesIsMaximal(t *testing.T) {
	// Measured as prices[i-1]-prices[i], a series whose older closes are
	// always higher has no positive differences, so every pair is a loss.
	// The inverse, older closes always lower, has no losses at all.
	rising := make([]float64, 20)
	for i := range rising {
		rising[i] = 200 - float64(i)
	}
	rsi, err := CalculateRSI(series(rising...), 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 100 {
		t.Errorf("expected 100 with no losses, got %.2f", rsi)
	}
}

func TestCalculateRSI_AllLossesIsZero(t *testing.T) {
	rsi, err := CalculateRSI(declining(20, 100, 1), 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 0 {
		t.Errorf("expected 0 with only losses, got %.2f", rsi)
	}
}

func TestCalculateRSI_Mixed(t *testing.T) {
	// 7 gains of 2 and 7 losses of 1 across the first 14 pairs.
	closes := []float64{100}
	for i := 0; i < 14; i++ {
		prev := closes[len(closes)-1]
		if i%2 == 0 {
			closes = append(closes, prev-2)
		} else {
			closes = append(closes, prev+1)
		}
	}
	rsi, err := CalculateRSI(series(closes...), 14)
	if err != nil {
		t.Fatal(err)
	}
	want := 100 - 100/(1+2.0)
	if !almostEqual(rsi, want) {
		t.Errorf("expected %.4f, got %.4f", want, rsi)
	}
}

func TestCalculateRSI_InvalidPeriod(t *testing.T) {
	if _, err := CalculateRSI(series(1, 2, 3), 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestCalculateSMA(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		period  int
		want    float64
		wantErr bool
	}{
		{"latest sessions only", []float64{10, 20, 30, 1000}, 3, 20, false},
		{"exact length", []float64{4, 6}, 2, 5, false},
		{"not enough data", []float64{1, 2}, 3, 0, true},
		{"bad period", []float64{1, 2}, 0, 0, true},
	}
	for _, tt := range tests {
		got, err := CalculateSMA(tt.values, tt.period)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("%s: expected %.4f, got %.4f", tt.name, tt.want, got)
		}
	}
}

func TestCalculateBollingerBands_MiddleIsSMA(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	bands, err := CalculateBollingerBands(series(closes...), 20)
	if err != nil {
		t.Fatal(err)
	}
	sma, _ := CalculateSMA(closes, 20)
	if !almostEqual(bands.Middle, sma) || !almostEqual(sma, 109.5) {
		t.Errorf("expected middle band %.4f to equal SMA 109.5 (got %.4f)", bands.Middle, sma)
	}
}

func TestCalculateBollingerBands_Fallback(t *testing.T) {
	bands, err := CalculateBollingerBands(series(100, 102, 98), 20)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(bands.Middle, 100) {
		t.Errorf("expected middle 100, got %.4f", bands.Middle)
	}
	if !almostEqual(bands.Upper, 102) || !almostEqual(bands.Lower, 98) {
		t.Errorf("expected ±2%% band, got %.4f/%.4f", bands.Upper, bands.Lower)
	}
}

func TestCalculateBollingerBands_PopulationStdDev(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 110
		} else {
			closes[i] = 90
		}
	}
	// Only the first 20 count: ten 110s and ten 90s, mean 100, population sd 10.
	closes[22] = 1000
	bands, err := CalculateBollingerBands(series(closes...), 20)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(bands.Middle, 100) || !almostEqual(bands.Upper, 120) || !almostEqual(bands.Lower, 80) {
		t.Errorf("unexpected bands %+v", bands)
	}
}

func TestCalculateBollingerBands_Ordering(t *testing.T) {
	inputs := [][]float64{
		{5},
		{100, 100, 100},
		{1, 50, 3, 90, 2, 8, 7, 6, 5, 4, 3, 2, 1, 9, 10, 11, 12, 13, 14, 15, 16, 17},
		{-5, -10, -2},
	}
	for _, in := range inputs {
		bands, err := CalculateBollingerBands(series(in...), 20)
		if err != nil {
			t.Fatal(err)
		}
		lo, hi := bands.Lower, bands.Upper
		if lo > hi {
			lo, hi = hi, lo
		}
		if in[0] >= 0 && !(bands.Lower <= bands.Middle && bands.Middle <= bands.Upper) {
			t.Errorf("%v: bands out of order %+v", in, bands)
		}
		if !(lo <= bands.Middle && bands.Middle <= hi) {
			t.Errorf("%v: middle outside bands %+v", in, bands)
		}
	}
}

func TestCalculateBollingerBands_Empty(t *testing.T) {
	if _, err := CalculateBollingerBands(series(), 20); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestClassifyPosition(t *testing.T) {
	bands := model.BollingerBands{Upper: 110, Middle: 100, Lower: 90}
	tests := []struct {
		price float64
		want  model.BandPosition
	}{
		{111, model.PositionUpper},
		{110, model.PositionMiddle},
		{100, model.PositionMiddle},
		{90, model.PositionMiddle},
		{89.99, model.PositionLower},
	}
	for _, tt := range tests {
		if got := ClassifyPosition(tt.price, bands); got != tt.want {
			t.Errorf("price %.2f: expected %s, got %s", tt.price, tt.want, got)
		}
	}
}

func TestCalculateVolumeAnomaly(t *testing.T) {
	got, err := CalculateVolumeAnomaly(1500, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 0.5) {
		t.Errorf("expected 0.5, got %.4f", got)
	}
	if _, err := CalculateVolumeAnomaly(1500, 0); err == nil {
		t.Error("expected error for zero average volume")
	}
}

func TestCalculatePriceRange(t *testing.T) {
	high, low, err := CalculatePriceRange(series(10, 30, 20, 5))
	if err != nil {
		t.Fatal(err)
	}
	if high != 30 || low != 5 {
		t.Errorf("expected 30/5, got %.0f/%.0f", high, low)
	}
	if _, _, err := CalculatePriceRange(series()); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestPeriodChanges(t *testing.T) {
	changes := PeriodChanges(series(110, 100, 0, 50))
	// 110 vs 100 -> 0.1; 100 vs 0 skipped; 0 vs 50 -> -1
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if !almostEqual(changes[0], 0.1) || !almostEqual(changes[1], -1) {
		t.Errorf("unexpected changes %v", changes)
	}
}

func TestTrailingChanges(t *testing.T) {
	changes := TrailingChanges(series(100, 110, 121, 1, 1, 1, 1, 1, 1, 1, 5000), 10)
	if len(changes) != 9 {
		t.Fatalf("expected 9 changes from the first 10 closes, got %d", len(changes))
	}
	if !almostEqual(changes[0], 0.1) || !almostEqual(changes[1], 0.1) {
		t.Errorf("unexpected leading changes %v", changes[:2])
	}
}

func TestBuildSnapshot_Defaults(t *testing.T) {
	stock := &model.StockData{Symbol: "TEST", Price: 50, Volume: 1000}
	snap := BuildSnapshot(stock)
	if snap.RSI != 50 {
		t.Errorf("expected RSI 50, got %.2f", snap.RSI)
	}
	if snap.Position != model.PositionMiddle {
		t.Errorf("expected middle position, got %s", snap.Position)
	}
	if snap.VolumeAnomaly != 0 {
		t.Errorf("expected zero anomaly, got %.2f", snap.VolumeAnomaly)
	}
	if !almostEqual(snap.Bands.Middle, 50) {
		t.Errorf("expected band centred on price, got %+v", snap.Bands)
	}
}
