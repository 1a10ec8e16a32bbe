package model

// BandPosition is where the current price sits relative to the Bollinger Bands.
type BandPosition string

const (
	PositionUpper  BandPosition = "upper"
	PositionMiddle BandPosition = "middle"
	PositionLower  BandPosition = "lower"
)

// BollingerBands holds the upper, middle and lower bands.
type BollingerBands struct {
	Upper  float64 `json:"bollingerUpper"`
	Middle float64 `json:"bollingerMiddle"`
	Lower  float64 `json:"bollingerLower"`
}

// TechnicalSnapshot holds the indicators computed for one prediction request.
type TechnicalSnapshot struct {
	RSI           float64        `json:"rsi"`
	Bands         BollingerBands `json:"bands"`
	Position      BandPosition   `json:"currentPosition"`
	VolumeAnomaly float64        `json:"volumeAnomaly"`
}
