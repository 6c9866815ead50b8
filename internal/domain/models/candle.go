package models

import "time"

// Candle is one OHLCV bar. Series are ordered ascending by timestamp with
// distinct timestamps; the most recent bar is the last element.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}
