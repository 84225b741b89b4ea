package models

import "time"

// -----------------------------------------------------------------------------

// MCandle is one 1-minute OHLCV bucket, immutable once fetched.
type MCandle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}
