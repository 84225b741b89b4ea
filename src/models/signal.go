package models

// -----------------------------------------------------------------------------
// Market state labels
// -----------------------------------------------------------------------------

const (
	MarketStateStandby   = "STANDBY"
	MarketStateUptrend   = "UPTREND"
	MarketStateDowntrend = "DOWNTREND"
	MarketStateRange     = "RANGE"
)

// -----------------------------------------------------------------------------

// MSignalState classifies the latest bar. The three signals are independent,
// non-exclusive predicates; stateless across ticks.
type MSignalState struct {
	Attack      bool   `json:"attack"`
	Ambush      bool   `json:"ambush"`
	Dump        bool   `json:"dump"`
	MarketState string `json:"market_state"`
}

// -----------------------------------------------------------------------------
// Risk flags from the short-window volatility scan
// -----------------------------------------------------------------------------

const (
	RiskSharpPump   = "SHARP_PUMP"
	RiskSharpDump   = "SHARP_DUMP"
	RiskVolumeSpike = "VOLUME_SPIKE"
)

// MRiskFlag is one finding of the trailing-5-bar risk scan. Magnitude is the
// triggering value (max/min pct change, or the volume ratio).
type MRiskFlag struct {
	Kind      string  `json:"kind"`
	Magnitude float64 `json:"magnitude"`
}
