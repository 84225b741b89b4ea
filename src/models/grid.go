package models

// -----------------------------------------------------------------------------

// MGridParams is the static per-symbol grid configuration, injected at
// startup. Symbols absent from the config map get no suggestion.
type MGridParams struct {
	LowerPct  float64 `yaml:"lower_pct" json:"lower_pct"`
	UpperPct  float64 `yaml:"upper_pct" json:"upper_pct"`
	GridCount int     `yaml:"grid_count" json:"grid_count"`
}

// -----------------------------------------------------------------------------

// MGridSuggestion is recomputed every tick from the latest price and ATR%;
// never persisted.
type MGridSuggestion struct {
	CurrentPrice float64 `json:"current_price"`
	LowerBound   float64 `json:"lower_bound"`
	UpperBound   float64 `json:"upper_bound"`
	GridCount    int     `json:"grid_count"`
	GridWidth    float64 `json:"grid_width"`
	ATRPct       float64 `json:"atr_pct"`
}
