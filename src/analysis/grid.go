package analysis

import (
	"math"

	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// Grid suggestion calculator. Pure function of the latest price and ATR%;
// recomputed every tick, never persisted.
// -----------------------------------------------------------------------------

const (
	// gridMinBars is how much history a symbol needs before suggesting.
	gridMinBars = 20
	// maxWidenFactor caps the ATR-derived widening at 2x.
	maxWidenFactor = 2.0
)

type GridCalculator struct {
	Params map[string]models.MGridParams
}

func NewGridCalculator(params map[string]models.MGridParams) *GridCalculator {
	return &GridCalculator{Params: params}
}

// -----------------------------------------------------------------------------

// WidenFactor scales the configured grid bounds by volatility:
// min(atr_pct / 2, 2.0). Flat markets collapse the grid, wild ones cap out.
func WidenFactor(atrPct float64) float64 {
	return math.Min(atrPct/2.0, maxWidenFactor)
}

// -----------------------------------------------------------------------------

// Suggest computes grid bounds for a symbol, or nil when the symbol has no
// configured parameters, fewer than gridMinBars bars of history, or an
// undefined ATR%.
func (g *GridCalculator) Suggest(symbol string, price, atrPct float64, bars int) *models.MGridSuggestion {
	params, ok := g.Params[symbol]
	if !ok || bars < gridMinBars {
		return nil
	}
	if price <= 0 || math.IsNaN(atrPct) {
		return nil
	}

	factor := WidenFactor(atrPct)
	lowerPct := params.LowerPct * factor
	upperPct := params.UpperPct * factor

	lower := price * (1 - lowerPct/100)
	upper := price * (1 + upperPct/100)

	return &models.MGridSuggestion{
		CurrentPrice: price,
		LowerBound:   lower,
		UpperBound:   upper,
		GridCount:    params.GridCount,
		GridWidth:    (upper - lower) / float64(params.GridCount),
		ATRPct:       atrPct,
	}
}
