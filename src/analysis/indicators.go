package analysis

import (
	"math"

	"crypto-sniper/src/analysis/core"
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// Indicator window sizes. Hand-tuned design constants, not inferred.
// -----------------------------------------------------------------------------

const (
	MAShortPeriod = 20
	MAMidPeriod   = 60
	MALongPeriod  = 120
	VolMAPeriod   = 20
	ATRPeriod     = 14
)

// -----------------------------------------------------------------------------

// IndicatorEngine derives per-candle indicator rows from a candle window.
// Compute is a pure function of the window; no external state.
type IndicatorEngine struct{}

func NewIndicatorEngine() *IndicatorEngine {
	return &IndicatorEngine{}
}

// -----------------------------------------------------------------------------

// Compute returns one row per candle, same length and order as the input.
// Any field whose trailing window exceeds the available history is NaN and
// stays NaN downstream ("insufficient data", never zero).
func (e *IndicatorEngine) Compute(window []models.MCandle) []models.MIndicatorRow {
	n := len(window)
	rows := make([]models.MIndicatorRow, n)
	if n == 0 {
		return rows
	}

	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range window {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	maShort := core.SMA(closes, MAShortPeriod)
	maMid := core.SMA(closes, MAMidPeriod)
	maLong := core.SMA(closes, MALongPeriod)
	volMA := core.SMA(volumes, VolMAPeriod)
	pct := core.PctChange(closes)
	tr := core.TrueRange(window)
	atr := core.SMA(tr, ATRPeriod)

	for i := 0; i < n; i++ {
		atrPct := math.NaN()
		if !math.IsNaN(atr[i]) && closes[i] > 0 {
			atrPct = 100 * atr[i] / closes[i]
		}

		rows[i] = models.MIndicatorRow{
			MAShort:    maShort[i],
			MAMid:      maMid[i],
			MALong:     maLong[i],
			VolMAShort: volMA[i],
			PctChange:  pct[i],
			TrueRange:  tr[i],
			ATR:        atr[i],
			ATRPct:     atrPct,
		}
	}
	return rows
}

// -----------------------------------------------------------------------------

// OverlaySeries converts one indicator column to a nullable series for the
// chart payload: defined values become pointers, NaN becomes nil.
func OverlaySeries(rows []models.MIndicatorRow, pick func(models.MIndicatorRow) float64) []*float64 {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		v := pick(r)
		if math.IsNaN(v) {
			continue
		}
		vv := v
		out[i] = &vv
	}
	return out
}
