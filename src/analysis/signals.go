package analysis

import (
	"math"

	"crypto-sniper/src/analysis/core"
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// Signal thresholds. All three rules read the latest row only.
// -----------------------------------------------------------------------------

const (
	attackVolumeRatio = 2.0
	attackPctMin      = 0.8
	ambushVolumeRatio = 3.0
	ambushPctAbsMax   = 0.3
	dumpVolumeRatio   = 2.0
	dumpPctMax        = -1.0
)

// Risk scan parameters (trailing bars and trigger levels).
const (
	RiskWindow           = 5
	riskPumpPct          = 2.0
	riskDumpPct          = -2.0
	riskVolumeSpikeRatio = 5.0
)

// -----------------------------------------------------------------------------

// SignalEvaluator applies the fixed threshold predicates to the latest bar.
// Stateless across ticks; deduplication lives in the alert ledger.
type SignalEvaluator struct {
	MinBars int
}

func NewSignalEvaluator(minBars int) *SignalEvaluator {
	return &SignalEvaluator{MinBars: minBars}
}

// -----------------------------------------------------------------------------

// Evaluate classifies the latest bar into zero or more of attack/ambush/dump
// plus a market-state label. A window shorter than MinBars, or undefined
// short/mid moving averages, yield the inert all-false STANDBY state: that is
// the "insufficient data" terminal case, not an error.
//
// The predicates are independent and non-exclusive. attack and dump cannot
// co-occur (close cannot be on both sides of ma_short); ambush may overlap
// either.
func (ev *SignalEvaluator) Evaluate(window []models.MCandle, rows []models.MIndicatorRow) models.MSignalState {
	state := models.MSignalState{MarketState: models.MarketStateStandby}

	if len(window) < ev.MinBars || len(rows) != len(window) || len(rows) == 0 {
		return state
	}

	latest := rows[len(rows)-1]
	candle := window[len(window)-1]

	if math.IsNaN(latest.MAShort) || math.IsNaN(latest.MAMid) {
		return state
	}

	// NaN comparisons are false, so an undefined vol_ma or pct reads as
	// "cannot decide", never as "condition true".
	state.Attack = candle.Close > latest.MAShort && latest.MAShort > latest.MAMid &&
		candle.Volume > attackVolumeRatio*latest.VolMAShort &&
		latest.PctChange > attackPctMin

	state.Ambush = candle.Volume > ambushVolumeRatio*latest.VolMAShort &&
		math.Abs(latest.PctChange) < ambushPctAbsMax

	state.Dump = candle.Close < latest.MAShort &&
		candle.Volume > dumpVolumeRatio*latest.VolMAShort &&
		latest.PctChange < dumpPctMax

	state.MarketState = marketState(candle.Close, latest)
	return state
}

// -----------------------------------------------------------------------------

// marketState compares close against the strict ordering of the three moving
// averages. An undefined long MA means there is not enough history to call a
// trend, which maps to STANDBY.
func marketState(close float64, latest models.MIndicatorRow) string {
	if math.IsNaN(latest.MAShort) || math.IsNaN(latest.MAMid) || math.IsNaN(latest.MALong) {
		return models.MarketStateStandby
	}

	switch {
	case close > latest.MAShort && latest.MAShort > latest.MAMid && latest.MAMid > latest.MALong:
		return models.MarketStateUptrend
	case close < latest.MAShort && latest.MAShort < latest.MAMid && latest.MAMid < latest.MALong:
		return models.MarketStateDowntrend
	default:
		return models.MarketStateRange
	}
}

// -----------------------------------------------------------------------------

// ScanRisk flags sharp moves over the trailing RiskWindow rows: a pump if the
// max pct change tops riskPumpPct, a dump if the min drops below riskDumpPct,
// and a volume spike if the latest volume exceeds riskVolumeSpikeRatio times
// the mean of the RiskWindow bars preceding it. Flags are independent; each
// carries the triggering magnitude.
func (ev *SignalEvaluator) ScanRisk(window []models.MCandle, rows []models.MIndicatorRow) []models.MRiskFlag {
	if len(rows) < RiskWindow || len(window) != len(rows) {
		return nil
	}

	var flags []models.MRiskFlag

	maxPct := math.Inf(-1)
	minPct := math.Inf(1)
	for _, r := range rows[len(rows)-RiskWindow:] {
		if math.IsNaN(r.PctChange) {
			continue
		}
		if r.PctChange > maxPct {
			maxPct = r.PctChange
		}
		if r.PctChange < minPct {
			minPct = r.PctChange
		}
	}

	if maxPct > riskPumpPct {
		flags = append(flags, models.MRiskFlag{Kind: models.RiskSharpPump, Magnitude: maxPct})
	}
	if minPct < riskDumpPct {
		flags = append(flags, models.MRiskFlag{Kind: models.RiskSharpDump, Magnitude: minPct})
	}

	// Volume spike: baseline is the RiskWindow bars before the latest one,
	// so the spike itself does not dilute its own baseline.
	if len(window) > RiskWindow {
		base := window[len(window)-1-RiskWindow : len(window)-1]
		vols := make([]float64, len(base))
		for i, c := range base {
			vols[i] = c.Volume
		}
		mean, _ := core.CalculateMeanStd(vols)

		latestVol := window[len(window)-1].Volume
		if mean > 0 {
			ratio := latestVol / mean
			if ratio > riskVolumeSpikeRatio {
				flags = append(flags, models.MRiskFlag{Kind: models.RiskVolumeSpike, Magnitude: ratio})
			}
		}
	}

	return flags
}
