package analysis

import (
	"math"
	"testing"

	"crypto-sniper/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// flatScenario builds a window and matching rows where only the latest bar
// matters; earlier entries are inert filler.
func flatScenario(n int, lastCandle models.MCandle, lastRow models.MIndicatorRow) ([]models.MCandle, []models.MIndicatorRow) {
	window := make([]models.MCandle, n)
	rows := make([]models.MIndicatorRow, n)
	for i := 0; i < n; i++ {
		window[i] = models.MCandle{Open: 100, High: 101, Low: 99, Close: 100, Volume: 100}
		rows[i] = models.MIndicatorRow{
			MAShort: 100, MAMid: 100, MALong: 100, VolMAShort: 100,
			PctChange: 0, ATRPct: 1,
		}
	}
	window[n-1] = lastCandle
	rows[n-1] = lastRow
	return window, rows
}

// -----------------------------------------------------------------------------

func TestEvaluateInsufficientBars(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(10, models.MCandle{Close: 200, Volume: 10000},
		models.MIndicatorRow{MAShort: 100, MAMid: 90, VolMAShort: 1, PctChange: 5})

	state := ev.Evaluate(window, rows)

	assert.False(t, state.Attack)
	assert.False(t, state.Ambush)
	assert.False(t, state.Dump)
	assert.Equal(t, models.MarketStateStandby, state.MarketState)
}

// -----------------------------------------------------------------------------

func TestEvaluateUndefinedMAIsStandby(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60, models.MCandle{Close: 200, Volume: 10000},
		models.MIndicatorRow{
			MAShort: math.NaN(), MAMid: 90,
			VolMAShort: 1, PctChange: 5,
		})

	state := ev.Evaluate(window, rows)

	assert.False(t, state.Attack)
	assert.False(t, state.Ambush)
	assert.False(t, state.Dump)
	assert.Equal(t, models.MarketStateStandby, state.MarketState)
}

// -----------------------------------------------------------------------------

func TestEvaluateAttack(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60,
		models.MCandle{Close: 101, Volume: 300},
		models.MIndicatorRow{
			MAShort: 100, MAMid: 99, MALong: math.NaN(),
			VolMAShort: 100, PctChange: 1.0,
		})

	state := ev.Evaluate(window, rows)

	assert.True(t, state.Attack)
	// Volume is 3x, not strictly above 3x, so ambush stays off
	assert.False(t, state.Ambush)
	assert.False(t, state.Dump)
	// No long MA: trend cannot be called
	assert.Equal(t, models.MarketStateStandby, state.MarketState)
}

// -----------------------------------------------------------------------------

func TestEvaluateAmbush(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60,
		models.MCandle{Close: 100, Volume: 400},
		models.MIndicatorRow{
			MAShort: 100, MAMid: 100, MALong: 100,
			VolMAShort: 100, PctChange: 0.1,
		})

	state := ev.Evaluate(window, rows)

	assert.True(t, state.Ambush)
	assert.False(t, state.Attack)
	assert.False(t, state.Dump)
}

// -----------------------------------------------------------------------------

func TestEvaluateDump(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60,
		models.MCandle{Close: 95, Volume: 250},
		models.MIndicatorRow{
			MAShort: 100, MAMid: 102, MALong: 103,
			VolMAShort: 100, PctChange: -1.5,
		})

	state := ev.Evaluate(window, rows)

	assert.True(t, state.Dump)
	assert.False(t, state.Attack)
	assert.False(t, state.Ambush)
	assert.Equal(t, models.MarketStateDowntrend, state.MarketState)
}

// -----------------------------------------------------------------------------

func TestMarketStates(t *testing.T) {
	ev := NewSignalEvaluator(60)

	cases := []struct {
		name  string
		close float64
		row   models.MIndicatorRow
		want  string
	}{
		{
			name:  "uptrend",
			close: 105,
			row:   models.MIndicatorRow{MAShort: 100, MAMid: 98, MALong: 95, VolMAShort: 100},
			want:  models.MarketStateUptrend,
		},
		{
			name:  "downtrend",
			close: 90,
			row:   models.MIndicatorRow{MAShort: 95, MAMid: 98, MALong: 100, VolMAShort: 100},
			want:  models.MarketStateDowntrend,
		},
		{
			name:  "range on mixed ordering",
			close: 105,
			row:   models.MIndicatorRow{MAShort: 100, MAMid: 102, MALong: 95, VolMAShort: 100},
			want:  models.MarketStateRange,
		},
		{
			name:  "standby without long MA",
			close: 105,
			row:   models.MIndicatorRow{MAShort: 100, MAMid: 98, MALong: math.NaN(), VolMAShort: 100},
			want:  models.MarketStateStandby,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			window, rows := flatScenario(60, models.MCandle{Close: tc.close, Volume: 100}, tc.row)
			state := ev.Evaluate(window, rows)
			assert.Equal(t, tc.want, state.MarketState)
		})
	}
}

// -----------------------------------------------------------------------------
// Risk scan
// -----------------------------------------------------------------------------

func TestScanRiskSharpMoves(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60, models.MCandle{Close: 100, Volume: 100},
		models.MIndicatorRow{MAShort: 100, MAMid: 100, VolMAShort: 100})

	// Two of the trailing five bars move hard in opposite directions
	rows[57].PctChange = 2.5
	rows[58].PctChange = -3.1

	flags := ev.ScanRisk(window, rows)

	require.Len(t, flags, 2)
	assert.Equal(t, models.RiskSharpPump, flags[0].Kind)
	assert.InDelta(t, 2.5, flags[0].Magnitude, 1e-9)
	assert.Equal(t, models.RiskSharpDump, flags[1].Kind)
	assert.InDelta(t, -3.1, flags[1].Magnitude, 1e-9)
}

// -----------------------------------------------------------------------------

func TestScanRiskVolumeSpike(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60, models.MCandle{Close: 100, Volume: 600},
		models.MIndicatorRow{MAShort: 100, MAMid: 100, VolMAShort: 100})

	// Baseline is the five bars before the latest, each at volume 100
	flags := ev.ScanRisk(window, rows)

	require.Len(t, flags, 1)
	assert.Equal(t, models.RiskVolumeSpike, flags[0].Kind)
	assert.InDelta(t, 6.0, flags[0].Magnitude, 1e-9)
}

// -----------------------------------------------------------------------------

func TestScanRiskVolumeAtThresholdNotFlagged(t *testing.T) {
	ev := NewSignalEvaluator(60)

	// Exactly 5x the baseline is not strictly above the threshold
	window, rows := flatScenario(60, models.MCandle{Close: 100, Volume: 500},
		models.MIndicatorRow{MAShort: 100, MAMid: 100, VolMAShort: 100})

	assert.Empty(t, ev.ScanRisk(window, rows))
}

// -----------------------------------------------------------------------------

func TestScanRiskQuietWindow(t *testing.T) {
	ev := NewSignalEvaluator(60)

	window, rows := flatScenario(60, models.MCandle{Close: 100, Volume: 100},
		models.MIndicatorRow{MAShort: 100, MAMid: 100, VolMAShort: 100, PctChange: 0.1})

	assert.Empty(t, ev.ScanRisk(window, rows))
}
