package core

import (
	"math"

	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------

// SMA computes the trailing simple moving average over exactly period values.
// Positions with fewer than period prior points are NaN - never zero and
// never a partial-window average.
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// PctChange computes 100*(v[i]/v[i-1] - 1) per position. The first position
// has no predecessor and is NaN.
func PctChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 {
			continue
		}
		out[i] = 100 * (values[i]/values[i-1] - 1)
	}
	return out
}

// -----------------------------------------------------------------------------

// TrueRange computes the standard true-range series:
// max(high-low, |high-prevClose|, |low-prevClose|). The first candle has no
// previous close, so it reduces to high-low.
func TrueRange(candles []models.MCandle) []float64 {
	out := make([]float64, len(candles))

	for i, c := range candles {
		if i == 0 {
			out[i] = c.High - c.Low
			continue
		}
		prevClose := candles[i-1].Close
		tr := c.High - c.Low
		if hc := math.Abs(c.High - prevClose); hc > tr {
			tr = hc
		}
		if lc := math.Abs(c.Low - prevClose); lc > tr {
			tr = lc
		}
		out[i] = tr
	}
	return out
}
