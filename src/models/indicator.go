package models

// -----------------------------------------------------------------------------
// Indicator values derived per candle.
//
// Fields whose trailing window exceeds the available history are NaN, never
// zero. NaN comparisons are always false, so threshold predicates naturally
// read missing data as "cannot decide". This struct is internal only - it is
// never serialized raw (NaN is not valid JSON); the snapshot layer converts
// defined values to *float64 series for the wire.
// -----------------------------------------------------------------------------

type MIndicatorRow struct {
	MAShort    float64 // 20-period SMA of close
	MAMid      float64 // 60-period SMA of close
	MALong     float64 // 120-period SMA of close
	VolMAShort float64 // 20-period SMA of volume
	PctChange  float64 // 100 * (close/prev_close - 1)
	TrueRange  float64
	ATR        float64 // 14-period SMA of true range
	ATRPct     float64 // 100 * atr / close
}
