package models

// -----------------------------------------------------------------------------
// Snapshot status
// -----------------------------------------------------------------------------

const (
	SnapshotStatusOK = "OK"
	// SnapshotStatusWaiting marks a symbol with no usable window this tick
	// (all sources failed, or fewer than min_bars candles). The Window is nil
	// in that case - deliberately distinct from a valid empty window.
	SnapshotStatusWaiting = "WAITING"
)

// -----------------------------------------------------------------------------

// MSymbolSnapshot is the per-symbol, per-tick presentation payload: source
// label, signal badges, optional grid panel, risk warnings and the chart
// series. MA overlays use *float64 so undefined points serialize as null.
type MSymbolSnapshot struct {
	Symbol    string           `json:"symbol"`
	Source    string           `json:"source"`
	Status    string           `json:"status"`
	Window    []MCandle        `json:"window"`
	MAShort   []*float64       `json:"ma_short"`
	MAMid     []*float64       `json:"ma_mid"`
	MALong    []*float64       `json:"ma_long"`
	Signal    MSignalState     `json:"signal"`
	Grid      *MGridSuggestion `json:"grid,omitempty"`
	Risks     []MRiskFlag      `json:"risks,omitempty"`
	UpdatedAt int64            `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// Server state structure
// -----------------------------------------------------------------------------

type MLatestData struct {
	Type              string                     `json:"type"` // "INITIAL" or "UPDATE"
	Snapshots         map[string]MSymbolSnapshot `json:"snapshots"`
	Timestamp         int64                      `json:"timestamp"`
	ProcessingMetrics MProcessingMetrics         `json:"processing_metrics"`
}

// MProcessingMetrics reports how the last tick went.
type MProcessingMetrics struct {
	TickTimeSeconds  float64 `json:"tick_time_seconds"`
	SymbolsProcessed int     `json:"symbols_processed"`
	SourcesFailed    int     `json:"sources_failed"`
}

// -----------------------------------------------------------------------------
// MSubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
