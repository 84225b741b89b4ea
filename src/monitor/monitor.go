package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"crypto-sniper/src/alerts"
	"crypto-sniper/src/analysis"
	"crypto-sniper/src/config"
	"crypto-sniper/src/helpers"
	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/models"
	"crypto-sniper/src/quotes"
	"crypto-sniper/src/utils"
)

// -----------------------------------------------------------------------------
// Monitor owns the per-tick pipeline: fetch windows through the fallback
// router, derive indicators, evaluate signals and risks, persist candles,
// dispatch alerts through the dedup ledger, and hand the assembled state to
// the dashboard server. It does not own the clock; the scheduler in cmd/main
// decides when Tick runs.
// -----------------------------------------------------------------------------

type Monitor struct {
	Config    *config.Config
	Router    *quotes.FallbackRouter
	Engine    *analysis.IndicatorEngine
	Evaluator *analysis.SignalEvaluator
	Grid      *analysis.GridCalculator
	Ledger    *alerts.Ledger
	Notifier  interfaces.INotifier // nil disables notifications
	DB        interfaces.IDatabase // nil disables persistence
	Exchanger interfaces.IDataExchanger
	Errors    *helpers.ErrorHandler
	Logger    *logger.Logger

	mu      sync.RWMutex
	symbols []string
	history map[string]*utils.RingBuffer
}

// -----------------------------------------------------------------------------

func NewMonitor(
	cfg *config.Config,
	router *quotes.FallbackRouter,
	notifier interfaces.INotifier,
	db interfaces.IDatabase,
	exchanger interfaces.IDataExchanger,
	log *logger.Logger,
) *Monitor {
	symbols := make([]string, len(cfg.Monitor.Symbols))
	copy(symbols, cfg.Monitor.Symbols)

	return &Monitor{
		Config:    cfg,
		Router:    router,
		Engine:    analysis.NewIndicatorEngine(),
		Evaluator: analysis.NewSignalEvaluator(cfg.Monitor.MinBars),
		Grid:      analysis.NewGridCalculator(cfg.Grids),
		Ledger:    alerts.NewLedger(),
		Notifier:  notifier,
		DB:        db,
		Exchanger: exchanger,
		Errors:    helpers.NewErrorHandler(),
		Logger:    log,
		symbols:   symbols,
		history:   make(map[string]*utils.RingBuffer),
	}
}

// -----------------------------------------------------------------------------
// Tick
// -----------------------------------------------------------------------------

// Tick runs one full monitoring cycle over the current watch-list. Symbols
// are processed sequentially and fail-soft: a symbol with no usable window
// gets a WAITING snapshot and never aborts the rest of the cycle.
func (m *Monitor) Tick(ctx context.Context) *models.MLatestData {
	start := time.Now()

	m.mu.RLock()
	symbols := make([]string, len(m.symbols))
	copy(symbols, m.symbols)
	m.mu.RUnlock()

	snapshots := make(map[string]models.MSymbolSnapshot, len(symbols))
	failed := 0

	for _, symbol := range symbols {
		snap := m.processSymbol(ctx, symbol)
		if snap.Status == models.SnapshotStatusWaiting {
			failed++
		}
		snapshots[symbol] = snap
		m.recordHistory(symbol, snap)
	}

	data := &models.MLatestData{
		Type:      "UPDATE",
		Snapshots: snapshots,
		Timestamp: time.Now().UTC().Unix(),
		ProcessingMetrics: models.MProcessingMetrics{
			TickTimeSeconds:  time.Since(start).Seconds(),
			SymbolsProcessed: len(symbols),
			SourcesFailed:    failed,
		},
	}

	if m.Exchanger != nil {
		m.Exchanger.Broadcast(data)
	}

	m.Logger.Debug("Tick done: %d symbols, %d waiting, %.3fs",
		len(symbols), failed, data.ProcessingMetrics.TickTimeSeconds)

	return data
}

// -----------------------------------------------------------------------------

// processSymbol builds the snapshot for one symbol. Every failure path
// (all sources down, short window) converges on the WAITING snapshot.
func (m *Monitor) processSymbol(ctx context.Context, symbol string) models.MSymbolSnapshot {
	now := time.Now().UTC()

	window, source, err := m.fetchWindow(ctx, symbol)
	if err != nil {
		if errors.Is(err, helpers.ErrInsufficientData) {
			// A short window recovers on its own as the source backfills
			m.Logger.Warning("Symbol %s: %v", symbol, err)
		} else {
			m.Errors.Handle(err, fmt.Sprintf("fetch %s", symbol))
		}
		return waitingSnapshot(symbol, now)
	}

	rows := m.Engine.Compute(window)
	signal := m.Evaluator.Evaluate(window, rows)
	risks := m.Evaluator.ScanRisk(window, rows)

	latest := rows[len(rows)-1]
	lastClose := window[len(window)-1].Close
	grid := m.Grid.Suggest(symbol, lastClose, latest.ATRPct, len(window))

	if m.DB != nil {
		if err := m.DB.SaveCandlesBulk(symbol, window); err != nil {
			m.Errors.Handle(err, fmt.Sprintf("persist %s", symbol))
		}
	}

	m.dispatchAlerts(symbol, window, latest, signal, risks, now)

	return models.MSymbolSnapshot{
		Symbol:    symbol,
		Source:    source,
		Status:    models.SnapshotStatusOK,
		Window:    window,
		MAShort:   analysis.OverlaySeries(rows, func(r models.MIndicatorRow) float64 { return r.MAShort }),
		MAMid:     analysis.OverlaySeries(rows, func(r models.MIndicatorRow) float64 { return r.MAMid }),
		MALong:    analysis.OverlaySeries(rows, func(r models.MIndicatorRow) float64 { return r.MALong }),
		Signal:    signal,
		Grid:      grid,
		Risks:     risks,
		UpdatedAt: now.Unix(),
	}
}

// -----------------------------------------------------------------------------

// fetchWindow pulls a window through the router and enforces the minimum bar
// count. A usable-but-short window comes back as ErrInsufficientData.
func (m *Monitor) fetchWindow(ctx context.Context, symbol string) ([]models.MCandle, string, error) {
	window, source, err := m.Router.Fetch(ctx, symbol)
	if err != nil {
		return nil, "", err
	}
	if len(window) < m.Config.Monitor.MinBars {
		return nil, source, fmt.Errorf("%d bars from %s, need %d: %w",
			len(window), source, m.Config.Monitor.MinBars, helpers.ErrInsufficientData)
	}
	return window, source, nil
}

// -----------------------------------------------------------------------------

func waitingSnapshot(symbol string, now time.Time) models.MSymbolSnapshot {
	return models.MSymbolSnapshot{
		Symbol:    symbol,
		Status:    models.SnapshotStatusWaiting,
		Signal:    models.MSignalState{MarketState: models.MarketStateStandby},
		UpdatedAt: now.Unix(),
	}
}

// -----------------------------------------------------------------------------
// Alert dispatch
// -----------------------------------------------------------------------------

// dispatchAlerts sends at most one notification per ledger key. The key is
// marked even when the transport fails: at-most-one-attempt, not guaranteed
// delivery.
func (m *Monitor) dispatchAlerts(
	symbol string,
	window []models.MCandle,
	latest models.MIndicatorRow,
	signal models.MSignalState,
	risks []models.MRiskFlag,
	now time.Time,
) {
	if m.Notifier == nil {
		return
	}

	lastClose := window[len(window)-1].Close

	conditions := []struct {
		name  string
		fired bool
	}{
		{"attack", signal.Attack},
		{"ambush", signal.Ambush},
		{"dump", signal.Dump},
	}

	for _, cond := range conditions {
		if !cond.fired {
			continue
		}
		key := alerts.SignalKey(symbol, cond.name, now)
		if !m.Ledger.ShouldNotify(key) {
			continue
		}
		text := fmt.Sprintf("[%s] %s signal: close %.4f, pct %+.2f%%",
			symbol, cond.name, lastClose, latest.PctChange)
		m.send(text)
		m.Ledger.MarkNotified(key)
	}

	for _, risk := range risks {
		key := alerts.RiskKey(symbol, risk.Kind, now)
		if !m.Ledger.ShouldNotify(key) {
			continue
		}
		text := fmt.Sprintf("[%s] risk %s: magnitude %.2f", symbol, risk.Kind, risk.Magnitude)
		m.send(text)
		m.Ledger.MarkNotified(key)
	}
}

// -----------------------------------------------------------------------------

func (m *Monitor) send(text string) {
	if err := m.Notifier.Send(text); err != nil {
		m.Errors.Handle(err, "notify")
	}
}

// -----------------------------------------------------------------------------
// History
// -----------------------------------------------------------------------------

func (m *Monitor) recordHistory(symbol string, snap models.MSymbolSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.history[symbol]
	if !ok {
		buf = utils.NewRingBuffer(m.Config.Monitor.HistoryDepth)
		m.history[symbol] = buf
	}
	buf.Append(snap)
}

// -----------------------------------------------------------------------------
// interfaces.IMonitor
// -----------------------------------------------------------------------------

func (m *Monitor) Symbols() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.symbols))
	copy(out, m.symbols)
	return out
}

// -----------------------------------------------------------------------------

// UpdateSymbols replaces the watch-list. Symbols outside the configured
// candidate universe are rejected wholesale; ring buffers of dropped symbols
// are kept so re-adding a symbol restores its history.
func (m *Monitor) UpdateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return &helpers.ValidationError{SniperError: helpers.SniperError{
			Message: "watch-list cannot be empty",
		}}
	}

	for _, sym := range symbols {
		if !m.isCandidate(sym) {
			return &helpers.ValidationError{SniperError: helpers.SniperError{
				Message: fmt.Sprintf("symbol %s is not in the candidate list", sym),
			}}
		}
	}

	m.mu.Lock()
	m.symbols = make([]string, len(symbols))
	copy(m.symbols, symbols)
	m.mu.Unlock()

	m.Logger.Info("Watch-list updated: %v", symbols)
	return nil
}

// -----------------------------------------------------------------------------

func (m *Monitor) isCandidate(symbol string) bool {
	for _, c := range m.Config.Monitor.Candidates {
		if c == symbol {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// RecentHistory returns up to n recent snapshots for one symbol, oldest
// first, or nil for a symbol that was never monitored.
func (m *Monitor) RecentHistory(symbol string, n int) []models.MSymbolSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, ok := m.history[symbol]
	if !ok {
		return nil
	}
	return buf.GetLatest(n)
}
