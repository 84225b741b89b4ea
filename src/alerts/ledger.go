package alerts

import (
	"fmt"
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// Ledger is the process-lifetime "already notified" set. Keys never expire
// explicitly; the time-bucket label baked into each key is the only expiry
// mechanism. It is an injectable dependency (not a global) so tests can
// assert on its contents, and mutex-guarded because the dashboard server
// runs on its own goroutines.
// -----------------------------------------------------------------------------

type Ledger struct {
	mu   sync.Mutex
	sent map[string]struct{}
}

// -----------------------------------------------------------------------------

func NewLedger() *Ledger {
	return &Ledger{
		sent: make(map[string]struct{}),
	}
}

// -----------------------------------------------------------------------------

// ShouldNotify reports whether key has not been marked yet. Pure query - it
// never reserves the key.
func (l *Ledger) ShouldNotify(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, exists := l.sent[key]
	return !exists
}

// -----------------------------------------------------------------------------

// MarkNotified records the key. Callers mark immediately after dispatching a
// notification for it, even when the transport fails silently: the design is
// at-most-one-attempt, not guaranteed delivery.
func (l *Ledger) MarkNotified(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sent[key] = struct{}{}
}

// -----------------------------------------------------------------------------

// Size returns the number of recorded keys.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sent)
}

// -----------------------------------------------------------------------------
// Key builders. Signal alerts re-arm hourly; risk alerts re-arm every minute.
// The asymmetry is intentional: risk events are more time-sensitive.
// -----------------------------------------------------------------------------

// SignalKey buckets a symbol+condition alert by hour.
func SignalKey(symbol, condition string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s", symbol, condition, t.UTC().Format("2006010215"))
}

// RiskKey buckets a symbol+risk-kind alert by minute.
func RiskKey(symbol, kind string, t time.Time) string {
	return fmt.Sprintf("%s_risk_%s_%s", symbol, kind, t.UTC().Format("200601021504"))
}
