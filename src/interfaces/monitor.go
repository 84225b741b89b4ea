package interfaces

import "crypto-sniper/src/models"

// -----------------------------------------------------------------------------
// IMonitor is the control surface the dashboard server talks to.
// -----------------------------------------------------------------------------

type IMonitor interface {

	// Symbols returns the active watch-list.
	Symbols() []string

	// -----------------------------------------------------------------------------

	// UpdateSymbols replaces the watch-list; symbols outside the configured
	// candidate universe are rejected.
	UpdateSymbols(symbols []string) error

	// -----------------------------------------------------------------------------

	// RecentHistory returns up to n recent snapshots for one symbol,
	// oldest first.
	RecentHistory(symbol string, n int) []models.MSymbolSnapshot
}
