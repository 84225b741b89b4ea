package interfaces

import "crypto-sniper/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for candle history storage.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveCandlesBulk upserts a fetched window for one symbol, keyed on
	// (symbol, open_time). Re-fetching overlapping windows is the normal case.
	SaveCandlesBulk(symbol string, candles []models.MCandle) error

	// -----------------------------------------------------------------------------

	// LoadRecentCandles returns up to limit most recent candles for symbol,
	// ascending in open time.
	LoadRecentCandles(symbol string, limit int) ([]models.MCandle, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes candles older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
