package interfaces

import (
	"context"
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// IQuoteSource is one exchange candle endpoint normalized to the canonical
// candle sequence.
// -----------------------------------------------------------------------------

type IQuoteSource interface {

	// Name returns the source label shown on the dashboard (e.g. "binance").
	Name() string

	// -----------------------------------------------------------------------------

	// Fetch returns up to the configured limit of 1m candles for symbol,
	// strictly ascending in open time. Any network, status, or parse problem
	// comes back wrapped around helpers.ErrUnavailable; Fetch never retries.
	Fetch(ctx context.Context, symbol string) ([]models.MCandle, error)
}
