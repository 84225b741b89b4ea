package quotes

import (
	"context"

	"crypto-sniper/src/helpers"
	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// FallbackRouter tries quote sources in a fixed priority order until one
// returns a usable window. This is a straight-through chain, not a circuit
// breaker: a failing source is retried every tick with no backoff, and
// nothing is cached across ticks.
// -----------------------------------------------------------------------------

type FallbackRouter struct {
	Sources []interfaces.IQuoteSource
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewFallbackRouter(sources []interfaces.IQuoteSource, log *logger.Logger) *FallbackRouter {
	return &FallbackRouter{
		Sources: sources,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// Fetch returns the first successful window tagged with the source that
// supplied it. If every source fails, the error is Unavailable and the label
// is empty.
func (r *FallbackRouter) Fetch(ctx context.Context, symbol string) ([]models.MCandle, string, error) {
	for _, src := range r.Sources {
		candles, err := src.Fetch(ctx, symbol)
		if err != nil {
			r.Logger.Warning("Source %s failed for %s: %v", src.Name(), symbol, err)
			continue
		}
		return candles, src.Name(), nil
	}
	return nil, "", helpers.ErrUnavailable
}
