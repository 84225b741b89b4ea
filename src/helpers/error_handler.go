package helpers

import (
	"errors"
	"fmt"

	"crypto-sniper/src/logger"
)

// -----------------------------------------------------------------------------
// Error Taxonomy
//
// Unavailable: a quote source failed (network, status, parse). Recovered by
// the fallback router, or surfaced as a WAITING snapshot when every source
// fails. InsufficientData: the window is shorter than min_bars or an
// indicator window exceeds history. Both are recovered inline; neither is
// ever fatal - the next tick is the retry mechanism.
// -----------------------------------------------------------------------------

var (
	ErrUnavailable      = errors.New("quote source unavailable")
	ErrInsufficientData = errors.New("insufficient data")
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type SniperError struct {
	Message string
	Cause   error
}

func (e *SniperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SniperError) Unwrap() error {
	return e.Cause
}

// Helper to define distinct error types for type assertions if needed
type ConfigurationError struct{ SniperError }
type QuoteSourceError struct{ SniperError }
type NotificationError struct{ SniperError }
type DatabaseError struct{ SniperError }
type ValidationError struct{ SniperError }

// -----------------------------------------------------------------------------

// Unavailable wraps a source failure so errors.Is(err, ErrUnavailable) holds.
// The sentinel sits in the unwrap chain together with the original cause.
func Unavailable(source string, cause error) error {
	wrapped := ErrUnavailable
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrUnavailable, cause)
	}
	return &QuoteSourceError{SniperError{
		Message: source,
		Cause:   wrapped,
	}}
}

// IsUnavailable reports whether err represents a failed quote source. All
// QuoteSourceError values count: the adapters produce nothing else.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var qse *QuoteSourceError
	return errors.As(err, &qse)
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{
		Logger:     logger.NewLogger(nil, "ErrorHandler"),
		ErrorCount: 0,
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.ErrorCount = 0
}

// -----------------------------------------------------------------------------

// Handle logs an error with context and bumps the running count. Used at the
// tick level where the swallow-and-continue policy is an explicit choice.
func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.ErrorCount++
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
