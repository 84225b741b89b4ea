package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestUnavailableCarriesSentinel(t *testing.T) {
	cause := errors.New("503 service unavailable")
	err := Unavailable("binance", cause)

	// The sentinel must sit in the unwrap chain, not just in the message
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsUnavailable(err))

	var qse *QuoteSourceError
	require.True(t, errors.As(err, &qse))
	assert.Contains(t, err.Error(), "binance")
	assert.Contains(t, err.Error(), "503")
}

// -----------------------------------------------------------------------------

func TestUnavailableNilCause(t *testing.T) {
	err := Unavailable("okx", nil)

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, IsUnavailable(err))
}

// -----------------------------------------------------------------------------

func TestIsUnavailableRejectsOtherErrors(t *testing.T) {
	assert.False(t, IsUnavailable(errors.New("disk full")))
	assert.False(t, IsUnavailable(&NotificationError{SniperError{Message: "telegram"}}))
	assert.False(t, IsUnavailable(nil))
}

// -----------------------------------------------------------------------------

func TestSniperErrorUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := &DatabaseError{SniperError{Message: "save failed", Cause: cause}}

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "save failed: root", err.Error())
}
