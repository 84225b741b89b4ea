package binance

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto-sniper/src/helpers"
	"crypto-sniper/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type stubNetwork struct {
	body      []byte
	err       error
	gotURL    string
	gotParams map[string]string
}

func (s *stubNetwork) Get(url string, params map[string]string) ([]byte, error) {
	s.gotURL = url
	s.gotParams = params
	return s.body, s.err
}

// -----------------------------------------------------------------------------

func testConfig() *models.MConfig {
	return &models.MConfig{
		Monitor: models.MMonitorConfig{
			Interval: "1m",
			Limit:    120,
		},
	}
}

// -----------------------------------------------------------------------------

func TestFetchParsesKlines(t *testing.T) {
	payload := `[
		[1700000000000, "100.5", "101.0", "99.5", "100.8", "1234.5", 1700000059999, "0", 10, "0", "0", "0"],
		[1700000060000, "100.8", "102.0", "100.0", "101.5", "2000.0", 1700000119999, "0", 12, "0", "0", "0"]
	]`
	net := &stubNetwork{body: []byte(payload)}
	src := NewBinanceSource(testConfig(), net)

	candles, err := src.Fetch(context.Background(), "BTCUSDT")

	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), candles[0].OpenTime)
	assert.InDelta(t, 100.5, candles[0].Open, 1e-9)
	assert.InDelta(t, 101.0, candles[0].High, 1e-9)
	assert.InDelta(t, 99.5, candles[0].Low, 1e-9)
	assert.InDelta(t, 100.8, candles[0].Close, 1e-9)
	assert.InDelta(t, 1234.5, candles[0].Volume, 1e-9)
	assert.InDelta(t, 101.5, candles[1].Close, 1e-9)

	// Request shape
	assert.Equal(t, src.BaseURL, net.gotURL)
	assert.Equal(t, "BTCUSDT", net.gotParams["symbol"])
	assert.Equal(t, "1m", net.gotParams["interval"])
	assert.Equal(t, "120", net.gotParams["limit"])
}

// -----------------------------------------------------------------------------

func TestFetchSkipsGarbageRows(t *testing.T) {
	payload := `[
		[1700000000000, "100.0", "101.0", "99.0", "0", "500.0", 0, "0", 0, "0", "0", "0"],
		[1700000060000, "100.0", "101.0", "99.0", "100.5", "500.0", 0, "0", 0, "0", "0", "0"]
	]`
	src := NewBinanceSource(testConfig(), &stubNetwork{body: []byte(payload)})

	candles, err := src.Fetch(context.Background(), "BTCUSDT")

	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.InDelta(t, 100.5, candles[0].Close, 1e-9)
}

// -----------------------------------------------------------------------------

func TestFetchNetworkFailureIsUnavailable(t *testing.T) {
	src := NewBinanceSource(testConfig(), &stubNetwork{err: errors.New("connection refused")})

	_, err := src.Fetch(context.Background(), "BTCUSDT")

	require.Error(t, err)
	assert.True(t, helpers.IsUnavailable(err))
	// The documented contract: the sentinel is in the chain
	assert.True(t, errors.Is(err, helpers.ErrUnavailable))
}

// -----------------------------------------------------------------------------

func TestFetchMalformedPayloadIsUnavailable(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>rate limited</html>`,
		"empty array":     `[]`,
		"short row":       `[[1700000000000, "100.0"]]`,
		"non-string cell": `[[1700000000000, 100.0, "101.0", "99.0", "100.5", "500.0"]]`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			src := NewBinanceSource(testConfig(), &stubNetwork{body: []byte(payload)})
			_, err := src.Fetch(context.Background(), "BTCUSDT")
			require.Error(t, err)
			assert.True(t, helpers.IsUnavailable(err))
		})
	}
}

// -----------------------------------------------------------------------------

func TestFetchCancelledContext(t *testing.T) {
	src := NewBinanceSource(testConfig(), &stubNetwork{body: []byte(`[]`)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx, "BTCUSDT")

	require.Error(t, err)
	assert.True(t, helpers.IsUnavailable(err))
}
