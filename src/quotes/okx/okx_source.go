package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"crypto-sniper/src/helpers"
	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// OKX market candles endpoint. The payload is a status-coded envelope and the
// rows come back newest-first, so this source must reorder them ascending
// before anyone downstream sees them.
// -----------------------------------------------------------------------------

const defaultBaseURL = "https://www.okx.com/api/v5/market/candles"

type OkxSource struct {
	Config  *models.MConfig
	BaseURL string
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewOkxSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *OkxSource {
	return &OkxSource{
		Config:  cfg,
		BaseURL: defaultBaseURL,
		Network: netMgr,
		Logger:  logger.NewLogger(nil, "OkxSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *OkxSource) Name() string {
	return "okx"
}

// -----------------------------------------------------------------------------

// TranslateSymbol converts the Binance-style ticker used in config to OKX's
// instId convention ("BTCUSDT" -> "BTC-USDT"). Unknown quote suffixes pass
// through unchanged.
func TranslateSymbol(symbol string) string {
	if strings.Contains(symbol, "-") {
		return symbol
	}
	for _, quote := range []string{"USDT", "USDC", "USD", "BTC", "ETH"} {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return symbol[:len(symbol)-len(quote)] + "-" + quote
		}
	}
	return symbol
}

// -----------------------------------------------------------------------------

type okxCandleResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// -----------------------------------------------------------------------------

func (s *OkxSource) Fetch(ctx context.Context, symbol string) ([]models.MCandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, helpers.Unavailable(s.Name(), err)
	}

	params := map[string]string{
		"instId": TranslateSymbol(symbol),
		"bar":    s.Config.Monitor.Interval,
		"limit":  strconv.Itoa(s.Config.Monitor.Limit),
	}

	body, err := s.Network.Get(s.BaseURL, params)
	if err != nil {
		return nil, helpers.Unavailable(s.Name(), err)
	}

	candles, err := s.parseCandles(symbol, body)
	if err != nil {
		return nil, helpers.Unavailable(s.Name(), err)
	}
	return candles, nil
}

// -----------------------------------------------------------------------------

func (s *OkxSource) parseCandles(symbol string, data []byte) ([]models.MCandle, error) {
	var resp okxCandleResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Code != "0" {
		return nil, fmt.Errorf("okx api error: %s - %s", resp.Code, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty payload for %s", symbol)
	}

	candles := make([]models.MCandle, 0, len(resp.Data))
	for i, row := range resp.Data {
		// [ts, open, high, low, close, vol, ...]
		if len(row) < 6 {
			return nil, fmt.Errorf("short candle row at index %d for %s", i, symbol)
		}

		tsMs, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp at index %d for %s: %w", i, symbol, err)
		}

		fields := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("unparsable field %d at index %d for %s: %w", j+1, i, symbol, err)
			}
			fields[j] = v
		}

		if fields[3] <= 0 || fields[4] < 0 {
			s.Logger.Info("Skipping invalid candle for %s: close=%f, volume=%f", symbol, fields[3], fields[4])
			continue
		}

		candles = append(candles, models.MCandle{
			OpenTime: time.UnixMilli(tsMs).UTC(),
			Open:     fields[0],
			High:     fields[1],
			Low:      fields[2],
			Close:    fields[3],
			Volume:   fields[4],
		})
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("no valid candles for %s", symbol)
	}

	// Native order is newest-first and not guaranteed; normalize to strictly
	// ascending open time.
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].OpenTime.Before(candles[j].OpenTime)
	})

	return candles, nil
}
