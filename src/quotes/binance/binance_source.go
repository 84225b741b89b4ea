package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"crypto-sniper/src/helpers"
	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// Binance klines endpoint. Each row is a 12-column array:
// [openTime(ms), open, high, low, close, volume, closeTime, quoteAssetVolume,
//  trades, takerBuyBase, takerBuyQuote, ignore]
// with prices and volumes encoded as strings.
// -----------------------------------------------------------------------------

const defaultBaseURL = "https://api.binance.us/api/v3/klines"

type BinanceSource struct {
	Config  *models.MConfig
	BaseURL string
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewBinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *BinanceSource {
	return &BinanceSource{
		Config:  cfg,
		BaseURL: defaultBaseURL,
		Network: netMgr,
		Logger:  logger.NewLogger(nil, "BinanceSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *BinanceSource) Name() string {
	return "binance"
}

// -----------------------------------------------------------------------------

// Fetch pulls one candle window. Every failure mode maps to Unavailable so
// the router can fall through to the next source.
func (s *BinanceSource) Fetch(ctx context.Context, symbol string) ([]models.MCandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, helpers.Unavailable(s.Name(), err)
	}

	params := map[string]string{
		"symbol":   symbol,
		"interval": s.Config.Monitor.Interval,
		"limit":    strconv.Itoa(s.Config.Monitor.Limit),
	}

	body, err := s.Network.Get(s.BaseURL, params)
	if err != nil {
		return nil, helpers.Unavailable(s.Name(), err)
	}

	candles, err := s.parseKlines(symbol, body)
	if err != nil {
		return nil, helpers.Unavailable(s.Name(), err)
	}
	return candles, nil
}

// -----------------------------------------------------------------------------

func (s *BinanceSource) parseKlines(symbol string, data []byte) ([]models.MCandle, error) {
	var rows [][]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty payload for %s", symbol)
	}

	candles := make([]models.MCandle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("short kline row at index %d for %s", i, symbol)
		}

		openTimeMs, ok := row[0].(float64)
		if !ok {
			return nil, fmt.Errorf("bad open time at index %d for %s", i, symbol)
		}

		fields := make([]float64, 5) // open, high, low, close, volume
		for j := 0; j < 5; j++ {
			str, ok := row[j+1].(string)
			if !ok {
				return nil, fmt.Errorf("bad numeric field %d at index %d for %s", j+1, i, symbol)
			}
			v, err := strconv.ParseFloat(str, 64)
			if err != nil {
				return nil, fmt.Errorf("unparsable field %d at index %d for %s: %w", j+1, i, symbol, err)
			}
			fields[j] = v
		}

		// Data cleaning: a kline with a non-positive close is garbage
		if fields[3] <= 0 || fields[4] < 0 {
			s.Logger.Info("Skipping invalid kline for %s: close=%f, volume=%f", symbol, fields[3], fields[4])
			continue
		}

		candles = append(candles, models.MCandle{
			OpenTime: time.UnixMilli(int64(openTimeMs)).UTC(),
			Open:     fields[0],
			High:     fields[1],
			Low:      fields[2],
			Close:    fields[3],
			Volume:   fields[4],
		})
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("no valid klines for %s", symbol)
	}
	return candles, nil
}
