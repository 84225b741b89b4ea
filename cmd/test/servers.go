package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"time"
)

// -----------------------------------------------------------------------------
// Stub exchange servers. Each serves a synthetic but shape-accurate payload
// so the full fetch -> parse -> analyze -> broadcast path runs without
// touching real exchanges.
// -----------------------------------------------------------------------------

// syntheticWindow builds n 1m candles ending now: a gentle uptrend with a
// volume burst on the last bar, enough to trip the attack signal.
func syntheticWindow(n int, basePrice float64) [][6]float64 {
	rows := make([][6]float64, n)
	start := time.Now().UTC().Add(-time.Duration(n) * time.Minute).Truncate(time.Minute)

	price := basePrice
	for i := 0; i < n; i++ {
		open := price
		drift := basePrice * 0.0005
		price += drift + rand.Float64()*drift
		high := price * 1.001
		low := open * 0.999
		vol := 100 + rand.Float64()*20

		// Last bar: strong close and a volume burst
		if i == n-1 {
			price = open * 1.012
			high = price
			vol = 500
		}

		ts := start.Add(time.Duration(i) * time.Minute)
		rows[i] = [6]float64{float64(ts.UnixMilli()), open, high, low, price, vol}
	}
	return rows
}

// -----------------------------------------------------------------------------

// startBinanceStub serves klines in Binance's 12-column string format.
func startBinanceStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := syntheticWindow(120, 100.0)

		payload := make([][]interface{}, len(rows))
		for i, row := range rows {
			payload[i] = []interface{}{
				row[0],
				fmt.Sprintf("%.4f", row[1]),
				fmt.Sprintf("%.4f", row[2]),
				fmt.Sprintf("%.4f", row[3]),
				fmt.Sprintf("%.4f", row[4]),
				fmt.Sprintf("%.4f", row[5]),
				row[0] + 59999,
				"0", 0, "0", "0", "0",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
}

// -----------------------------------------------------------------------------

// startOkxStub serves candles in OKX's enveloped, newest-first format.
func startOkxStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := syntheticWindow(120, 2000.0)

		data := make([][]string, len(rows))
		for i := range rows {
			// newest first
			src := rows[len(rows)-1-i]
			data[i] = []string{
				fmt.Sprintf("%.0f", src[0]),
				fmt.Sprintf("%.4f", src[1]),
				fmt.Sprintf("%.4f", src[2]),
				fmt.Sprintf("%.4f", src[3]),
				fmt.Sprintf("%.4f", src[4]),
				fmt.Sprintf("%.4f", src[5]),
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": "0",
			"msg":  "",
			"data": data,
		})
	}))
}
