package main

import (
	"context"
	"fmt"
	"time"

	"crypto-sniper/src/config"
	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/models"
	"crypto-sniper/src/monitor"
	"crypto-sniper/src/network"
	"crypto-sniper/src/quotes"
	"crypto-sniper/src/quotes/binance"
	"crypto-sniper/src/quotes/okx"
)

// -----------------------------------------------------------------------------
// Manual smoke harness: run the full pipeline against stub exchanges and
// print what the dashboard would see. No real network, no database, no
// Telegram.
// -----------------------------------------------------------------------------

func main() {
	cfg := testConfig()
	appLogger := logger.NewLogger(cfg, "smoke")

	binanceStub := startBinanceStub()
	defer binanceStub.Close()
	okxStub := startOkxStub()
	defer okxStub.Close()

	netMgr := network.NewNetworkManager(cfg.MConfig, appLogger)

	binSrc := binance.NewBinanceSource(cfg.MConfig, netMgr)
	binSrc.BaseURL = binanceStub.URL
	okxSrc := okx.NewOkxSource(cfg.MConfig, netMgr)
	okxSrc.BaseURL = okxStub.URL

	router := quotes.NewFallbackRouter([]interfaces.IQuoteSource{binSrc, okxSrc}, appLogger)

	mon := monitor.NewMonitor(cfg, router, nil, nil, nil, appLogger)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		data := mon.Tick(ctx)
		printTick(i, data)
		time.Sleep(500 * time.Millisecond)
	}

	// Kill the primary and confirm the fallback label changes
	binanceStub.Close()
	data := mon.Tick(ctx)
	fmt.Println("--- after primary source down ---")
	printTick(3, data)
}

// -----------------------------------------------------------------------------

func testConfig() *config.Config {
	return &config.Config{MConfig: &models.MConfig{
		Name:     "smoke",
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "DEBUG",
		Network: models.MNetworkConfig{
			RequestTimeout: 5,
		},
		Monitor: models.MMonitorConfig{
			Symbols:        []string{"BTCUSDT", "ETHUSDT"},
			Candidates:     []string{"BTCUSDT", "ETHUSDT"},
			Interval:       "1m",
			Limit:          120,
			MinBars:        60,
			RefreshSeconds: 20,
			Sources:        []string{"binance", "okx"},
			HistoryDepth:   16,
		},
		Grids: map[string]models.MGridParams{
			"BTCUSDT": {LowerPct: 3.0, UpperPct: 3.0, GridCount: 10},
		},
	}}
}

// -----------------------------------------------------------------------------

func printTick(n int, data *models.MLatestData) {
	fmt.Printf("tick %d: %d symbols, %d waiting, %.3fs\n",
		n,
		data.ProcessingMetrics.SymbolsProcessed,
		data.ProcessingMetrics.SourcesFailed,
		data.ProcessingMetrics.TickTimeSeconds)

	for sym, snap := range data.Snapshots {
		fmt.Printf("  %-8s [%s] source=%s state=%s attack=%v ambush=%v dump=%v risks=%d",
			sym, snap.Status, snap.Source, snap.Signal.MarketState,
			snap.Signal.Attack, snap.Signal.Ambush, snap.Signal.Dump, len(snap.Risks))
		if snap.Grid != nil {
			fmt.Printf(" grid=[%.2f..%.2f]/%d", snap.Grid.LowerBound, snap.Grid.UpperBound, snap.Grid.GridCount)
		}
		fmt.Println()
	}
}
