package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-sniper/src/alerts"
	"crypto-sniper/src/config"
	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/monitor"
	"crypto-sniper/src/network"
	"crypto-sniper/src/quotes"
	"crypto-sniper/src/quotes/binance"
	"crypto-sniper/src/quotes/okx"
	"crypto-sniper/src/server"
	"crypto-sniper/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	envPath := flag.String("env", "", "path to .env file with notification credentials")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg, cfg.Name)

	// Notification credentials come from the environment, never the YAML
	secrets := config.LoadSecrets(*envPath)

	// 2. Setup Storage
	var db interfaces.IDatabase

	switch cfg.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(cfg.MConfig, appLogger)
	default:
		// Default to SQLite
		db, err = storage.NewSQLiteDB(cfg.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// 3. Setup Quote Sources in fallback priority order
	var networkManager interfaces.INetworkManager = network.NewNetworkManager(cfg.MConfig, appLogger)

	var sources []interfaces.IQuoteSource
	for _, name := range cfg.Monitor.Sources {
		switch name {
		case "binance":
			sources = append(sources, binance.NewBinanceSource(cfg.MConfig, networkManager))
		case "okx":
			sources = append(sources, okx.NewOkxSource(cfg.MConfig, networkManager))
		default:
			appLogger.Warning("Unknown quote source '%s', skipping", name)
		}
	}
	if len(sources) == 0 {
		appLogger.Critical("No usable quote sources configured")
	}
	router := quotes.NewFallbackRouter(sources, appLogger)

	// 4. Notifier (optional)
	var notifier interfaces.INotifier
	if cfg.Notify.Enabled && secrets.NotificationsEnabled() {
		notifier = alerts.NewTelegramNotifier(secrets.BotToken, secrets.ChatID,
			time.Duration(cfg.Notify.TimeoutSeconds)*time.Second)
		appLogger.Info("Telegram notifications enabled")
	} else {
		appLogger.Info("Notifications disabled (missing credentials or disabled in config)")
	}

	// 5. Dashboard Server and Monitor
	srv := server.NewDashboardServer(cfg.MConfig, appLogger)
	mon := monitor.NewMonitor(cfg, router, notifier, db, srv, appLogger)
	srv.SetMonitor(mon)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 6. Main Loop (Pull Model)
	// The scheduler owns the clock; the monitor only runs when told to.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	appLogger.Info("Running initial tick...")
	mon.Tick(ctx)

	if !cfg.Monitor.AutoRefresh {
		appLogger.Info("Auto refresh disabled, serving last state until interrupted")
		<-quit
		appLogger.Info("Shutting down...")
		return
	}

	ticker := time.NewTicker(time.Duration(cfg.Monitor.RefreshSeconds) * time.Second)
	defer ticker.Stop()

	appLogger.Info("Starting tick loop (every %ds)...", cfg.Monitor.RefreshSeconds)

	cleanupCounter := 0
	for {
		select {
		case <-ticker.C:
			mon.Tick(ctx)

			// Retention cleanup roughly once an hour, not every tick
			cleanupCounter++
			if cleanupCounter*cfg.Monitor.RefreshSeconds >= 3600 {
				cleanupCounter = 0
				if err := db.CleanupOldData(); err != nil {
					appLogger.Error("Cleanup failed: %v", err)
				}
			}

		case <-quit:
			appLogger.Info("Shutting down...")
			cancel()
			srv.Stop()
			return
		}
	}
}
