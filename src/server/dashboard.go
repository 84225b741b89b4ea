package server

import (
	"fmt"
	"strings"
	"sync"

	"crypto-sniper/src/interfaces"
	"crypto-sniper/src/logger"
	"crypto-sniper/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	Monitor interfaces.IMonitor
	engine  *gin.Engine

	// WebSocket clients, guarded by stateMutex (the hub goroutine mutates,
	// REST handlers read)
	clients    map[*Client]struct{}
	broadcast  chan *models.MLatestData // Strongly typed and Buffered Queue
	register   chan *Client
	unregister chan *Client

	// Shutdown signal; the hub channels themselves are never closed
	quit     chan struct{}
	stopOnce sync.Once

	// Local cache
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, logger *logger.Logger) *DashboardServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:  cfg,
		Logger:  logger,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered channel to prevent lock/blocking
		// Queue size of 256 ensures we can handle bursts of updates
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		latestState: &models.MLatestData{
			Type:              "INITIAL",
			Snapshots:         make(map[string]models.MSymbolSnapshot),
			Timestamp:         0,
			ProcessingMetrics: models.MProcessingMetrics{},
		},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------

// SetMonitor wires the monitor control surface. Must be called before Start.
func (s *DashboardServer) SetMonitor(m interfaces.IMonitor) {
	s.Monitor = m
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/snapshots", s.getSnapshots)
	s.engine.GET("/api/snapshots/:symbol", s.getSnapshot)
	s.engine.GET("/api/history/:symbol", s.getHistory)
	s.engine.PUT("/api/symbols", s.putSymbols)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) Stop() error {
	// Signal shutdown without closing the hub channels: Broadcast and the
	// websocket handlers may still be mid-send, and a send on a closed
	// channel panics. Everyone selects on quit instead.
	s.stopOnce.Do(func() { close(s.quit) })
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": timestamp,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"symbols":         s.Monitor.Symbols(),
		"candidates":      s.Config.Monitor.Candidates,
		"interval":        s.Config.Monitor.Interval,
		"refresh_seconds": s.Config.Monitor.RefreshSeconds,
		"auto_refresh":    s.Config.Monitor.AutoRefresh,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSnapshots(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	c.JSON(200, s.latestState)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSnapshot(c *gin.Context) {
	symbol := c.Param("symbol")

	s.stateMutex.RLock()
	snap, ok := s.latestState.Snapshots[symbol]
	s.stateMutex.RUnlock()

	if !ok {
		c.JSON(404, gin.H{"error": fmt.Sprintf("unknown symbol %s", symbol)})
		return
	}

	c.JSON(200, snap)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	depth := s.Config.Monitor.HistoryDepth

	history := s.Monitor.RecentHistory(symbol, depth)
	if history == nil {
		c.JSON(404, gin.H{"error": fmt.Sprintf("unknown symbol %s", symbol)})
		return
	}

	c.JSON(200, gin.H{
		"symbol":  symbol,
		"history": history,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) putSymbols(c *gin.Context) {
	var body struct {
		Symbols []string `json:"symbols"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.Monitor.UpdateSymbols(body.Symbols); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"symbols": s.Monitor.Symbols()})
}
