package server

import (
	"encoding/json"
	"net/http"

	"crypto-sniper/src/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop. All mutation of the clients map
// happens here, under stateMutex so REST handlers can read the count.
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case <-s.quit:
			return

		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			state := s.latestState
			s.stateMutex.Unlock()

			// Send initial state on connect; buffer is fresh, cannot block
			if state != nil {
				client.send <- state
			}

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case message := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestState = message

			for client := range s.clients {
				select {
				case client.send <- message:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.stateMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateAllDatas merges a fresh tick result into the cached state. Snapshots
// for symbols absent from the new data are kept, so a symbol whose source was
// unavailable this tick still shows its last known state.
func (s *DashboardServer) UpdateAllDatas(data *models.MLatestData) {
	if data == nil {
		return
	}

	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	if s.latestState.Snapshots == nil {
		s.latestState.Snapshots = make(map[string]models.MSymbolSnapshot)
	}
	for sym, snap := range data.Snapshots {
		s.latestState.Snapshots[sym] = snap
	}

	s.latestState.Timestamp = data.Timestamp
	s.latestState.ProcessingMetrics = data.ProcessingMetrics
	s.latestState.Type = "UPDATE"
}

// -----------------------------------------------------------------------------

// Broadcast sends a tick result to the broadcast channel (Queue). After
// Stop it becomes a no-op instead of backing up the buffer.
func (s *DashboardServer) Broadcast(message *models.MLatestData) {
	if message == nil {
		return
	}
	message.Type = "UPDATE"

	// The large buffer (set in NewDashboardServer) makes blocking rare.
	select {
	case s.broadcast <- message:
	case <-s.quit:
	}
}

// -----------------------------------------------------------------------------
// Helper Methods
// -----------------------------------------------------------------------------

// clientCount is the connection count surfaced by /api/health.
func (s *DashboardServer) clientCount() int {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return len(s.clients)
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MLatestData, 256),
	}

	select {
	case s.register <- client:
	case <-s.quit:
		conn.Close()
		return
	}

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client %s", err, client.id)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	s.stateMutex.RLock()
	response := s.filteredResponse(cmd.Symbols)
	s.stateMutex.RUnlock()

	// Use select to avoid blocking if client's send buffer is full
	select {
	case client.send <- response:
	default:
		// Client buffer full, drop. The Hub loop prunes slow clients on
		// the next broadcast.
	}
}

// -----------------------------------------------------------------------------
// Response Filtering
// -----------------------------------------------------------------------------

// filteredResponse returns the cached state restricted to the requested
// symbols. An empty symbol list means everything. Caller holds stateMutex.
func (s *DashboardServer) filteredResponse(symbols []string) *models.MLatestData {
	filtered := make(map[string]models.MSymbolSnapshot)
	if len(symbols) == 0 {
		for sym, snap := range s.latestState.Snapshots {
			filtered[sym] = snap
		}
	} else {
		for _, sym := range symbols {
			if snap, exists := s.latestState.Snapshots[sym]; exists {
				filtered[sym] = snap
			}
		}
	}

	return &models.MLatestData{
		Type:              "INITIAL",
		Snapshots:         filtered,
		Timestamp:         s.latestState.Timestamp,
		ProcessingMetrics: s.latestState.ProcessingMetrics,
	}
}
