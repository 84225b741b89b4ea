package interfaces

import "crypto-sniper/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defining the interface for sharing tick results with external
// systems (dashboard server / websocket push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a tick result to connected listeners and updates state.
	Broadcast(payload *models.MLatestData)

	// -----------------------------------------------------------------------------
	// UpdateAllDatas merges a tick result into the server state without
	// broadcasting (used for the initial state before clients connect).
	UpdateAllDatas(payload *models.MLatestData)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
