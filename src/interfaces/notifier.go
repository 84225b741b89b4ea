package interfaces

// -----------------------------------------------------------------------------
// INotifier is the outbound push-notification transport. Fire-and-forget:
// callers decide whether to swallow the returned error.
// -----------------------------------------------------------------------------

type INotifier interface {

	// Send dispatches one free-text message.
	Send(text string) error
}
