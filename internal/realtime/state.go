package realtime

// State is the connection state exposed by the underlying real-time session.
// Clients only observe it; they never invent additional states.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// ValidTransition reports whether a session may move between two states.
// Reconnecting is only reachable from Connected, on transient network loss.
func ValidTransition(from, to State) bool {
	if from == to {
		return false
	}
	switch from {
	case StateDisconnected:
		return to == StateConnecting
	case StateConnecting:
		return to == StateConnected || to == StateDisconnected
	case StateConnected:
		return to == StateReconnecting || to == StateDisconnected
	case StateReconnecting:
		return to == StateConnected || to == StateDisconnected
	default:
		return false
	}
}
