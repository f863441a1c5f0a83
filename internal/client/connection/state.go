package connection

// State is the lifecycle state of the current physical connection.
type State int

const (
	// StateConnecting means no connection is established yet, or a
	// reconnect attempt is pending.
	StateConnecting State = iota

	// StateOpen means the connection is established and usable.
	StateOpen

	// StateClosed means the manager has been shut down for good.
	StateClosed
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
