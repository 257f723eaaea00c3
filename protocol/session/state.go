package session

// State enumerates the session lifecycle states.
type State int

const (
	// StateDisconnected is the initial state and the state entered after a
	// socket failure, while a reconnect attempt is pending.
	StateDisconnected State = iota

	// StateHandshaking covers TCP connect plus protocol negotiation.
	StateHandshaking

	// StateReady is the only state in which commands are submitted
	// directly to the underlying connection.
	StateReady

	// StateDraining is entered on Close: no new commands, in-flight
	// commands are allowed to finish. Terminal.
	StateDraining

	// StateFaulted is entered on a non-retryable handshake rejection or an
	// exhausted retry budget. Terminal until an explicit Reset.
	StateFaulted
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateHandshaking:
		return "handshaking"
	case StateReady:
		return "ready"
	case StateDraining:
		return "draining"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}
