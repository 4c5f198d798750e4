package resolve

import "fmt"

// State is the position of one record inside the duplicate-resolution
// protocol.
type State string

const (
	// StateChecking tests the candidate identifier against the known sets.
	StateChecking State = "checking"
	// StateAwaitingResolution means a collision was found and a Strategy
	// decision is needed.
	StateAwaitingResolution State = "awaiting_resolution"
	// StateAccepted admits the record with its current identifier.
	StateAccepted State = "accepted"
	// StateRejected drops the record.
	StateRejected State = "rejected"
)

// IsTerminal reports whether the state ends the protocol.
func IsTerminal(s State) bool {
	switch s {
	case StateAccepted, StateRejected:
		return true
	default:
		return false
	}
}

// IsAccepted reports whether the state admits the record.
func IsAccepted(s State) bool {
	return s == StateAccepted
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateChecking:
		return to == StateAccepted || to == StateAwaitingResolution
	case StateAwaitingResolution:
		// The self-loop is an interactive re-prompt.
		return to == StateChecking || to == StateRejected || to == StateAwaitingResolution
	default:
		return false
	}
}

// step performs one validated protocol move. A disallowed move is a
// resolver bug, never a data problem.
func step(from, to State) State {
	if !isAllowedTransition(from, to) {
		panic(fmt.Sprintf("resolve: disallowed transition %s -> %s", from, to))
	}
	return to
}
