// Package state defines the session lifecycle machine for the protocol handler.
// file: internal/mcp/state/states.go
package state

import "github.com/scenebridge/scenebridge/internal/fsm"

// Session lifecycle states.
const (
	// StateUninitialized is the starting state, before the initialize handshake.
	StateUninitialized fsm.State = "uninitialized"
	// StateReady is entered after a successful initialize.
	StateReady fsm.State = "ready"
	// StateShutdown is the terminal state once the session is torn down.
	StateShutdown fsm.State = "shutdown"
)

// IsTerminal returns true if no further transitions should occur from s.
func IsTerminal(s fsm.State) bool {
	return s == StateShutdown
}
