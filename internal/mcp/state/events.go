// Package state defines the session lifecycle machine for the protocol handler.
// file: internal/mcp/state/events.go
package state

import "github.com/scenebridge/scenebridge/internal/fsm"

// Session lifecycle events.
const (
	// EventInitialize fires when an initialize request is handled successfully.
	EventInitialize fsm.Event = "initialize"
	// EventRequest fires for any operational request (tools/*, resources/*).
	EventRequest fsm.Event = "request"
	// EventShutdown fires when the session is torn down.
	EventShutdown fsm.Event = "shutdown"
)

// EventForMethod maps a protocol method name to its lifecycle event.
func EventForMethod(method string) fsm.Event {
	switch method {
	case "initialize":
		return EventInitialize
	case "shutdown":
		return EventShutdown
	default:
		return EventRequest
	}
}
