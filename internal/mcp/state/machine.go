// Package state defines the session lifecycle machine for the protocol handler.
// file: internal/mcp/state/machine.go
package state

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/scenebridge/scenebridge/internal/fsm"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcperror"
)

// SessionMachine tracks the lifecycle of one protocol session:
// uninitialized until the handshake completes, ready afterwards,
// shutdown once torn down.
type SessionMachine struct {
	machine *fsm.Machine
	logger  logging.Logger
}

// NewSessionMachine creates and configures the lifecycle machine.
func NewSessionMachine(logger logging.Logger) (*SessionMachine, error) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	log := logger.WithField("component", "session_state")

	machine, err := fsm.NewBuilder(StateUninitialized, log).
		AddTransition(fsm.Transition{
			From:  []fsm.State{StateUninitialized, StateReady},
			Event: EventInitialize,
			To:    StateReady,
		}).
		AddTransition(fsm.Transition{
			From:  []fsm.State{StateReady},
			Event: EventRequest,
			To:    StateReady,
		}).
		AddTransition(fsm.Transition{
			From:  []fsm.State{StateUninitialized, StateReady},
			Event: EventShutdown,
			To:    StateShutdown,
		}).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build session state machine")
	}

	return &SessionMachine{machine: machine, logger: log}, nil
}

// CurrentState returns the current lifecycle state.
func (m *SessionMachine) CurrentState() fsm.State {
	return m.machine.CurrentState()
}

// ValidateMethod checks whether receiving the given method is valid in the
// current state, returning a request-sequence error if not. Initialize is
// always allowed (re-initialization renegotiates in place).
func (m *SessionMachine) ValidateMethod(method string) error {
	event := EventForMethod(method)
	current := m.machine.CurrentState()
	if m.machine.CanTransition(event) {
		return nil
	}
	m.logger.Warn("Method received out of lifecycle order.",
		"method", method, "state", current)
	return mcperror.NewRequestSequenceError(method, string(current))
}

// MarkInitialized records a successful initialize handshake.
func (m *SessionMachine) MarkInitialized(ctx context.Context) error {
	return m.machine.Transition(ctx, EventInitialize, nil)
}

// MarkRequest records an operational request. Only meaningful in the ready
// state; callers gate on ValidateMethod first.
func (m *SessionMachine) MarkRequest(ctx context.Context) error {
	return m.machine.Transition(ctx, EventRequest, nil)
}

// MarkShutdown moves the session into its terminal state.
func (m *SessionMachine) MarkShutdown(ctx context.Context) error {
	return m.machine.Transition(ctx, EventShutdown, nil)
}

// Reset returns the machine to the uninitialized state.
func (m *SessionMachine) Reset() {
	m.machine.Reset()
}
