// Package fsm provides a generic finite state machine wrapper used for the
// protocol session lifecycle. It adapts looplab/fsm behind a small builder
// API so callers work with typed states and events.
// file: internal/fsm/fsm.go
package fsm

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	lfsm "github.com/looplab/fsm"
	"github.com/scenebridge/scenebridge/internal/logging"
)

// State represents a state in the FSM.
type State string

// Event represents an event that can trigger a state transition.
type Event string

// TransitionAction defines the function signature for actions executed when a
// transition fires. It receives the triggering event and optional event data.
type TransitionAction func(ctx context.Context, event Event, data interface{}) error

// Transition defines a transition rule between states. A single event may be
// declared once with multiple source states; all sources share one destination.
type Transition struct {
	// From lists the source states this transition fires from.
	From []State
	// To is the destination state.
	To State
	// Event is the event triggering the transition.
	Event Event
	// Action, if set, runs after the state change. Action errors are logged,
	// not propagated; the state change has already happened.
	Action TransitionAction
}

// Machine is a built state machine. It is safe for concurrent use.
type Machine struct {
	initialState State
	logger       logging.Logger
	mu           sync.RWMutex
	fsm          *lfsm.FSM
}

// Builder accumulates transition definitions before Build.
type Builder struct {
	initialState State
	logger       logging.Logger
	transitions  []Transition
	err          error
}

// NewBuilder creates an FSM builder with the given initial state.
func NewBuilder(initialState State, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &Builder{
		initialState: initialState,
		logger:       logger.WithField("component", "fsm"),
	}
}

// AddTransition stores a transition definition to be used during Build.
func (b *Builder) AddTransition(t Transition) *Builder {
	if len(t.From) == 0 {
		b.logger.Error("Transition definition missing 'From' states.", "event", t.Event, "to", t.To)
		if b.err == nil {
			b.err = errors.Newf("transition for event '%s' has no source states", t.Event)
		}
		return b
	}
	if t.Event == "" || t.To == "" {
		if b.err == nil {
			b.err = errors.New("transition requires both an event and a destination state")
		}
		return b
	}
	b.transitions = append(b.transitions, t)
	return b
}

// Build finalizes the configuration and creates the underlying machine.
func (b *Builder) Build() (*Machine, error) {
	if b.err != nil {
		return nil, b.err
	}

	eventDescs := make(map[Event]lfsm.EventDesc)
	callbacks := make(lfsm.Callbacks)

	for _, t := range b.transitions {
		desc, exists := eventDescs[t.Event]
		if !exists {
			desc = lfsm.EventDesc{Name: string(t.Event), Dst: string(t.To)}
		} else if desc.Dst != string(t.To) {
			return nil, errors.Newf(
				"conflicting destinations ('%s' and '%s') for event '%s'",
				desc.Dst, t.To, t.Event)
		}
		for _, from := range t.From {
			desc.Src = appendUnique(desc.Src, string(from))
		}
		eventDescs[t.Event] = desc

		if t.Action != nil {
			action := t.Action
			event := t.Event
			logger := b.logger
			callbacks["after_"+string(t.Event)] = func(ctx context.Context, e *lfsm.Event) {
				var data interface{}
				if len(e.Args) > 0 {
					data = e.Args[0]
				}
				if err := action(ctx, event, data); err != nil {
					logger.Error("Transition action failed.", "event", event, "error", err)
				}
			}
		}
	}

	descs := make([]lfsm.EventDesc, 0, len(eventDescs))
	for _, desc := range eventDescs {
		descs = append(descs, desc)
	}

	b.logger.Debug("FSM built.", "initialState", b.initialState, "events", len(descs))
	return &Machine{
		initialState: b.initialState,
		logger:       b.logger,
		fsm:          lfsm.NewFSM(string(b.initialState), descs, callbacks),
	}, nil
}

// appendUnique appends s to list if not already present.
func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// CurrentState returns the current state.
func (m *Machine) CurrentState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State(m.fsm.Current())
}

// CanTransition checks if the event is defined for the current state.
func (m *Machine) CanTransition(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Can(string(event))
}

// Transition attempts to trigger a state transition for the event. The
// optional data value is passed through to the transition action.
func (m *Machine) Transition(ctx context.Context, event Event, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var err error
	if data != nil {
		err = m.fsm.Event(ctx, string(event), data)
	} else {
		err = m.fsm.Event(ctx, string(event))
	}
	if err != nil {
		return errors.Wrapf(err, "transition on event '%s' from state '%s' failed", event, m.fsm.Current())
	}
	return nil
}

// SetState forces the machine into the given state, bypassing transitions.
// Intended for tests and error recovery paths.
func (m *Machine) SetState(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fsm.SetState(string(state))
}

// Reset sets the state back to the initial state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fsm.SetState(string(m.initialState))
}
