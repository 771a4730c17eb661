// Package state tests the session lifecycle machine.
// file: internal/mcp/state/machine_test.go
package state

import (
	"context"
	"testing"

	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSessionMachine(t *testing.T) *SessionMachine {
	t.Helper()
	m, err := NewSessionMachine(logging.GetNoopLogger())
	require.NoError(t, err, "Failed to create session machine for test.")
	require.NotNil(t, m)
	return m
}

func TestSessionMachine_StartsUninitialized(t *testing.T) {
	m := setupTestSessionMachine(t)
	assert.Equal(t, StateUninitialized, m.CurrentState())
}

func TestSessionMachine_InitializeMovesToReady(t *testing.T) {
	m := setupTestSessionMachine(t)
	ctx := context.Background()

	require.NoError(t, m.MarkInitialized(ctx))
	assert.Equal(t, StateReady, m.CurrentState())

	// Re-initialization renegotiates in place.
	require.NoError(t, m.MarkInitialized(ctx))
	assert.Equal(t, StateReady, m.CurrentState())
}

func TestSessionMachine_ValidateMethod_GatesPreHandshakeRequests(t *testing.T) {
	m := setupTestSessionMachine(t)
	ctx := context.Background()

	assert.NoError(t, m.ValidateMethod("initialize"), "Initialize must be allowed before the handshake.")

	err := m.ValidateMethod("tools/call")
	require.Error(t, err, "Operational methods must be rejected before initialize.")
	assert.True(t, mcperror.IsRequestSequenceError(err))

	require.NoError(t, m.MarkInitialized(ctx))
	assert.NoError(t, m.ValidateMethod("tools/call"))
	assert.NoError(t, m.ValidateMethod("resources/read"))
}

func TestSessionMachine_ShutdownIsTerminal(t *testing.T) {
	m := setupTestSessionMachine(t)
	ctx := context.Background()

	require.NoError(t, m.MarkInitialized(ctx))
	require.NoError(t, m.MarkShutdown(ctx))
	assert.Equal(t, StateShutdown, m.CurrentState())
	assert.True(t, IsTerminal(m.CurrentState()))

	assert.Error(t, m.ValidateMethod("tools/list"), "No method is valid after shutdown.")
	assert.Error(t, m.MarkInitialized(ctx), "Shutdown is terminal.")
}

func TestSessionMachine_Reset_ReturnsToUninitialized(t *testing.T) {
	m := setupTestSessionMachine(t)
	require.NoError(t, m.MarkInitialized(context.Background()))
	m.Reset()
	assert.Equal(t, StateUninitialized, m.CurrentState())
}
