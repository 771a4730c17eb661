// file: internal/mcp/context.go
package mcp

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// CallContext is the per-call value passed to tool execution. It carries
// caller-supplied metadata and is never retained beyond the call;
// cancellation and deadlines travel on the context.Context alongside it.
type CallContext struct {
	// CallID uniquely identifies this call for logging and tracing.
	CallID string
	// ClientInfo is the identity the client reported at initialize, if any.
	ClientInfo Implementation
	// ReceivedAt is when the handler accepted the call.
	ReceivedAt time.Time
}

// entropy is a monotonic ULID source shared across calls.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) // #nosec G404 -- IDs are not security tokens.
)

// newCallContext builds a CallContext for a freshly accepted call.
func newCallContext(clientInfo Implementation) CallContext {
	now := time.Now()
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), entropy)
	entropyMu.Unlock()
	return CallContext{
		CallID:     id.String(),
		ClientInfo: clientInfo,
		ReceivedAt: now,
	}
}
