// file: internal/mcp/handler_test.go
package mcp

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/scenebridge/scenebridge/internal/config"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(config.DefaultConfig(), logging.GetNoopLogger())
	require.NoError(t, err)
	return h
}

func newStrictHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Protocol.StrictHandshake = true
	h, err := NewHandler(cfg, logging.GetNoopLogger())
	require.NoError(t, err)
	return h
}

func initialize(t *testing.T, h *Handler) *InitializeResult {
	t.Helper()
	res, err := h.Initialize(context.Background(), &InitializeRequest{
		ProtocolVersion: "2024-11-05",
		ClientInfo:      Implementation{Name: "test-client", Version: "1.0.0"},
	})
	require.NoError(t, err)
	return res
}

func TestInitialize_EchoesVersionAndAdvertisesCapabilities(t *testing.T) {
	h := newTestHandler(t)
	res := initialize(t, h)

	assert.Equal(t, "2024-11-05", res.ProtocolVersion, "Server echoes the client's protocol version.")
	assert.Equal(t, "SceneBridge", res.ServerInfo.Name)
	assert.True(t, res.Capabilities.Tools.ListChanged)
	assert.True(t, res.Capabilities.Resources.ListChanged)
}

func TestInitialize_DefaultsVersionWhenOmitted(t *testing.T) {
	h := newTestHandler(t)
	res, err := h.Initialize(context.Background(), &InitializeRequest{
		ClientInfo: Implementation{Name: "test-client"},
	})
	require.NoError(t, err)
	assert.Equal(t, ProtocolVersion, res.ProtocolVersion)
}

func TestInitialize_RejectsMalformedParams(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Initialize(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, mcperror.IsInvalidArgumentsError(err))

	_, err = h.Initialize(context.Background(), &InitializeRequest{})
	assert.Error(t, err, "Empty clientInfo.name is structurally malformed.")
}

func TestListTools_MatchesRegistryContents(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Tools().Register(&stubTool{name: "a", description: "tool a"})
	h.Tools().Register(&stubTool{name: "b", description: "tool b"})

	res, err := h.ListTools(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Tools, len(h.Tools().GetAll()))

	h.Tools().Unregister("a")
	res, err = h.ListTools(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Tools, 1)
	assert.Equal(t, "b", res.Tools[0].Name)
}

func TestListResources_SnapshotsRegistry(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Resources().Register(&stubResource{
		uri: "app://scene/graph", name: "Scene Graph", description: "scene snapshot",
	})

	res, err := h.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "app://scene/graph", res.Resources[0].URI)
	assert.Equal(t, DefaultMimeType, res.Resources[0].MimeType)
}

func TestCallTool_UnknownName_ReturnsInBandError(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "does_not_exist"})
	require.NoError(t, err, "Unknown tool must never surface as an error return.")
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	assert.Contains(t, res.Content[0].Text, "Tool not found")
	assert.Contains(t, res.Content[0].Text, "does_not_exist")
}

func TestCallTool_Success_ReturnsToolResult(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Tools().Register(&stubTool{
		name: "echo",
		execute: func(_ context.Context, _ CallContext, args map[string]any) (*ToolCallResult, error) {
			return NewToolCallJSONResult(args), nil
		},
	})

	res, err := h.CallTool(context.Background(), &CallToolRequest{
		Name:      "echo",
		Arguments: map[string]any{"message": "hi"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"message":"hi"}`, res.Content[0].Text)
}

func TestCallTool_ExecutionError_IsContained(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Tools().Register(&stubTool{
		name: "failing",
		execute: func(_ context.Context, _ CallContext, _ map[string]any) (*ToolCallResult, error) {
			return nil, errors.New("scene index corrupted")
		},
	})

	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "failing"})
	require.NoError(t, err, "Execution faults are converted, not propagated.")
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "scene index corrupted")
}

func TestCallTool_PanicIsContained(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Tools().Register(&stubTool{
		name: "panicking",
		execute: func(_ context.Context, _ CallContext, _ map[string]any) (*ToolCallResult, error) {
			panic("unexpected nil scene")
		},
	})

	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "panicking"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "unexpected nil scene")
}

func TestCallTool_SchemaViolation_ReturnsInBandError(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Tools().Register(&stubTool{
		name:   "typed",
		schema: json.RawMessage(`{"type":"object","required":["name"]}`),
	})

	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "typed"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "Invalid arguments")
}

func TestCallTool_PopulatesCallContext(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	var got CallContext
	h.Tools().Register(&stubTool{
		name: "inspect",
		execute: func(_ context.Context, call CallContext, _ map[string]any) (*ToolCallResult, error) {
			got = call
			return NewToolCallResult("ok"), nil
		},
	})

	_, err := h.CallTool(context.Background(), &CallToolRequest{Name: "inspect"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.CallID, "Each call carries a unique ID.")
	assert.Equal(t, "test-client", got.ClientInfo.Name, "Client identity from initialize is threaded through.")
}

func TestReadResource_UnknownURI_FailsWithResourceNotFound(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	res, err := h.ReadResource(context.Background(), &ReadResourceRequest{URI: "app://invalid/resource"})
	require.Error(t, err, "Unknown resource URI is a request-level failure, unlike unknown tools.")
	assert.Nil(t, res)
	assert.True(t, mcperror.IsResourceNotFoundError(err))
}

func TestReadResource_PassesRawURIThrough(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	var gotURI string
	h.Resources().Register(&stubResource{
		uri: "app://assets/index",
		read: func(_ context.Context, uri string) (*ResourceReadResult, error) {
			gotURI = uri
			return &ResourceReadResult{MimeType: DefaultMimeType, Text: "[]"}, nil
		},
	})

	_, err := h.ReadResource(context.Background(), &ReadResourceRequest{URI: "app://assets/index?type=material"})
	require.NoError(t, err)
	assert.Equal(t, "app://assets/index?type=material", gotURI,
		"The handler passes the raw URI through, query suffix included.")
}

func TestReadResource_ReadFault_SurfacesAsError(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Resources().Register(&stubResource{
		uri: "app://scene/graph",
		read: func(_ context.Context, _ string) (*ResourceReadResult, error) {
			return nil, errors.New("host unavailable")
		},
	})

	_, err := h.ReadResource(context.Background(), &ReadResourceRequest{URI: "app://scene/graph"})
	assert.Error(t, err)
}

func TestReadResource_PanicIsContained(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Resources().Register(&stubResource{
		uri: "app://scene/graph",
		read: func(_ context.Context, _ string) (*ResourceReadResult, error) {
			panic("torn snapshot")
		},
	})

	res, err := h.ReadResource(context.Background(), &ReadResourceRequest{URI: "app://scene/graph"})
	assert.Error(t, err, "A panicking resource read becomes an error, not a crash.")
	assert.Nil(t, res)
}

func TestHandler_DefaultAllowsOutOfOrderCalls(t *testing.T) {
	h := newTestHandler(t)
	h.Tools().Register(&stubTool{name: "ping"})

	// No initialize: the reference behavior accepts out-of-order callers.
	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "ping"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestHandler_StrictHandshakeGatesRequests(t *testing.T) {
	h := newStrictHandler(t)
	h.Tools().Register(&stubTool{name: "ping"})

	_, err := h.CallTool(context.Background(), &CallToolRequest{Name: "ping"})
	require.Error(t, err)
	assert.True(t, mcperror.IsRequestSequenceError(err))

	_, err = h.ListTools(context.Background())
	assert.Error(t, err)

	initialize(t, h)

	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "ping"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestCallTool_ConcurrentDisjointTools_NoStateBleed(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	// Two tools with disjoint internal counters.
	type counter struct {
		mu sync.Mutex
		n  int
	}
	counters := [2]*counter{{}, {}}
	names := [2]string{"alpha", "beta"}
	for i := 0; i < 2; i++ {
		i := i
		h.Tools().Register(&stubTool{
			name: names[i],
			execute: func(_ context.Context, _ CallContext, _ map[string]any) (*ToolCallResult, error) {
				counters[i].mu.Lock()
				counters[i].n++
				n := counters[i].n
				counters[i].mu.Unlock()
				return NewToolCallJSONResult(map[string]any{"tool": names[i], "count": n}), nil
			},
		})
	}

	const callsPerTool = 25
	var wg sync.WaitGroup
	results := make([][]*ToolCallResult, 2)
	for i := 0; i < 2; i++ {
		results[i] = make([]*ToolCallResult, callsPerTool)
		for j := 0; j < callsPerTool; j++ {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				res, err := h.CallTool(context.Background(), &CallToolRequest{Name: names[i]})
				assert.NoError(t, err)
				results[i][j] = res
			}(i, j)
		}
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		assert.Equal(t, callsPerTool, counters[i].n, "Each tool sees exactly its own calls.")
		for _, res := range results[i] {
			require.NotNil(t, res)
			require.False(t, res.IsError)
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &payload))
			assert.Equal(t, names[i], payload["tool"], "Results must not bleed between tools.")
		}
	}
}

func TestCallTool_NilResultNormalizedToEnvelope(t *testing.T) {
	h := newTestHandler(t)
	initialize(t, h)

	h.Tools().Register(&stubTool{
		name: "empty",
		execute: func(_ context.Context, _ CallContext, _ map[string]any) (*ToolCallResult, error) {
			return nil, nil
		},
	})

	res, err := h.CallTool(context.Background(), &CallToolRequest{Name: "empty"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Content, "The envelope always carries at least one content item.")
}
