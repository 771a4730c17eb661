// file: internal/mcp/handler.go
package mcp

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/scenebridge/scenebridge/internal/config"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp/state"
	"github.com/scenebridge/scenebridge/internal/mcperror"
	"github.com/scenebridge/scenebridge/internal/schema"
)

// MetricsRecorder receives dispatch observations from the handler. The
// transport layer provides a Prometheus-backed implementation; a nil recorder
// disables collection.
type MetricsRecorder interface {
	// ObserveRequest records one dispatched request.
	ObserveRequest(method string, duration time.Duration, failed bool)
	// ObserveToolError records one tool call that produced an error result.
	ObserveToolError(toolName string)
}

// Handler is the protocol orchestrator. It owns both registries, implements
// the initialize handshake, and dispatches requests to the right registry
// entry, wrapping execution in the uniform result/error envelope. The handler
// holds no call-spanning mutable state beyond the session lifecycle flag, so
// concurrent calls are safe as long as individual tools and resources
// synchronize their own shared state.
type Handler struct {
	tools     *ToolRegistry
	resources *ResourceRegistry
	validator *schema.Validator
	session   *state.SessionMachine

	serverInfo Implementation
	strict     bool

	mu         sync.RWMutex
	clientInfo Implementation

	metrics MetricsRecorder
	logger  logging.Logger
}

// NewHandler creates a protocol handler with empty registries.
func NewHandler(cfg *config.Config, logger logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	log := logger.WithField("component", "mcp_handler")

	session, err := state.NewSessionMachine(log)
	if err != nil {
		return nil, err
	}

	return &Handler{
		tools:     NewToolRegistry(),
		resources: NewResourceRegistry(),
		validator: schema.NewValidator(log),
		session:   session,
		serverInfo: Implementation{
			Name:    cfg.Server.Name,
			Version: cfg.Server.Version,
		},
		strict: cfg.Protocol.StrictHandshake,
		logger: log,
	}, nil
}

// SetMetricsRecorder attaches a metrics sink. Call before serving traffic.
func (h *Handler) SetMetricsRecorder(recorder MetricsRecorder) {
	h.metrics = recorder
}

// Tools returns the handler's tool registry for registration at startup.
func (h *Handler) Tools() *ToolRegistry {
	return h.tools
}

// Resources returns the handler's resource registry for registration at startup.
func (h *Handler) Resources() *ResourceRegistry {
	return h.resources
}

// SessionState returns the current lifecycle state, for diagnostics.
func (h *Handler) SessionState() string {
	return string(h.session.CurrentState())
}

// Initialize performs the handshake. It is pure negotiation: the only
// mutable effect is marking the session ready and recording the client
// identity for call contexts. A structurally malformed request fails with
// an invalid-arguments error; nothing else can fail.
func (h *Handler) Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResult, error) {
	start := time.Now()
	if req == nil {
		h.observe("initialize", start, true)
		return nil, mcperror.NewInvalidArgumentsError("initialize params missing", nil)
	}
	if req.ClientInfo.Name == "" {
		h.observe("initialize", start, true)
		return nil, mcperror.NewInvalidArgumentsError("clientInfo.name must not be empty", nil)
	}

	protocolVersion := req.ProtocolVersion
	if protocolVersion == "" {
		protocolVersion = ProtocolVersion
	}

	h.mu.Lock()
	h.clientInfo = req.ClientInfo
	h.mu.Unlock()

	if err := h.session.MarkInitialized(ctx); err != nil {
		// The machine accepts initialize from every non-terminal state, so
		// this only fires after shutdown.
		h.observe("initialize", start, true)
		return nil, err
	}

	h.logger.Info("Session initialized.",
		"client", req.ClientInfo.Name,
		"clientVersion", req.ClientInfo.Version,
		"protocolVersion", protocolVersion)

	h.observe("initialize", start, false)
	return &InitializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo:      h.serverInfo,
		Capabilities: ServerCapabilities{
			Tools:     ListChangedCapability{ListChanged: true},
			Resources: ListChangedCapability{ListChanged: true},
		},
	}, nil
}

// ListTools returns a snapshot of the tool registry's current contents.
func (h *Handler) ListTools(ctx context.Context) (*ListToolsResult, error) {
	start := time.Now()
	if err := h.gate(ctx, "tools/list"); err != nil {
		h.observe("tools/list", start, true)
		return nil, err
	}

	tools := h.tools.GetAll()
	result := &ListToolsResult{Tools: make([]ToolDescriptor, 0, len(tools))}
	for _, tool := range tools {
		result.Tools = append(result.Tools, ToolDescriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.InputSchema(),
		})
	}
	h.observe("tools/list", start, false)
	return result, nil
}

// ListResources returns a snapshot of the resource registry's current contents.
func (h *Handler) ListResources(ctx context.Context) (*ListResourcesResult, error) {
	start := time.Now()
	if err := h.gate(ctx, "resources/list"); err != nil {
		h.observe("resources/list", start, true)
		return nil, err
	}

	resources := h.resources.GetAll()
	result := &ListResourcesResult{Resources: make([]ResourceDescriptor, 0, len(resources))}
	for _, resource := range resources {
		result.Resources = append(result.Resources, ResourceDescriptor{
			URI:         resource.URI(),
			Name:        resource.Name(),
			Description: resource.Description(),
			MimeType:    resource.MimeType(),
		})
	}
	h.observe("resources/list", start, false)
	return result, nil
}

// CallTool looks up and executes the named tool. An unknown tool name is a
// normal business outcome reported inside the envelope, never an error
// return. Faults raised during execution -- error returns and panics alike --
// are contained here and converted to error-shaped results, so one failing
// tool cannot destabilize the handler or other in-flight calls.
func (h *Handler) CallTool(ctx context.Context, req *CallToolRequest) (*ToolCallResult, error) {
	start := time.Now()
	if err := h.gate(ctx, "tools/call"); err != nil {
		h.observe("tools/call", start, true)
		return nil, err
	}
	if req == nil {
		h.observe("tools/call", start, true)
		return nil, mcperror.NewInvalidArgumentsError("tools/call params missing", nil)
	}

	tool, ok := h.tools.Get(req.Name)
	if !ok {
		h.logger.Debug("Tool not found.", "tool", req.Name)
		h.observeToolError(req.Name)
		h.observe("tools/call", start, false)
		return NewToolCallErrorf("Tool not found: %s", req.Name), nil
	}

	if err := h.validator.ValidateArguments(req.Name, tool.InputSchema(), req.Arguments); err != nil {
		h.logger.Debug("Tool arguments rejected by schema.", "tool", req.Name, "error", err)
		h.observeToolError(req.Name)
		h.observe("tools/call", start, false)
		return NewToolCallErrorf("Invalid arguments for tool '%s': %v", req.Name, err), nil
	}

	call := newCallContext(h.currentClientInfo())
	result := h.executeTool(ctx, tool, call, req.Arguments)
	if result.IsError {
		h.observeToolError(req.Name)
	}
	h.observe("tools/call", start, false)
	return result, nil
}

// executeTool runs the tool with panic containment.
func (h *Handler) executeTool(ctx context.Context, tool Tool, call CallContext, args map[string]any) (result *ToolCallResult) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Tool panicked during execution.",
				"tool", tool.Name(), "callID", call.CallID, "panic", r)
			result = NewToolCallErrorf("Tool '%s' failed: %v", tool.Name(), r)
		}
	}()

	res, err := tool.Execute(ctx, call, args)
	if err != nil {
		h.logger.Warn("Tool execution returned an error.",
			"tool", tool.Name(), "callID", call.CallID, "error", err)
		return NewToolCallErrorf("Tool '%s' failed: %v", tool.Name(), err)
	}
	if res == nil || len(res.Content) == 0 {
		// The envelope contract requires at least one content item.
		return NewToolCallResult("")
	}
	return res
}

// ReadResource looks up the resource for the request URI and reads it. In
// deliberate contrast to CallTool, an unknown URI is a request-level
// resource-not-found failure, not an in-band result: collaborators depend on
// distinguishing the two. The raw URI, query suffix included, is passed
// through to the resource; only the suffix-free form is used for lookup.
func (h *Handler) ReadResource(ctx context.Context, req *ReadResourceRequest) (result *ResourceReadResult, err error) {
	start := time.Now()
	if gateErr := h.gate(ctx, "resources/read"); gateErr != nil {
		h.observe("resources/read", start, true)
		return nil, gateErr
	}
	if req == nil || req.URI == "" {
		h.observe("resources/read", start, true)
		return nil, mcperror.NewInvalidArgumentsError("resources/read requires a uri", nil)
	}

	baseURI := req.URI
	if idx := strings.Index(baseURI, "?"); idx >= 0 {
		baseURI = baseURI[:idx]
	}

	resource, ok := h.resources.Get(baseURI)
	if !ok {
		h.logger.Debug("Resource not found.", "uri", req.URI)
		h.observe("resources/read", start, true)
		return nil, mcperror.NewResourceNotFoundError(req.URI, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Resource panicked during read.", "uri", req.URI, "panic", r)
			result = nil
			err = mcperror.NewResourceError("resource read failed", nil,
				map[string]interface{}{"resource_uri": req.URI})
			h.observe("resources/read", start, true)
		}
	}()

	res, readErr := resource.Read(ctx, req.URI)
	if readErr != nil {
		h.logger.Warn("Resource read returned an error.", "uri", req.URI, "error", readErr)
		h.observe("resources/read", start, true)
		return nil, mcperror.NewResourceError("failed to read resource", readErr,
			map[string]interface{}{"resource_uri": req.URI})
	}
	if res.MimeType == "" {
		res.MimeType = resource.MimeType()
	}
	h.observe("resources/read", start, false)
	return res, nil
}

// gate enforces handshake ordering when strict mode is on. With strict mode
// off (the default), out-of-order callers are accepted, matching the
// reference behavior.
func (h *Handler) gate(_ context.Context, method string) error {
	if !h.strict {
		return nil
	}
	return h.session.ValidateMethod(method)
}

// currentClientInfo returns the identity recorded at initialize.
func (h *Handler) currentClientInfo() Implementation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clientInfo
}

// observe reports one dispatched request to the metrics sink, if attached.
func (h *Handler) observe(method string, start time.Time, failed bool) {
	if h.metrics != nil {
		h.metrics.ObserveRequest(method, time.Since(start), failed)
	}
}

// observeToolError reports one error-shaped tool result to the metrics sink.
func (h *Handler) observeToolError(toolName string) {
	if h.metrics != nil {
		h.metrics.ObserveToolError(toolName)
	}
}
