// file: internal/mcp/tool.go
package mcp

import (
	"context"
	"encoding/json"
	"sync"
)

// Tool is a named, invocable capability that may read or mutate host
// application state. Implementations are constructed once and reused across
// calls; any shared state they hold must be internally synchronized, since
// calls may be concurrent.
type Tool interface {
	// Name returns the unique name the tool registers under.
	Name() string

	// Description returns human-readable text describing the tool.
	Description() string

	// InputSchema returns a JSON Schema describing accepted arguments.
	// A nil schema accepts any arguments.
	InputSchema() json.RawMessage

	// Execute runs the tool with validated arguments. Business-level
	// failures are reported inside the result envelope with IsError set;
	// an error return is reserved for faults the tool could not express
	// as a result.
	Execute(ctx context.Context, call CallContext, args map[string]any) (*ToolCallResult, error)
}

// ToolRegistry maps unique tool names to tool implementations. All methods
// are safe for concurrent use; a lookup racing a registration observes either
// the old or the new mapping, never a corrupted one.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string // registration order, for stable enumeration
}

// NewToolRegistry creates an empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// Register inserts the tool by name. Registering a name that already exists
// replaces the previous instance (last write wins).
func (r *ToolRegistry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Unregister removes the entry if present; absent names are a no-op.
func (r *ToolRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		return
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Has reports whether a tool is registered under name.
func (r *ToolRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Get returns the tool registered under name, or false if absent.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// GetAll returns all registered tools in registration order.
func (r *ToolRegistry) GetAll() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}
