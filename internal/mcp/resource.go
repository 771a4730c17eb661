// file: internal/mcp/resource.go
package mcp

import (
	"context"
	"sync"
)

// Resource is a URI-keyed, read-only capability exposing a structured
// snapshot of host application state. Same ownership and concurrency rules
// as Tool: one instance, reused across calls, internally synchronized.
type Resource interface {
	// URI returns the unique URI the resource registers under (app:// scheme).
	URI() string

	// Name returns a short human-readable name.
	Name() string

	// Description returns human-readable text describing the resource.
	Description() string

	// MimeType returns the MIME type of the read payload.
	MimeType() string

	// Read produces the resource's current snapshot. The raw request URI is
	// passed through unchanged, including any ?key=value suffix; the resource
	// extracts whatever suffix parameters it recognizes.
	Read(ctx context.Context, uri string) (*ResourceReadResult, error)
}

// ResourceRegistry maps unique resource URIs to resource implementations.
// Identical contract to ToolRegistry, keyed by URI.
type ResourceRegistry struct {
	mu        sync.RWMutex
	resources map[string]Resource
	order     []string
}

// NewResourceRegistry creates an empty resource registry.
func NewResourceRegistry() *ResourceRegistry {
	return &ResourceRegistry{resources: make(map[string]Resource)}
}

// Register inserts the resource by URI; last write wins on duplicates.
func (r *ResourceRegistry) Register(resource Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uri := resource.URI()
	if _, exists := r.resources[uri]; !exists {
		r.order = append(r.order, uri)
	}
	r.resources[uri] = resource
}

// Unregister removes the entry if present; absent URIs are a no-op.
func (r *ResourceRegistry) Unregister(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resources[uri]; !exists {
		return
	}
	delete(r.resources, uri)
	for i, u := range r.order {
		if u == uri {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Has reports whether a resource is registered under uri.
func (r *ResourceRegistry) Has(uri string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resources[uri]
	return ok
}

// Get returns the resource registered under uri, or false if absent.
func (r *ResourceRegistry) Get(uri string) (Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resource, ok := r.resources[uri]
	return resource, ok
}

// GetAll returns all registered resources in registration order.
func (r *ResourceRegistry) GetAll() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resource, 0, len(r.order))
	for _, uri := range r.order {
		out = append(out, r.resources[uri])
	}
	return out
}
