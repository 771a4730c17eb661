// file: internal/host/memory.go
package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// MemoryHost is an in-memory implementation of every host interface. It backs
// the default server wiring and the test suites. All state is guarded by one
// mutex; calls may arrive concurrently from the protocol layer.
type MemoryHost struct {
	mu          sync.RWMutex
	sceneRoot   *SceneNode
	selection   []string
	assets      []Asset
	buildConfig BuildConfig
	nextAssetID int

	subMu       sync.Mutex
	subscribers map[int]LogFunc
	nextSubID   int
}

// Interface conformance.
var (
	_ SceneQuerier   = (*MemoryHost)(nil)
	_ AssetIndex     = (*MemoryHost)(nil)
	_ AssetMutator   = (*MemoryHost)(nil)
	_ BuildInspector = (*MemoryHost)(nil)
	_ LogSource      = (*MemoryHost)(nil)
)

// NewMemoryHost creates an empty in-memory host with a minimal default scene.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		sceneRoot: &SceneNode{ID: "root", Name: "Scene", Type: "scene"},
		buildConfig: BuildConfig{
			Target:        "standalone",
			Configuration: "Debug",
			OutputPath:    "build/",
		},
		subscribers: make(map[int]LogFunc),
	}
}

// SceneRoot returns a deep copy of the scene graph so callers can serialize
// it without holding the host lock.
func (h *MemoryHost) SceneRoot(_ context.Context) (*SceneNode, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.sceneRoot == nil {
		return nil, errors.New("no scene loaded")
	}
	return copyNode(h.sceneRoot), nil
}

// SetSceneRoot replaces the scene graph.
func (h *MemoryHost) SetSceneRoot(root *SceneNode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sceneRoot = root
}

// Selection returns the currently selected node IDs.
func (h *MemoryHost) Selection(_ context.Context) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.selection))
	copy(out, h.selection)
	return out, nil
}

// SetSelection replaces the current selection.
func (h *MemoryHost) SetSelection(ids []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selection = append([]string(nil), ids...)
}

// Assets returns indexed assets, optionally filtered by type.
func (h *MemoryHost) Assets(_ context.Context, assetType string) ([]Asset, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Asset, 0, len(h.assets))
	for _, a := range h.assets {
		if assetType == "" || a.Type == assetType {
			out = append(out, a)
		}
	}
	return out, nil
}

// AddAsset seeds the index with an existing asset.
func (h *MemoryHost) AddAsset(a Asset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.assets = append(h.assets, a)
}

// CreateAsset creates a new asset with a generated ID and path.
func (h *MemoryHost) CreateAsset(_ context.Context, name, assetType string) (*Asset, error) {
	if name == "" {
		return nil, errors.New("asset name must not be empty")
	}
	if assetType == "" {
		return nil, errors.New("asset type must not be empty")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextAssetID++
	asset := Asset{
		ID:   fmt.Sprintf("asset-%d", h.nextAssetID),
		Name: name,
		Type: assetType,
		Path: fmt.Sprintf("assets/%s/%s", assetType, name),
	}
	h.assets = append(h.assets, asset)
	return &asset, nil
}

// ModifyAsset applies recognized field changes to an existing asset.
// Unknown change keys are rejected rather than silently dropped.
func (h *MemoryHost) ModifyAsset(_ context.Context, id string, changes map[string]any) (*Asset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.assets {
		if h.assets[i].ID != id {
			continue
		}
		for key, value := range changes {
			str, ok := value.(string)
			if !ok {
				return nil, errors.Newf("change '%s' must be a string", key)
			}
			switch key {
			case "name":
				h.assets[i].Name = str
			case "path":
				h.assets[i].Path = str
			default:
				return nil, errors.Newf("unknown asset field: %s", key)
			}
		}
		asset := h.assets[i]
		return &asset, nil
	}
	return nil, errors.Newf("asset '%s' not found", id)
}

// CurrentBuildConfig returns the active build configuration.
func (h *MemoryHost) CurrentBuildConfig(_ context.Context) (*BuildConfig, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cfg := h.buildConfig
	cfg.Defines = append([]string(nil), h.buildConfig.Defines...)
	return &cfg, nil
}

// SetBuildConfig replaces the active build configuration.
func (h *MemoryHost) SetBuildConfig(cfg BuildConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buildConfig = cfg
}

// Subscribe registers a log subscriber and returns its removal function.
func (h *MemoryHost) Subscribe(fn LogFunc) func() {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	h.nextSubID++
	id := h.nextSubID
	h.subscribers[id] = fn
	return func() {
		h.subMu.Lock()
		defer h.subMu.Unlock()
		delete(h.subscribers, id)
	}
}

// Log emits an entry to all current subscribers. Safe for concurrent use.
func (h *MemoryHost) Log(level, message string) {
	entry := LogEntry{Timestamp: time.Now(), Level: level, Message: message}
	h.subMu.Lock()
	fns := make([]LogFunc, 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		fns = append(fns, fn)
	}
	h.subMu.Unlock()
	for _, fn := range fns {
		fn(entry)
	}
}

// copyNode deep-copies a scene subtree.
func copyNode(n *SceneNode) *SceneNode {
	out := &SceneNode{ID: n.ID, Name: n.Name, Type: n.Type}
	for _, child := range n.Children {
		out.Children = append(out.Children, copyNode(child))
	}
	return out
}
