// Package host defines the boundary contracts between the protocol layer and
// the embedding application. Built-in tools and resources consume these
// interfaces; the application (or the in-memory reference host) provides them.
// file: internal/host/host.go
package host

import (
	"context"
	"time"
)

// SceneNode is one node of the application's scene graph. Children are owned
// by their parent; a node with no children has a nil slice.
type SceneNode struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Children []*SceneNode `json:"children,omitempty"`
}

// Asset describes one entry of the application's asset index.
type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// BuildConfig is the application's current build configuration.
type BuildConfig struct {
	Target        string   `json:"target"`
	Configuration string   `json:"configuration"`
	OutputPath    string   `json:"outputPath"`
	Defines       []string `json:"defines,omitempty"`
}

// LogEntry is one record of the application's log stream.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// LogFunc receives log entries from a LogSource subscription.
type LogFunc func(entry LogEntry)

// SceneQuerier exposes read access to the live scene graph.
type SceneQuerier interface {
	// SceneRoot returns the root of the current scene graph.
	SceneRoot(ctx context.Context) (*SceneNode, error)

	// Selection returns the IDs of the currently selected nodes.
	Selection(ctx context.Context) ([]string, error)
}

// AssetIndex exposes read access to the application's asset index.
type AssetIndex interface {
	// Assets returns indexed assets, optionally filtered by type.
	// An empty assetType returns all assets.
	Assets(ctx context.Context, assetType string) ([]Asset, error)
}

// AssetMutator exposes the application's mutation surface for assets.
type AssetMutator interface {
	// CreateAsset creates a new asset and returns it.
	CreateAsset(ctx context.Context, name, assetType string) (*Asset, error)

	// ModifyAsset applies field changes to an existing asset and returns the
	// updated asset.
	ModifyAsset(ctx context.Context, id string, changes map[string]any) (*Asset, error)
}

// BuildInspector exposes read access to the current build configuration.
type BuildInspector interface {
	// CurrentBuildConfig returns the active build configuration.
	CurrentBuildConfig(ctx context.Context) (*BuildConfig, error)
}

// LogSource is the application's log stream. Subscribers receive every entry
// emitted after subscription; the returned function removes the subscription.
type LogSource interface {
	Subscribe(fn LogFunc) (unsubscribe func())
}
