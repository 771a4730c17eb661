// Package tools provides the built-in tools registered into the protocol
// handler at server start. Each tool wraps one call into the host
// application's query or mutation surface.
// file: internal/tools/tools.go
package tools

import (
	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// Host bundles the collaborator surfaces the built-in tools need.
type Host interface {
	host.SceneQuerier
	host.AssetMutator
}

// RegisterBuiltins registers the default tool set into the registry.
func RegisterBuiltins(registry *mcp.ToolRegistry, h Host, logger logging.Logger) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	registry.Register(NewPingTool())
	registry.Register(NewCreateAssetTool(h, logger))
	registry.Register(NewModifyAssetTool(h, logger))
	registry.Register(NewGetSelectionTool(h, logger))
}
