// Package resources provides the built-in resources registered into the
// protocol handler at server start. Each resource serves a bounded snapshot
// of live host state: tree traversals are depth-capped, listings are
// count-capped, and log reads are tail-bounded, so a read can never grow
// without limit.
// file: internal/resources/resources.go
package resources

import (
	"net/url"
	"strings"

	"github.com/scenebridge/scenebridge/internal/config"
	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logbuffer"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// Host bundles the collaborator surfaces the built-in resources need.
type Host interface {
	host.SceneQuerier
	host.AssetIndex
	host.BuildInspector
}

// RegisterBuiltins registers the default resource set into the registry.
func RegisterBuiltins(registry *mcp.ResourceRegistry, h Host, logs *logbuffer.Buffer, cfg *config.Config, logger logging.Logger) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	registry.Register(NewSceneGraphResource(h, cfg.Snapshot.MaxTreeDepth, logger))
	registry.Register(NewAssetIndexResource(h, cfg.Snapshot.MaxListEntries, logger))
	registry.Register(NewLogTailResource(logs))
	registry.Register(NewBuildConfigResource(h))
}

// querySuffix extracts the ?key=value suffix from a raw request URI. Returns
// empty values when no suffix is present or it fails to parse; a malformed
// suffix reads the same as no suffix at all.
func querySuffix(rawURI string) url.Values {
	idx := strings.Index(rawURI, "?")
	if idx < 0 {
		return url.Values{}
	}
	values, err := url.ParseQuery(rawURI[idx+1:])
	if err != nil {
		return url.Values{}
	}
	return values
}
