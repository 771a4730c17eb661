// file: internal/resources/build.go
package resources

import (
	"context"

	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// BuildConfigURI is the registered URI of the build configuration resource.
const BuildConfigURI = "app://build/config"

// BuildConfigResource serves the host's current build configuration.
type BuildConfigResource struct {
	inspector host.BuildInspector
}

// NewBuildConfigResource creates the build configuration resource.
func NewBuildConfigResource(inspector host.BuildInspector) *BuildConfigResource {
	return &BuildConfigResource{inspector: inspector}
}

// URI implements mcp.Resource.
func (r *BuildConfigResource) URI() string { return BuildConfigURI }

// Name implements mcp.Resource.
func (r *BuildConfigResource) Name() string { return "Build Configuration" }

// Description implements mcp.Resource.
func (r *BuildConfigResource) Description() string {
	return "The host application's active build configuration."
}

// MimeType implements mcp.Resource.
func (r *BuildConfigResource) MimeType() string { return mcp.DefaultMimeType }

// Read implements mcp.Resource.
func (r *BuildConfigResource) Read(ctx context.Context, _ string) (*mcp.ResourceReadResult, error) {
	cfg, err := r.inspector.CurrentBuildConfig(ctx)
	if err != nil {
		return nil, err
	}
	return mcp.NewResourceJSONResult(cfg)
}
