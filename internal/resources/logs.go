// file: internal/resources/logs.go
package resources

import (
	"context"

	"github.com/scenebridge/scenebridge/internal/logbuffer"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// LogTailURI is the registered URI of the log tail resource.
const LogTailURI = "app://logs/tail"

// LogTailResource serves the bounded tail of the retained host log buffer.
type LogTailResource struct {
	buffer *logbuffer.Buffer
}

// NewLogTailResource creates the log tail resource over the given buffer.
func NewLogTailResource(buffer *logbuffer.Buffer) *LogTailResource {
	return &LogTailResource{buffer: buffer}
}

// URI implements mcp.Resource.
func (r *LogTailResource) URI() string { return LogTailURI }

// Name implements mcp.Resource.
func (r *LogTailResource) Name() string { return "Log Tail" }

// Description implements mcp.Resource.
func (r *LogTailResource) Description() string {
	return "Most recent entries of the retained host application log."
}

// MimeType implements mcp.Resource.
func (r *LogTailResource) MimeType() string { return mcp.DefaultMimeType }

// Read implements mcp.Resource.
func (r *LogTailResource) Read(_ context.Context, _ string) (*mcp.ResourceReadResult, error) {
	return mcp.NewResourceJSONResult(r.buffer.Tail())
}
