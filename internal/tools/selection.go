// file: internal/tools/selection.go
package tools

import (
	"context"
	"encoding/json"

	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// GetSelectionTool reports the node IDs currently selected in the host.
type GetSelectionTool struct {
	querier host.SceneQuerier
	logger  logging.Logger
}

// NewGetSelectionTool creates the get_selection tool.
func NewGetSelectionTool(querier host.SceneQuerier, logger logging.Logger) *GetSelectionTool {
	return &GetSelectionTool{
		querier: querier,
		logger:  logger.WithField("tool", "get_selection"),
	}
}

// Name implements mcp.Tool.
func (t *GetSelectionTool) Name() string { return "get_selection" }

// Description implements mcp.Tool.
func (t *GetSelectionTool) Description() string {
	return "Returns the IDs of the scene nodes currently selected in the host application."
}

// InputSchema implements mcp.Tool.
func (t *GetSelectionTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

// Execute implements mcp.Tool.
func (t *GetSelectionTool) Execute(ctx context.Context, call mcp.CallContext, _ map[string]any) (*mcp.ToolCallResult, error) {
	selection, err := t.querier.Selection(ctx)
	if err != nil {
		t.logger.Warn("Selection query failed.", "callID", call.CallID, "error", err)
		return mcp.NewToolCallErrorf("Failed to read selection: %v", err), nil
	}
	return mcp.NewToolCallJSONResult(map[string]any{
		"selection": selection,
		"count":     len(selection),
	}), nil
}
