// file: internal/tools/assets.go
package tools

import (
	"context"
	"encoding/json"

	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
)

// CreateAssetTool creates a new asset through the host's mutation surface.
type CreateAssetTool struct {
	mutator host.AssetMutator
	logger  logging.Logger
}

// NewCreateAssetTool creates the create_asset tool.
func NewCreateAssetTool(mutator host.AssetMutator, logger logging.Logger) *CreateAssetTool {
	return &CreateAssetTool{
		mutator: mutator,
		logger:  logger.WithField("tool", "create_asset"),
	}
}

// Name implements mcp.Tool.
func (t *CreateAssetTool) Name() string { return "create_asset" }

// Description implements mcp.Tool.
func (t *CreateAssetTool) Description() string {
	return "Creates a new asset of the given type in the host application."
}

// InputSchema implements mcp.Tool.
func (t *CreateAssetTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "Asset name."},
			"assetType": {"type": "string", "description": "Asset type, e.g. material or prefab."}
		},
		"required": ["name", "assetType"]
	}`)
}

// Execute implements mcp.Tool.
func (t *CreateAssetTool) Execute(ctx context.Context, call mcp.CallContext, args map[string]any) (*mcp.ToolCallResult, error) {
	name, _ := args["name"].(string)
	assetType, _ := args["assetType"].(string)

	asset, err := t.mutator.CreateAsset(ctx, name, assetType)
	if err != nil {
		t.logger.Warn("Asset creation failed.", "callID", call.CallID, "name", name, "error", err)
		return mcp.NewToolCallErrorf("Failed to create asset: %v", err), nil
	}
	t.logger.Info("Asset created.", "callID", call.CallID, "assetID", asset.ID)
	return mcp.NewToolCallJSONResult(asset), nil
}

// ModifyAssetTool applies field changes to an existing asset.
type ModifyAssetTool struct {
	mutator host.AssetMutator
	logger  logging.Logger
}

// NewModifyAssetTool creates the modify_asset tool.
func NewModifyAssetTool(mutator host.AssetMutator, logger logging.Logger) *ModifyAssetTool {
	return &ModifyAssetTool{
		mutator: mutator,
		logger:  logger.WithField("tool", "modify_asset"),
	}
}

// Name implements mcp.Tool.
func (t *ModifyAssetTool) Name() string { return "modify_asset" }

// Description implements mcp.Tool.
func (t *ModifyAssetTool) Description() string {
	return "Applies field changes to an existing asset by ID."
}

// InputSchema implements mcp.Tool.
func (t *ModifyAssetTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {"type": "string", "description": "Asset ID."},
			"changes": {
				"type": "object",
				"description": "Field name to new value. Supported fields: name, path.",
				"additionalProperties": {"type": "string"}
			}
		},
		"required": ["id", "changes"]
	}`)
}

// Execute implements mcp.Tool.
func (t *ModifyAssetTool) Execute(ctx context.Context, call mcp.CallContext, args map[string]any) (*mcp.ToolCallResult, error) {
	id, _ := args["id"].(string)
	changes, _ := args["changes"].(map[string]any)

	asset, err := t.mutator.ModifyAsset(ctx, id, changes)
	if err != nil {
		t.logger.Warn("Asset modification failed.", "callID", call.CallID, "assetID", id, "error", err)
		return mcp.NewToolCallErrorf("Failed to modify asset '%s': %v", id, err), nil
	}
	return mcp.NewToolCallJSONResult(asset), nil
}
