// file: internal/tools/ping.go
package tools

import (
	"context"
	"encoding/json"

	"github.com/scenebridge/scenebridge/internal/mcp"
)

// PingTool answers with the message it was given. Useful as a connectivity
// probe and as the canonical zero-dependency tool in tests.
type PingTool struct{}

// NewPingTool creates the ping tool.
func NewPingTool() *PingTool {
	return &PingTool{}
}

// Name implements mcp.Tool.
func (t *PingTool) Name() string { return "ping" }

// Description implements mcp.Tool.
func (t *PingTool) Description() string {
	return "Echoes the given message back, confirming the server is reachable."
}

// InputSchema implements mcp.Tool.
func (t *PingTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"message": {"type": "string", "description": "Text to echo back."}
		}
	}`)
}

// Execute implements mcp.Tool.
func (t *PingTool) Execute(_ context.Context, _ mcp.CallContext, args map[string]any) (*mcp.ToolCallResult, error) {
	message, _ := args["message"].(string)
	if message == "" {
		message = "pong"
	}
	return mcp.NewToolCallJSONResult(map[string]string{"message": message}), nil
}
