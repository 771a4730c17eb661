// Package mcp implements the protocol core: the initialize handshake, the
// tool and resource registries, request dispatch, and the result/error
// envelope contract.
// file: internal/mcp/types.go
package mcp

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the protocol revision this server implements. The
// initialize result echoes the client's requested version; this constant is
// what the server reports when the client omits one.
const ProtocolVersion = "2024-11-05"

// DefaultMimeType is the MIME type resources default to.
const DefaultMimeType = "application/json"

// ContentItem is one entry of a tool result's content sequence.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolCallResult is the uniform envelope every tool call returns. When
// IsError is true, Content[0].Text carries a human-readable diagnostic.
type ToolCallResult struct {
	IsError bool          `json:"isError"`
	Content []ContentItem `json:"content"`
}

// NewToolCallResult builds a success envelope with a single text item.
func NewToolCallResult(text string) *ToolCallResult {
	return &ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: text}},
	}
}

// NewToolCallErrorf builds an error envelope with a formatted diagnostic.
func NewToolCallErrorf(format string, args ...any) *ToolCallResult {
	return &ToolCallResult{
		IsError: true,
		Content: []ContentItem{{Type: "text", Text: fmt.Sprintf(format, args...)}},
	}
}

// NewToolCallJSONResult serializes payload to JSON and wraps it in a success
// envelope. Serialization failure yields an error envelope instead.
func NewToolCallJSONResult(payload any) *ToolCallResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return NewToolCallErrorf("failed to serialize tool result: %v", err)
	}
	return NewToolCallResult(string(data))
}

// ResourceReadResult is the envelope a resource read returns.
type ResourceReadResult struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// NewResourceJSONResult serializes payload to JSON inside a read envelope.
func NewResourceJSONResult(payload any) (*ResourceReadResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &ResourceReadResult{MimeType: DefaultMimeType, Text: string(data)}, nil
}

// Implementation names a client or server and its version.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ListChangedCapability advertises that the server may emit notifications
// when the corresponding capability set changes.
type ListChangedCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerCapabilities advertises the server's capability surface.
type ServerCapabilities struct {
	Tools     ListChangedCapability `json:"tools"`
	Resources ListChangedCapability `json:"resources"`
}

// InitializeRequest is the handshake request.
type InitializeRequest struct {
	ProtocolVersion string         `json:"protocolVersion"`
	ClientInfo      Implementation `json:"clientInfo"`
}

// InitializeResult is the handshake response.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Capabilities    ServerCapabilities `json:"capabilities"`
}

// ToolDescriptor is one entry of a tools/list result.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ListToolsResult is the tools/list response.
type ListToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ResourceDescriptor is one entry of a resources/list result.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// ListResourcesResult is the resources/list response.
type ListResourcesResult struct {
	Resources []ResourceDescriptor `json:"resources"`
}

// CallToolRequest is the tools/call request.
type CallToolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ReadResourceRequest is the resources/read request.
type ReadResourceRequest struct {
	URI string `json:"uri"`
}
