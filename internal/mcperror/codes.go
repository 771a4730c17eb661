// Package mcperror defines error types, codes, and utilities for the MCP protocol layer.
// file: internal/mcperror/codes.go
package mcperror

// Error categories used as the "category" property on wrapped errors.
// Categories group errors for logging and transport mapping.
const (
	CategoryRPC      = "rpc"
	CategoryTool     = "tool"
	CategoryResource = "resource"
	CategoryHost     = "host"
)

// JSON-RPC 2.0 standard error codes, used as the "code" property on
// wrapped errors so the transport adapter can build error responses
// without inspecting error types.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Server-defined codes within the JSON-RPC implementation-reserved range.
const (
	// CodeRequestSequence signals a request received out of lifecycle order
	// (e.g. tools/call before initialize when strict handshake is enabled).
	CodeRequestSequence = -32001

	// CodeResourceNotFound signals a resources/read for an unregistered URI.
	// Note the asymmetry with tools: an unknown tool name is reported in-band
	// inside a ToolCallResult, never through this code.
	CodeResourceNotFound = -32002

	// CodeToolNotFound is attached to internal tool lookup failures. The
	// protocol handler converts these to in-band results before they ever
	// reach the transport.
	CodeToolNotFound = -32003

	// CodeTimeoutError signals that a call context ended before completion.
	CodeTimeoutError = -32004
)

// UserFacingMessage returns a stable, non-sensitive message for a code,
// suitable for inclusion in a JSON-RPC error response.
func UserFacingMessage(code int) string {
	switch code {
	case CodeParseError:
		return "Parse error"
	case CodeInvalidRequest:
		return "Invalid request"
	case CodeMethodNotFound:
		return "Method not found"
	case CodeInvalidParams:
		return "Invalid params"
	case CodeRequestSequence:
		return "Request out of sequence"
	case CodeResourceNotFound:
		return "Resource not found"
	case CodeToolNotFound:
		return "Tool not found"
	case CodeTimeoutError:
		return "Operation timed out"
	default:
		return "Internal error"
	}
}
