// Package jsonrpc implements the JSON-RPC 2.0 framing between a transport
// and the protocol handler: message types, the method dispatcher, and the
// mapping from internal errors to wire error objects.
// file: internal/jsonrpc/types.go
package jsonrpc

import (
	"encoding/json"
)

// Version is the JSON-RPC protocol version marker.
const Version = "2.0"

// Request is an incoming JSON-RPC request or notification. A nil ID marks a
// notification, which receives no response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no ID.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Response is an outgoing JSON-RPC response. Exactly one of Result and Error
// is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject is the JSON-RPC error member.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// newResultResponse builds a success response for the given request ID.
func newResultResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: Version, ID: normalizeID(id), Result: result}
}

// newErrorResponse builds an error response for the given request ID.
func newErrorResponse(id json.RawMessage, errObj *ErrorObject) *Response {
	return &Response{JSONRPC: Version, ID: normalizeID(id), Error: errObj}
}

// normalizeID substitutes the JSON null ID for requests whose ID was absent
// or unparseable, as required for error responses to unidentifiable requests.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
