// file: internal/jsonrpc/dispatcher.go
package jsonrpc

import (
	"context"
	"encoding/json"

	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
	"github.com/scenebridge/scenebridge/internal/mcperror"
)

// Dispatcher decodes JSON-RPC messages, routes the protocol methods to the
// handler, and encodes responses. It is stateless across messages and safe
// for concurrent use.
type Dispatcher struct {
	handler *mcp.Handler
	logger  logging.Logger
}

// NewDispatcher creates a dispatcher over the given protocol handler.
func NewDispatcher(handler *mcp.Handler, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &Dispatcher{
		handler: handler,
		logger:  logger.WithField("component", "jsonrpc_dispatcher"),
	}
}

// HandleMessage processes one raw JSON-RPC message and returns the encoded
// response, or nil for notifications. Every failure mode produces a
// structurally valid JSON-RPC error response; nothing escapes as a raw error.
func (d *Dispatcher) HandleMessage(ctx context.Context, message []byte) []byte {
	var req Request
	if err := json.Unmarshal(message, &req); err != nil {
		d.logger.Debug("Failed to parse JSON-RPC message.", "error", err)
		return d.encode(newErrorResponse(nil, &ErrorObject{
			Code:    mcperror.CodeParseError,
			Message: mcperror.UserFacingMessage(mcperror.CodeParseError),
		}))
	}

	if req.JSONRPC != Version || req.Method == "" {
		return d.encode(newErrorResponse(req.ID, &ErrorObject{
			Code:    mcperror.CodeInvalidRequest,
			Message: mcperror.UserFacingMessage(mcperror.CodeInvalidRequest),
		}))
	}

	result, err := d.dispatch(ctx, &req)
	if req.IsNotification() {
		if err != nil {
			d.logger.Debug("Notification handling failed.", "method", req.Method, "error", err)
		}
		return nil
	}
	if err != nil {
		return d.encode(newErrorResponse(req.ID, errorObjectFrom(err)))
	}
	return d.encode(newResultResponse(req.ID, result))
}

// dispatch routes the request to the protocol handler.
func (d *Dispatcher) dispatch(ctx context.Context, req *Request) (any, error) {
	switch req.Method {
	case "initialize":
		var params mcp.InitializeRequest
		if err := decodeParams(req.Params, &params); err != nil {
			return nil, err
		}
		return d.handler.Initialize(ctx, &params)

	case "tools/list":
		return d.handler.ListTools(ctx)

	case "tools/call":
		var params mcp.CallToolRequest
		if err := decodeParams(req.Params, &params); err != nil {
			return nil, err
		}
		return d.handler.CallTool(ctx, &params)

	case "resources/list":
		return d.handler.ListResources(ctx)

	case "resources/read":
		var params mcp.ReadResourceRequest
		if err := decodeParams(req.Params, &params); err != nil {
			return nil, err
		}
		return d.handler.ReadResource(ctx, &params)

	default:
		return nil, mcperror.NewMethodNotFoundError(req.Method, nil)
	}
}

// decodeParams unmarshals request params into dst, converting decode
// failures to invalid-params errors.
func decodeParams(params json.RawMessage, dst any) error {
	if len(params) == 0 {
		return mcperror.NewInvalidArgumentsError("params missing", nil)
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return mcperror.NewInvalidArgumentsError("params malformed", map[string]interface{}{
			"detail": err.Error(),
		})
	}
	return nil
}

// errorObjectFrom maps an internal error to a wire error object using the
// code and data properties attached through mcperror.
func errorObjectFrom(err error) *ErrorObject {
	m := mcperror.ErrorToMap(err)
	obj := &ErrorObject{
		Code:    m["code"].(int),
		Message: m["message"].(string),
	}
	if data, ok := m["data"]; ok {
		obj.Data = data
	}
	return obj
}

// encode serializes a response. Encoding can only fail on unserializable
// results, which the envelope types rule out; a failure is logged and
// converted to an internal error response.
func (d *Dispatcher) encode(resp *Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		d.logger.Error("Failed to encode JSON-RPC response.", "error", err)
		fallback, _ := json.Marshal(newErrorResponse(resp.ID, &ErrorObject{
			Code:    mcperror.CodeInternalError,
			Message: mcperror.UserFacingMessage(mcperror.CodeInternalError),
		}))
		return fallback
	}
	return data
}
