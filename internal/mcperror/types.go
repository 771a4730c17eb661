// Package mcperror defines error types, codes, and utilities for the MCP protocol layer.
// file: internal/mcperror/types.go
package mcperror

import (
	"github.com/cockroachdb/errors"
)

// Base sentinel errors used throughout the application.
var (
	// ErrResourceNotFound is returned for resources/read on an unregistered URI.
	ErrResourceNotFound = errors.WithProperty(
		errors.New("resource not found"),
		"category", CategoryResource,
		"code", CodeResourceNotFound,
	)

	// ErrToolNotFound marks internal tool lookup failures. The handler maps
	// it to an in-band error result rather than surfacing it to transport.
	ErrToolNotFound = errors.WithProperty(
		errors.New("tool not found"),
		"category", CategoryTool,
		"code", CodeToolNotFound,
	)

	// ErrInvalidArguments is returned for structurally malformed request params.
	ErrInvalidArguments = errors.WithProperty(
		errors.New("invalid arguments"),
		"category", CategoryRPC,
		"code", CodeInvalidParams,
	)

	// ErrRequestSequence is returned when strict handshake gating rejects a
	// request received before a successful initialize.
	ErrRequestSequence = errors.WithProperty(
		errors.New("request out of sequence"),
		"category", CategoryRPC,
		"code", CodeRequestSequence,
	)

	// ErrTimeout is returned when a call context ends before completion.
	ErrTimeout = errors.WithProperty(
		errors.New("operation timed out"),
		"category", CategoryRPC,
		"code", CodeTimeoutError,
	)
)

// withProperties attaches the given key/value properties to err.
func withProperties(err error, properties map[string]interface{}) error {
	for key, value := range properties {
		err = errors.WithProperty(err, key, value)
	}
	return err
}

// NewResourceError creates a new resource-related error with context.
// Example usage:
//
//	properties := map[string]interface{}{"resource_uri": "app://scene/graph"}
//	return mcperror.NewResourceError("failed to read scene graph", err, properties)
func NewResourceError(message string, cause error, properties map[string]interface{}) error {
	base := errors.Newf("%s", message)
	if cause != nil {
		base = errors.Wrapf(errors.Mark(cause, ErrResourceNotFound), "%s", message)
	}
	err := errors.WithProperty(base,
		"category", CategoryResource,
		"code", CodeResourceNotFound,
	)
	return withProperties(err, properties)
}

// NewResourceNotFoundError creates the canonical not-found error for an
// unregistered resource URI.
func NewResourceNotFoundError(uri string, properties map[string]interface{}) error {
	err := errors.WithProperty(
		errors.Wrapf(ErrResourceNotFound, "resource '%s' not found", uri),
		"category", CategoryResource,
		"code", CodeResourceNotFound,
		"resource_uri", uri,
	)
	return withProperties(err, properties)
}

// NewToolError creates a new tool-related error with context.
// Example usage:
//
//	properties := map[string]interface{}{"tool_name": "create_asset"}
//	return mcperror.NewToolError("failed to execute tool", err, properties)
func NewToolError(message string, cause error, properties map[string]interface{}) error {
	base := errors.Newf("%s", message)
	if cause != nil {
		base = errors.Wrapf(errors.Mark(cause, ErrToolNotFound), "%s", message)
	}
	err := errors.WithProperty(base,
		"category", CategoryTool,
		"code", CodeToolNotFound,
	)
	return withProperties(err, properties)
}

// NewToolNotFoundError creates the canonical not-found error for an
// unregistered tool name.
func NewToolNotFoundError(name string, properties map[string]interface{}) error {
	err := errors.WithProperty(
		errors.Wrapf(ErrToolNotFound, "tool '%s' not found", name),
		"category", CategoryTool,
		"code", CodeToolNotFound,
		"tool_name", name,
	)
	return withProperties(err, properties)
}

// NewInvalidArgumentsError creates a new invalid arguments error with context.
// Example usage:
//
//	properties := map[string]interface{}{"argument": "protocolVersion", "expected": "string"}
//	return mcperror.NewInvalidArgumentsError("missing protocol version", properties)
func NewInvalidArgumentsError(message string, properties map[string]interface{}) error {
	err := errors.WithProperty(
		errors.Wrapf(ErrInvalidArguments, "%s", message),
		"category", CategoryRPC,
		"code", CodeInvalidParams,
	)
	return withProperties(err, properties)
}

// NewMethodNotFoundError creates a new method not found error with context.
func NewMethodNotFoundError(method string, properties map[string]interface{}) error {
	err := errors.WithProperty(
		errors.Newf("method '%s' not found", method),
		"category", CategoryRPC,
		"code", CodeMethodNotFound,
		"method", method,
	)
	return withProperties(err, properties)
}

// NewRequestSequenceError creates an out-of-sequence error for strict
// handshake gating.
func NewRequestSequenceError(method, state string) error {
	return errors.WithProperty(
		errors.Wrapf(ErrRequestSequence, "method '%s' not allowed in state '%s'", method, state),
		"category", CategoryRPC,
		"code", CodeRequestSequence,
		"method", method,
		"state", state,
	)
}

// NewTimeoutError creates a new timeout error with context.
func NewTimeoutError(message string, properties map[string]interface{}) error {
	err := errors.WithProperty(
		errors.Wrapf(ErrTimeout, "%s", message),
		"category", CategoryRPC,
		"code", CodeTimeoutError,
	)
	return withProperties(err, properties)
}
