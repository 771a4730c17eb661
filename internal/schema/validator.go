// Package schema validates tool call arguments against each tool's declared
// JSON input schema. Compiled schemas are cached per tool and recompiled only
// when the declared schema changes (tool registration is last-write-wins).
// file: internal/schema/validator.go
package schema

import (
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcperror"
)

// compiledEntry pairs a compiled schema with the source bytes it came from.
type compiledEntry struct {
	source   string
	compiled *jsonschema.Schema
}

// Validator compiles and caches tool input schemas. Safe for concurrent use.
type Validator struct {
	mu      sync.Mutex
	entries map[string]*compiledEntry
	logger  logging.Logger
}

// NewValidator creates an empty validator.
func NewValidator(logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &Validator{
		entries: make(map[string]*compiledEntry),
		logger:  logger.WithField("component", "schema_validator"),
	}
}

// ValidateArguments checks args against the tool's input schema. A nil or
// empty schema accepts anything. A schema that fails to compile is treated as
// pass-through: a tool author's broken schema must not make the tool
// uncallable, so the problem is logged and validation is skipped.
// Violations are returned as invalid-arguments errors.
func (v *Validator) ValidateArguments(toolName string, schemaJSON json.RawMessage, args map[string]any) error {
	if len(schemaJSON) == 0 {
		return nil
	}

	compiled, err := v.compile(toolName, schemaJSON)
	if err != nil {
		v.logger.Warn("Tool input schema failed to compile; skipping validation.",
			"tool", toolName, "error", err)
		return nil
	}

	// Round-trip through JSON so argument values use the decoded JSON type
	// system the validator expects, regardless of how the caller built them.
	encoded, err := json.Marshal(args)
	if err != nil {
		return mcperror.NewInvalidArgumentsError(
			"tool arguments are not JSON-serializable",
			map[string]interface{}{"tool_name": toolName},
		)
	}
	var instance any
	if err := json.Unmarshal(encoded, &instance); err != nil {
		return mcperror.NewInvalidArgumentsError(
			"tool arguments are not valid JSON",
			map[string]interface{}{"tool_name": toolName},
		)
	}
	if instance == nil {
		instance = map[string]any{}
	}

	if err := compiled.Validate(instance); err != nil {
		return mcperror.NewInvalidArgumentsError(
			"tool arguments do not match input schema",
			map[string]interface{}{
				"tool_name": toolName,
				"detail":    err.Error(),
			},
		)
	}
	return nil
}

// compile returns the cached compiled schema for the tool, recompiling when
// the source bytes differ from the cached ones.
func (v *Validator) compile(toolName string, schemaJSON json.RawMessage) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	source := string(schemaJSON)
	if entry, ok := v.entries[toolName]; ok && entry.source == source {
		return entry.compiled, nil
	}

	compiled, err := jsonschema.CompileString(toolName+".schema.json", source)
	if err != nil {
		return nil, err
	}
	v.entries[toolName] = &compiledEntry{source: source, compiled: compiled}
	return compiled, nil
}
