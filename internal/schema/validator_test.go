// file: internal/schema/validator_test.go
package schema

import (
	"encoding/json"
	"testing"

	"github.com/scenebridge/scenebridge/internal/mcperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"assetType": {"type": "string", "enum": ["material", "prefab", "animation"]}
	},
	"required": ["name", "assetType"]
}`

func TestValidateArguments_AcceptsConformingArgs(t *testing.T) {
	v := NewValidator(nil)
	err := v.ValidateArguments("create_asset", json.RawMessage(assetSchema), map[string]any{
		"name":      "hero",
		"assetType": "material",
	})
	assert.NoError(t, err)
}

func TestValidateArguments_RejectsMissingRequiredField(t *testing.T) {
	v := NewValidator(nil)
	err := v.ValidateArguments("create_asset", json.RawMessage(assetSchema), map[string]any{
		"name": "hero",
	})
	require.Error(t, err)
	assert.True(t, mcperror.IsInvalidArgumentsError(err), "Violations surface as invalid-arguments errors.")
}

func TestValidateArguments_RejectsWrongType(t *testing.T) {
	v := NewValidator(nil)
	err := v.ValidateArguments("create_asset", json.RawMessage(assetSchema), map[string]any{
		"name":      42,
		"assetType": "material",
	})
	assert.Error(t, err)
}

func TestValidateArguments_EmptySchemaAcceptsAnything(t *testing.T) {
	v := NewValidator(nil)
	assert.NoError(t, v.ValidateArguments("ping", nil, map[string]any{"anything": true}))
	assert.NoError(t, v.ValidateArguments("ping", json.RawMessage(""), nil))
}

func TestValidateArguments_BrokenSchemaPassesThrough(t *testing.T) {
	v := NewValidator(nil)
	err := v.ValidateArguments("broken", json.RawMessage(`{"type": ["not-a-type"`), map[string]any{"x": 1})
	assert.NoError(t, err, "A schema that fails to compile must not make the tool uncallable.")
}

func TestValidateArguments_RecompilesWhenSchemaChanges(t *testing.T) {
	v := NewValidator(nil)
	first := json.RawMessage(`{"type": "object", "required": ["a"]}`)
	second := json.RawMessage(`{"type": "object", "required": ["b"]}`)

	assert.Error(t, v.ValidateArguments("tool", first, map[string]any{"b": 1}))
	assert.NoError(t, v.ValidateArguments("tool", second, map[string]any{"b": 1}),
		"Replacing a tool's schema must take effect on the next call.")
}
