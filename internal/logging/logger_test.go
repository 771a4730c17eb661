// file: internal/logging/logger_test.go
package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_ReturnsComponentLogger(t *testing.T) {
	logger := GetLogger("test")
	require.NotNil(t, logger, "GetLogger should never return nil.")
}

func TestInitLogging_WritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	InitLogging(LevelDebug, &buf)
	defer SetDefaultLogger(GetNoopLogger())

	logger := GetLogger("test_component")
	logger.Info("test message", "key1", "value1", "key2", 123)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "Log output should be a single JSON record.")

	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "test_component", entry["component"])
	assert.Equal(t, "value1", entry["key1"])
	assert.EqualValues(t, 123, entry["key2"])
}

func TestSetLevel_ControlsDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	InitLogging(LevelInfo, &buf)
	defer SetDefaultLogger(GetNoopLogger())

	assert.False(t, IsDebugEnabled(), "Debug should be disabled at info level.")
	GetLogger("test").Debug("suppressed")
	assert.Zero(t, buf.Len(), "Debug record should be suppressed at info level.")

	SetLevel(LevelDebug)
	assert.True(t, IsDebugEnabled(), "Debug should be enabled after SetLevel.")
	GetLogger("test").Debug("emitted")
	assert.NotZero(t, buf.Len(), "Debug record should be emitted at debug level.")
}
