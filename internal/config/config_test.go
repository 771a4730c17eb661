// file: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_HasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "SceneBridge", cfg.Server.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Protocol.StrictHandshake, "Strict handshake should be off by default.")
	assert.Equal(t, 1000, cfg.LogBuffer.Capacity)
	assert.Equal(t, 100, cfg.LogBuffer.ReadLimit)
	assert.Equal(t, 5, cfg.Snapshot.MaxTreeDepth)
	assert.Equal(t, 100, cfg.Snapshot.MaxListEntries)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  name: "SceneBridge Test"
  port: 9999
protocol:
  strict_handshake: true
log_buffer:
  capacity: 200
  read_limit: 20
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "SceneBridge Test", cfg.Server.Name)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Protocol.StrictHandshake)
	assert.Equal(t, 200, cfg.LogBuffer.Capacity)
	assert.Equal(t, 20, cfg.LogBuffer.ReadLimit)
	// Untouched section keeps defaults.
	assert.Equal(t, 5, cfg.Snapshot.MaxTreeDepth)
}

func TestLoadFromFile_MissingFileFails(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFile_MalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides_TakePrecedence(t *testing.T) {
	t.Setenv("SCENEBRIDGE_SERVER_NAME", "EnvBridge")
	t.Setenv("SCENEBRIDGE_PORT", "7070")
	t.Setenv("SCENEBRIDGE_STRICT_HANDSHAKE", "true")

	cfg := DefaultConfig()
	assert.Equal(t, "EnvBridge", cfg.Server.Name)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.True(t, cfg.Protocol.StrictHandshake)
}

func TestEnvironmentOverrides_IgnoreInvalidValues(t *testing.T) {
	t.Setenv("SCENEBRIDGE_PORT", "not-a-port")
	t.Setenv("SCENEBRIDGE_LOG_CAPACITY", "-5")

	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Server.Port, "Invalid port override should be ignored.")
	assert.Equal(t, 1000, cfg.LogBuffer.Capacity, "Invalid capacity override should be ignored.")
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogBuffer.ReadLimit = cfg.LogBuffer.Capacity + 1
	assert.Error(t, cfg.Validate(), "Read limit above capacity should be rejected.")

	cfg = DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Snapshot.MaxTreeDepth = 0
	assert.Error(t, cfg.Validate())
}
