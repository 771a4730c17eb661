// Package config handles loading, parsing, and validating application configuration.
// It defines the structure for configuration settings, provides default values,
// loads settings from files (YAML), and applies overrides from environment variables.
// file: internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/scenebridge/scenebridge/internal/logging"
	"gopkg.in/yaml.v3"
)

// ServerConfig contains settings for the server identity and transport.
type ServerConfig struct {
	// Name is the fixed server identity reported in the initialize result.
	Name string `yaml:"name"`
	// Version is the server version reported in the initialize result.
	Version string `yaml:"version"`
	// Port is the network port the HTTP bridge listens on.
	Port int `yaml:"port"`
}

// ProtocolConfig contains settings for protocol handler behavior.
type ProtocolConfig struct {
	// StrictHandshake, when true, rejects tools/resources requests received
	// before a successful initialize. Off by default to match the reference
	// behavior of accepting out-of-order callers.
	StrictHandshake bool `yaml:"strict_handshake"`
}

// LogBufferConfig contains settings for the retained host log ring buffer.
type LogBufferConfig struct {
	// Capacity is the number of log entries retained. Older entries are
	// evicted once the buffer is full.
	Capacity int `yaml:"capacity"`
	// ReadLimit is the maximum number of entries a single read returns,
	// counted from the most recent.
	ReadLimit int `yaml:"read_limit"`
}

// SnapshotConfig bounds the size of state snapshots served by resources.
type SnapshotConfig struct {
	// MaxTreeDepth caps scene graph traversal. Nodes at the boundary omit
	// their children rather than erroring.
	MaxTreeDepth int `yaml:"max_tree_depth"`
	// MaxListEntries caps flat listings such as the asset index.
	MaxListEntries int `yaml:"max_list_entries"`
}

// Config is the root configuration structure for the SceneBridge server.
type Config struct {
	// Server holds identity and transport settings.
	Server ServerConfig `yaml:"server"`
	// Protocol holds protocol handler settings.
	Protocol ProtocolConfig `yaml:"protocol"`
	// LogBuffer holds retained-log settings.
	LogBuffer LogBufferConfig `yaml:"log_buffer"`
	// Snapshot holds snapshot bounding settings.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// DefaultConfig returns a configuration populated with default values.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Name:    "SceneBridge",
			Version: "0.3.0",
			Port:    8080,
		},
		Protocol: ProtocolConfig{
			StrictHandshake: false,
		},
		LogBuffer: LogBufferConfig{
			Capacity:  1000,
			ReadLimit: 100,
		},
		Snapshot: SnapshotConfig{
			MaxTreeDepth:   5,
			MaxListEntries: 100,
		},
	}
	applyEnvironmentOverrides(cfg, logging.GetLogger("config_default"))
	return cfg
}

// LoadFromFile loads configuration from the specified YAML file path.
// It starts with default values, merges the values from the YAML file,
// and finally applies any environment variable overrides.
// Supports '~' expansion in the file path.
func LoadFromFile(path string) (*Config, error) {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get home directory to expand path")
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// #nosec G304 -- Path comes from command-line flag or default, considered trusted input.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	config := defaultsWithoutEnv()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file YAML: %s", path)
	}

	// Environment variables take precedence over file values.
	applyEnvironmentOverrides(config, logging.GetLogger("config_load"))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return errors.New("server name must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port >= 65536 {
		return errors.Newf("server port out of range: %d", c.Server.Port)
	}
	if c.LogBuffer.Capacity <= 0 {
		return errors.Newf("log buffer capacity must be positive: %d", c.LogBuffer.Capacity)
	}
	if c.LogBuffer.ReadLimit <= 0 || c.LogBuffer.ReadLimit > c.LogBuffer.Capacity {
		return errors.Newf("log buffer read limit out of range: %d", c.LogBuffer.ReadLimit)
	}
	if c.Snapshot.MaxTreeDepth <= 0 {
		return errors.Newf("snapshot tree depth must be positive: %d", c.Snapshot.MaxTreeDepth)
	}
	if c.Snapshot.MaxListEntries <= 0 {
		return errors.Newf("snapshot list cap must be positive: %d", c.Snapshot.MaxListEntries)
	}
	return nil
}

// defaultsWithoutEnv builds the default config without applying environment
// overrides, so file values are not clobbered before the final override pass.
func defaultsWithoutEnv() *Config {
	return &Config{
		Server:    ServerConfig{Name: "SceneBridge", Version: "0.3.0", Port: 8080},
		Protocol:  ProtocolConfig{StrictHandshake: false},
		LogBuffer: LogBufferConfig{Capacity: 1000, ReadLimit: 100},
		Snapshot:  SnapshotConfig{MaxTreeDepth: 5, MaxListEntries: 100},
	}
}

// applyEnvironmentOverrides applies configuration overrides from environment variables.
// Environment variables take precedence over values set in configuration files or defaults.
func applyEnvironmentOverrides(config *Config, logger logging.Logger) {
	if serverName := os.Getenv("SCENEBRIDGE_SERVER_NAME"); serverName != "" {
		logger.Debug("Overriding server name from environment.", "envVar", "SCENEBRIDGE_SERVER_NAME", "value", serverName)
		config.Server.Name = serverName
	}

	if portStr := os.Getenv("SCENEBRIDGE_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 && port < 65536 {
			logger.Debug("Overriding server port from environment.", "envVar", "SCENEBRIDGE_PORT", "value", port)
			config.Server.Port = port
		} else {
			logger.Warn("Invalid SCENEBRIDGE_PORT environment variable ignored.", "value", portStr, "error", err)
		}
	}

	if strictStr := os.Getenv("SCENEBRIDGE_STRICT_HANDSHAKE"); strictStr != "" {
		if strict, err := strconv.ParseBool(strictStr); err == nil {
			logger.Debug("Overriding strict handshake from environment.", "envVar", "SCENEBRIDGE_STRICT_HANDSHAKE", "value", strict)
			config.Protocol.StrictHandshake = strict
		} else {
			logger.Warn("Invalid SCENEBRIDGE_STRICT_HANDSHAKE environment variable ignored.", "value", strictStr)
		}
	}

	if capStr := os.Getenv("SCENEBRIDGE_LOG_CAPACITY"); capStr != "" {
		if capacity, err := strconv.Atoi(capStr); err == nil && capacity > 0 {
			logger.Debug("Overriding log buffer capacity from environment.", "envVar", "SCENEBRIDGE_LOG_CAPACITY", "value", capacity)
			config.LogBuffer.Capacity = capacity
		} else {
			logger.Warn("Invalid SCENEBRIDGE_LOG_CAPACITY environment variable ignored.", "value", capStr)
		}
	}
}
