// Package config loads tessera.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tessera.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultHeartbeat is the default websocket ping period.
	DefaultHeartbeat = "30s"

	// DefaultSnapshotTarget is the default snapshot output directory.
	DefaultSnapshotTarget = "snapshots"
)

// Config represents the complete tessera.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Snapshot contains snapshot publishing configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// PageTitle is the title of the served page.
	PageTitle string `json:"pageTitle,omitempty"`

	// Heartbeat is the websocket ping period (e.g. "30s").
	Heartbeat string `json:"heartbeat,omitempty"`

	// DisableMetrics turns off the /metrics endpoint.
	DisableMetrics bool `json:"disableMetrics,omitempty"`
}

// SnapshotConfig contains snapshot publishing settings.
type SnapshotConfig struct {
	// Target is where snapshots are published: a local directory path or
	// an s3://bucket/prefix URL.
	Target string `json:"target,omitempty"`

	// Region is the AWS region for s3:// targets.
	Region string `json:"region,omitempty"`
}

// Default creates a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      DefaultHost,
			Port:      DefaultPort,
			Heartbeat: DefaultHeartbeat,
		},
		Snapshot: SnapshotConfig{
			Target: DefaultSnapshotTarget,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// tessera.json in the directory; a missing file yields the defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	cfg, err := LoadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// HeartbeatInterval parses the configured heartbeat period.
func (c *Config) HeartbeatInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.Heartbeat)
	if err != nil {
		return 0, fmt.Errorf("parse heartbeat %q: %w", c.Server.Heartbeat, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("heartbeat %q must be positive", c.Server.Heartbeat)
	}
	return d, nil
}

// S3Target splits an s3:// snapshot target into bucket and key prefix.
// ok is false for local directory targets.
func (c *Config) S3Target() (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(c.Snapshot.Target, "s3://")
	if !found {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, true
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Heartbeat == "" {
		c.Server.Heartbeat = DefaultHeartbeat
	}
	if c.Snapshot.Target == "" {
		c.Snapshot.Target = DefaultSnapshotTarget
	}
}
