// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for timewarp commands.
//
// Configuration is loaded from a single file specified by:
//   - TIMEWARP_CONFIG environment variable, or
//   - --config flag passed to the command
//
// The file is optional. Without one, every command runs on the
// defaults, which point at a device image under the user's home
// directory. When a file is given, its values are the single source
// of truth; environment variables do not override them. The only
// expansion performed is ${VAR} and ${VAR:-default} in paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
	"gopkg.in/yaml.v3"
)

// Config is the master configuration for timewarp.
type Config struct {
	// Device configures the EEPROM device or image file.
	Device DeviceConfig `yaml:"device"`

	// Autosave configures the debounced settings writer.
	Autosave AutosaveConfig `yaml:"autosave"`

	// Snapshot configures snapshot file output.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// DeviceConfig configures the nonvolatile medium.
type DeviceConfig struct {
	// Path is the EEPROM device file (a sysfs eeprom node or a plain
	// image file).
	// Default: ${HOME}/.local/share/timewarp/eeprom.bin
	Path string `yaml:"path"`

	// Capacity is the medium size in bytes, used when creating a new
	// image file. An existing device reports its own size.
	// Default: 1024 (a 24LC08-class part)
	Capacity int64 `yaml:"capacity"`
}

// AutosaveConfig configures the debounced settings writer.
type AutosaveConfig struct {
	// Delay is how long the controls must stay quiet before a change
	// is written, as a Go duration string.
	// Default: 10s
	Delay string `yaml:"delay"`
}

// SnapshotConfig configures snapshot file output.
type SnapshotConfig struct {
	// Compression selects the medium image payload compression.
	// Values: "none", "lz4", "zstd"
	// Default: zstd
	Compression string `yaml:"compression"`
}

// compressionValues are the names accepted for snapshot.compression.
// They mirror the tags in lib/snapshot.
var compressionValues = []string{"none", "lz4", "zstd"}

// Default returns the default configuration. Commands run on these
// when no config file is present.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Device: DeviceConfig{
			Path:     filepath.Join(homeDir, ".local", "share", "timewarp", "eeprom.bin"),
			Capacity: 1024,
		},
		Autosave: AutosaveConfig{
			Delay: "10s",
		},
		Snapshot: SnapshotConfig{
			Compression: "zstd",
		},
	}
}

// Load loads configuration from the TIMEWARP_CONFIG environment
// variable, falling back to the defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("TIMEWARP_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values
// missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Device.Path = expandVars(c.Device.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// AutosaveDelay returns the parsed autosave quiet period.
func (c *Config) AutosaveDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Autosave.Delay)
	if err != nil {
		return 0, fmt.Errorf("autosave.delay: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("autosave.delay must be positive, got %s", c.Autosave.Delay)
	}
	return d, nil
}

// MinCapacity is the smallest medium that holds one settings slot.
const MinCapacity = int64(slotstore.MarkerWidth + settings.Size)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Device.Path == "" {
		errs = append(errs, fmt.Errorf("device.path is required"))
	}

	if c.Device.Capacity < MinCapacity {
		errs = append(errs, fmt.Errorf("device.capacity %d cannot hold a settings slot (need at least %d bytes)",
			c.Device.Capacity, MinCapacity))
	}

	if _, err := c.AutosaveDelay(); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains(compressionValues, c.Snapshot.Compression) {
		errs = append(errs, fmt.Errorf("snapshot.compression must be one of: %v", compressionValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsureDeviceDir creates the directory holding the device file if it
// does not exist. Real sysfs device nodes already live in existing
// directories; this matters for plain image files.
func (c *Config) EnsureDeviceDir() error {
	dir := filepath.Dir(c.Device.Path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
