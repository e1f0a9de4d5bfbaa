// Package config loads and saves user preferences for parley.
//
// The config lives at ~/.parley/config.yaml. All access goes through
// accessor methods guarded by a read-write mutex, so the UI and the
// persistence path can share one Config value.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	perrors "github.com/zhubert/parley/internal/errors"
)

// Storage backend names accepted in storage_backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultReplyDelayMS matches the original bot's reply timer.
const DefaultReplyDelayMS = 700

// Config holds the application configuration.
type Config struct {
	ReplyDelayMS         int    `yaml:"reply_delay_ms"`        // Delay before the bot reply lands
	NotificationsEnabled bool   `yaml:"notifications_enabled"` // Desktop notification on bot reply
	StorageBackend       string `yaml:"storage_backend"`       // "file" or "sqlite"
	StoragePath          string `yaml:"storage_path,omitempty"` // Overrides the default sessions path
	LastRoute            string `yaml:"last_route,omitempty"`  // Route fragment to restore on startup

	mu       sync.RWMutex
	filePath string
}

// Dir returns the parley config directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default location, applying defaults
// when the file doesn't exist yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, perrors.ConfigLoadFailed("~/.parley", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		ReplyDelayMS:         DefaultReplyDelayMS,
		NotificationsEnabled: true,
		StorageBackend:       BackendFile,
		filePath:             path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in zero values left by an older or partial file.
// Only called during Load, before the Config is shared.
func (c *Config) applyDefaults() {
	if c.ReplyDelayMS <= 0 {
		c.ReplyDelayMS = DefaultReplyDelayMS
	}
	if c.StorageBackend == "" {
		c.StorageBackend = BackendFile
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.StorageBackend != BackendFile && c.StorageBackend != BackendSQLite {
		return perrors.E(perrors.Op("config.Validate"), perrors.KindConfig,
			fmt.Sprintf("unknown storage backend %q", c.StorageBackend))
	}
	return nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// ReplyDelay returns the bot reply delay as a duration.
func (c *Config) ReplyDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// GetNotificationsEnabled returns whether bot replies trigger a desktop
// notification.
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications.
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetStorageBackend returns the configured backend name.
func (c *Config) GetStorageBackend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.StorageBackend
}

// SessionsPath returns the path sessions should be persisted to,
// honoring storage_path when set and otherwise deriving a default
// filename from the backend.
func (c *Config) SessionsPath() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.StoragePath != "" {
		return c.StoragePath, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if c.StorageBackend == BackendSQLite {
		return filepath.Join(dir, "sessions.db"), nil
	}
	return filepath.Join(dir, "sessions.json"), nil
}

// GetLastRoute returns the route fragment recorded on the last run.
func (c *Config) GetLastRoute() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastRoute
}

// SetLastRoute records the current route fragment.
func (c *Config) SetLastRoute(fragment string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastRoute = fragment
}
