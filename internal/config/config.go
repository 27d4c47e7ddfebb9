// ABOUTME: Pullups configuration management with local backend selection.
// ABOUTME: Handles settings, polling and retry policy, and the storage factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/pullups/internal/charm"
	"github.com/harperreed/pullups/internal/query"
	"github.com/harperreed/pullups/internal/storage"
	"github.com/harperreed/pullups/internal/tally"
)

// Backend names accepted in the backend field.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
)

// Config stores pullups tool configuration.
type Config struct {
	// Backend selects the local store: "sqlite" (default), "badger", or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/pullups.
	DataDir string `json:"data_dir,omitempty"`

	// PollInterval is how often the day rollover is checked, as a Go duration.
	PollInterval string `json:"poll_interval,omitempty"`

	// QueryRetries is how many times a failed backend read is retried.
	QueryRetries *int `json:"query_retries,omitempty"`

	// QueryRetryDelay is the pause between retries, as a Go duration.
	QueryRetryDelay string `json:"query_retry_delay,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetPollInterval returns the rollover poll interval. Unparseable or
// non-positive values fall back to the default.
func (c *Config) GetPollInterval() time.Duration {
	return durationOr(c.PollInterval, tally.DefaultPollInterval)
}

// GetQueryRetries returns the query retry count.
func (c *Config) GetQueryRetries() int {
	if c.QueryRetries == nil || *c.QueryRetries < 0 {
		return query.DefaultRetries
	}
	return *c.QueryRetries
}

// GetQueryRetryDelay returns the pause between query retries.
func (c *Config) GetQueryRetryDelay() time.Duration {
	return durationOr(c.QueryRetryDelay, query.DefaultRetryDelay)
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates the local key/value store for the configured backend.
func (c *Config) OpenStorage() (storage.KV, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend creates the local key/value store for the named backend
// under the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		db, err := storage.Open(filepath.Join(dataDir, "local.db"))
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendBadger:
		b, err := storage.OpenBadger(BadgerDir(dataDir))
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendCharm:
		c, err := charm.InitClient()
		if err != nil {
			return nil, fmt.Errorf("open charm kv: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// BadgerDir returns the Badger directory inside dataDir.
func BadgerDir(dataDir string) string {
	return filepath.Join(dataDir, "badger")
}

// Keys lists the settable configuration keys.
func Keys() []string {
	return []string{"backend", "data_dir", "poll_interval", "query_retries", "query_retry_delay"}
}

// Set assigns one configuration key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		switch value {
		case BackendSQLite, BackendBadger, BackendCharm:
			c.Backend = value
		default:
			return fmt.Errorf("unknown backend: %q (want sqlite, badger, or charm)", value)
		}
	case "data_dir":
		c.DataDir = value
	case "poll_interval", "query_retry_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s: must be positive", key)
		}
		if key == "poll_interval" {
			c.PollInterval = value
		} else {
			c.QueryRetryDelay = value
		}
	case "query_retries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid query_retries: %q", value)
		}
		c.QueryRetries = &n
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

// Effective returns every setting with defaults applied, keyed like Keys.
func (c *Config) Effective() map[string]string {
	return map[string]string{
		"backend":           c.GetBackend(),
		"data_dir":          c.GetDataDir(),
		"poll_interval":     c.GetPollInterval().String(),
		"query_retries":     strconv.Itoa(c.GetQueryRetries()),
		"query_retry_delay": c.GetQueryRetryDelay().String(),
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "pullups", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
