// ABOUTME: Stored backend credentials for authenticated users.
// ABOUTME: Persists server, user id, token, and device id in auth.json.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Credentials identify this device to a pullups backend.
type Credentials struct {
	Server   string `json:"server"`
	UserID   string `json:"user_id"`
	Token    string `json:"token"`
	DeviceID string `json:"device_id"`
}

// ConfigDir returns the XDG config directory for pullups.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pullups")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pullups")
}

// Path returns the path to auth.json.
func Path() string {
	return filepath.Join(ConfigDir(), "auth.json")
}

// Load reads credentials from disk. A missing file yields empty credentials.
func Load() (*Credentials, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(), err)
	}
	return &c, nil
}

// Save writes credentials with owner-only permissions.
func Save(c *Credentials) error {
	if err := os.MkdirAll(ConfigDir(), 0750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0600)
}

// Clear removes auth.json.
func Clear() error {
	err := os.Remove(Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsAuthenticated reports whether the credentials can reach a backend.
func (c *Credentials) IsAuthenticated() bool {
	return c != nil && c.Server != "" && c.Token != ""
}

// NewDeviceID returns a fresh device identifier.
func NewDeviceID() string {
	return uuid.NewString()
}
