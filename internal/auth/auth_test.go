// ABOUTME: Tests for credential storage.
// ABOUTME: Verifies load defaults, save/load round trip, permissions, and clear.
package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.False(t, c.IsAuthenticated())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := &Credentials{
		Server:   "http://localhost:8080",
		UserID:   "user-1",
		Token:    "tok",
		DeviceID: NewDeviceID(),
	}
	require.NoError(t, Save(want))

	info, err := os.Stat(filepath.Join(dir, "pullups", "auth.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsAuthenticated())
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pullups"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pullups", "auth.json"), []byte("{"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, Clear(), "clearing a missing file is fine")
	require.NoError(t, Save(&Credentials{Server: "s", Token: "t"}))
	require.NoError(t, Clear())

	c, err := Load()
	require.NoError(t, err)
	assert.False(t, c.IsAuthenticated())
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		c    *Credentials
		want bool
	}{
		{"nil", nil, false},
		{"empty", &Credentials{}, false},
		{"no token", &Credentials{Server: "s"}, false},
		{"no server", &Credentials{Token: "t"}, false},
		{"complete", &Credentials{Server: "s", Token: "t"}, true},
	}
	for _, tt := range tests {
		if got := tt.c.IsAuthenticated(); got != tt.want {
			t.Errorf("%s: IsAuthenticated() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewDeviceIDUnique(t *testing.T) {
	assert.NotEqual(t, NewDeviceID(), NewDeviceID())
}
