// Package xdg resolves the per-application configuration directory for trigger.
// It follows the XDG Base Directory layout, falling back to ~/.config when
// XDG_CONFIG_HOME is unset, and creates the directory owner-only.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the config base.
const AppName = "trigger"

// ConfigDir returns the XDG config directory for trigger.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/trigger when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := EnsurePrivateDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// EnsurePrivateDir creates dir (and parents) with 0700 permissions if missing.
func EnsurePrivateDir(dir string) error {
	return os.MkdirAll(dir, 0o700) // private dir
}
