package config

import (
	"os"
	"path/filepath"
	"strings"
)

// findUserConfigFile looks for a user-level config file.
// Checks ~/.todo/todo.toml first, then falls back to the OS-specific
// config directory (e.g. ~/.config/todo/todo.toml).
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".todo", "todo.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(cfgDir, "todo", "todo.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// expandPath expands a leading ~/ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return home
	}
	if strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
