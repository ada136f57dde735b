// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDataFile = "~/.todo_cli.json"
	DefaultLogLevel = "info"
)

// Config holds the full configuration for the todo CLI.
type Config struct {
	// DataFile is the JSON file holding the todo list.
	DataFile string `toml:"data_file"`

	// LogLevel controls console log verbosity (debug|info|warn|error).
	LogLevel string `toml:"log_level"`

	// Markers used when rendering the tree. Empty means the built-in
	// defaults.
	MarkerDone string `toml:"marker_done"`
	MarkerTodo string `toml:"marker_todo"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todo/todo.toml or OS-specific config dir)
// 3. Environment variables (TODO_FILE, TODO_LOG_LEVEL)
// 4. CLI flags (they override everything)
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if file := findUserConfigFile(); file != "" {
		if err := loadConfigFile(cfg, file); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.DataFile = expandPath(cfg.DataFile)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogLevel = DefaultLogLevel
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	dataFile := fs.String("file", cfg.DataFile, "Todo file path")
	fs.StringVar(dataFile, "f", cfg.DataFile, "Todo file path (shorthand)")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.DataFile = *dataFile
	if *verbose {
		cfg.LogLevel = "debug"
	}
	return nil
}
