// Package logging configures leveled console logging.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the console logger.
type Options struct {
	Level  log.Level
	Prefix string
}

// DefaultOptions returns the default console logger options.
func DefaultOptions() Options {
	return Options{
		Level:  log.InfoLevel,
		Prefix: "todo",
	}
}

// New creates a console logger writing to stderr. User-facing output
// goes to stdout via plain prints; the logger carries diagnostics only.
func New(opts Options) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           opts.Level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          opts.Prefix,
	})
}

// ParseLevel maps a config level string to a log level, defaulting to
// info for anything unrecognized.
func ParseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
