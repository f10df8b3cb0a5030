// Package logging configures the hclog loggers used by the pedump binaries.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	envLogLevel = "PEDUMP_LOG_LEVEL"
	envJSONLog  = "PEDUMP_JSON_LOG"
)

// NewLogger creates a new hclog logger with standard settings. A nil output
// writes to stderr.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(envJSONLog) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// LogLevel returns level if set, otherwise the level from the environment,
// defaulting to warn.
func LogLevel(level string) string {
	if level != "" {
		return level
	}
	if env := os.Getenv(envLogLevel); env != "" {
		return env
	}
	return "warn"
}
