// Package logging configures the structured logger shared by all components.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the application logger writing human-readable output to
// stderr at the given level. Unknown levels fall back to info.
func New(level string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(level))
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}

// WithComponent tags a logger with the owning component's name.
func WithComponent(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
