package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "workflow-hub-api"

// Options controls logger construction
type Options struct {
	Level  string // debug, info, warn, error
	Format string // "json" or "pretty"
	Env    string
}

// New creates a new zerolog logger with structured output
func New(opts Options) zerolog.Logger {
	return NewWithWriter(os.Stdout, opts)
}

// NewWithWriter builds the logger on top of an arbitrary writer
func NewWithWriter(w io.Writer, opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := ParseLevel(opts.Level)

	// Use pretty console output in development
	if opts.Format == "pretty" || strings.EqualFold(opts.Env, "development") {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// ParseLevel maps a config string onto a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
