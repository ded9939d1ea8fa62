// Package logger builds the zerolog loggers used by the pensionsim binaries.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human readable console output
	Out    io.Writer
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Adapter exposes a zerolog.Logger through the printf-style Logger interface
// used by the calculation engine.
type Adapter struct {
	L zerolog.Logger
}

func (a Adapter) Debugf(format string, args ...any) { a.L.Debug().Msgf(format, args...) }
func (a Adapter) Infof(format string, args ...any)  { a.L.Info().Msgf(format, args...) }
func (a Adapter) Warnf(format string, args ...any)  { a.L.Warn().Msgf(format, args...) }
func (a Adapter) Errorf(format string, args ...any) { a.L.Error().Msgf(format, args...) }
