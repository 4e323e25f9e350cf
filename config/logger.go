package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns the service logger writing JSON lines to stdout.
func NewLogger(service, level string) zerolog.Logger {
	return newLogger(os.Stdout, service, level)
}

func newLogger(w io.Writer, service, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().
		Str("service", service).
		Timestamp().
		Logger()
}
