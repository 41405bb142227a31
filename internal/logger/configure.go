// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

type Options struct {
	DevMode bool
	Level   string
	Out     io.Writer
}

func Configure(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	level := ParseLevel(opts.Level)
	if opts.DevMode {
		// Dev mode defaults to trace; an explicit level still wins.
		if strings.TrimSpace(opts.Level) == "" {
			level = zerolog.TraceLevel
		}
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		}
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(level)
}

// ParseLevel falls back to info for empty or unknown names.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}
