// Package logging provides the logger handle passed down through the
// system. Components never log through a package global; they receive a
// Logger at construction time.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the structured logging interface used across pgpitr.
// Args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type zeroLogger struct {
	l zerolog.Logger
}

// New builds a Logger writing to stderr. Level is one of "debug", "info",
// "warn", "error" (unknown values fall back to info). Format is "json" or
// "console".
func New(level, format string) Logger {
	var w io.Writer = os.Stderr
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return &zeroLogger{l: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zeroLogger{l: zerolog.Nop()}
}

func (z *zeroLogger) Debug(msg string, args ...any) { emit(z.l.Debug(), msg, args) }
func (z *zeroLogger) Info(msg string, args ...any)  { emit(z.l.Info(), msg, args) }
func (z *zeroLogger) Warn(msg string, args ...any)  { emit(z.l.Warn(), msg, args) }
func (z *zeroLogger) Error(msg string, args ...any) { emit(z.l.Error(), msg, args) }

func emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}
