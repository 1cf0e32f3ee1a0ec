// Package logger builds the process-wide zerolog logger. Logs go to stderr
// because stdout carries command output and the TUI owns the terminal.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	l := zerolog.New(w).With().Timestamp().Logger()
	if debug {
		return l.Level(zerolog.DebugLevel)
	}
	return l.Level(zerolog.WarnLevel)
}
