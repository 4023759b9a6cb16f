package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns the console logger the CLI runs with.
func Logger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
