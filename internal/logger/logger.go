package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets a pretty console writer,
// every other environment gets JSON on stdout.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if environment == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).With().
		Timestamp().
		Str("service", "transvoyages").
		Logger().
		Level(level)
}
