package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger.
// With debug off and no filename, logging is disabled.
// With debug on, debug-level logs go to stderr in console format.
// If filename is set, JSON logs are appended to that file instead.
func Setup(debug bool, filename string) (cleanup func(), err error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if filename == "" {
		if !debug {
			log.Logger = zerolog.New(io.Discard)
			return func() {}, nil
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(level).With().Timestamp().Logger()
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Caller().Logger()

	return func() { f.Close() }, nil
}
