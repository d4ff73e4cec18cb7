package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns the host server logger.
func New() zerolog.Logger {
	return log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Str("service", "deciflow-web").
		Logger()
}
