package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Newはservice名付きのloggerを返す。devでは人間向け出力にする。
func New(service string, env string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.With().
		Timestamp().
		Str("service", service).
		Logger()
}
