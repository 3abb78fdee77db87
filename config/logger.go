package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger. InitLogger must run
// before anything that logs, so main calls it first.
var Logger zerolog.Logger

// InitLogger configures zerolog for the current environment: debug
// level in development, info in production.
func InitLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("GO_ENV") == "production" {
		l = l.Level(zerolog.InfoLevel)
	} else {
		l = l.Level(zerolog.DebugLevel)
	}
	Logger = l
	return l
}
