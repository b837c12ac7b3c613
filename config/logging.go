package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the application-wide structured logger.
var Logger zerolog.Logger

// InitLogger configures the global logger. Level defaults to info when the
// env value does not parse.
func InitLogger() {
	lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}
