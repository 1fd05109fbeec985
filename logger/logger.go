// Package logger configures the global zerolog logger for the command line
// tools and simulators.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init sets the global level from LOG_LEVEL (default info). Output is JSON
// lines when LOG_FORMAT=json, otherwise a console writer colored when DEV=true.
func Init() {
	InitTo(os.Stderr)
}

// InitTo is Init with an explicit destination.
func InitTo(out io.Writer) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := out
	if os.Getenv("LOG_FORMAT") != "json" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: milliTimeFormat,
			NoColor:    !isDevelopmentMode(),
		}
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

func isDevelopmentMode() bool {
	return os.Getenv("DEV") == "true" || os.Getenv("DEV_MODE") == "true"
}

// ForGame returns the global logger tagged with a game id.
func ForGame(id string) zerolog.Logger {
	return log.Logger.With().Str("game", id).Logger()
}
