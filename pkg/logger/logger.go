package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the process-wide zerolog logger. Level comes from LOG_LEVEL
// and output switches to a human-readable console writer when LOG_FORMAT
// is "pretty" (the default JSON form is what deployments scrape).
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if os.Getenv("LOG_FORMAT") == "pretty" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.
		Level(level).
		With().
		Timestamp().
		Str("service", "quiz-content-api").
		Logger()
}
