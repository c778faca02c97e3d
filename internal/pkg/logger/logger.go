package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// Config controls the process-wide logger.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string
	// Pretty switches from JSON to the human-readable console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Configure sets up the global zerolog logger. Safe to call more than once;
// the last call wins.
func Configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	switch strings.ToLower(cfg.Level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var w io.Writer = cfg.Output
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(w).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Debug starts a debug-level event on the default logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info-level event on the default logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warn-level event on the default logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts an error-level event on the default logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

// Fatal starts a fatal-level event on the default logger.
func Fatal() *zerolog.Event { return defaultLogger.Fatal() }

// With returns a child logger carrying the given component field.
func With(component string) zerolog.Logger {
	return defaultLogger.With().Str("component", component).Logger()
}

func init() {
	Configure(Config{Level: "info", Pretty: true})
}
