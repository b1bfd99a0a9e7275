package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var defaultLogger *zerolog.Logger

// Init initializes the default logger with an output format based on environment
func Init(env string, debug bool) {
	InitWithWriter(os.Stdout, env, debug)
}

// InitWithWriter is Init with an explicit destination, used by tests
func InitWithWriter(w io.Writer, env string, debug bool) {
	level := zerolog.InfoLevel
	if debug || env == "development" {
		level = zerolog.DebugLevel
	}

	var out io.Writer = w
	if env == "development" {
		// Human-readable output for local runs
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	defaultLogger = &l
}

// Default returns the default logger instance
func Default() *zerolog.Logger {
	if defaultLogger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		defaultLogger = &l
	}
	return defaultLogger
}

// With returns a child context of the default logger
func With() zerolog.Context {
	return Default().With()
}

func Debug() *zerolog.Event {
	return Default().Debug()
}

func Info() *zerolog.Event {
	return Default().Info()
}

func Warn() *zerolog.Event {
	return Default().Warn()
}

func Error() *zerolog.Event {
	return Default().Error()
}

func Fatal() *zerolog.Event {
	return Default().Fatal()
}
