// Package logger provides the process-wide console logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	w := splitWriter{
		out: zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339},
		err: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	}
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetDebug lowers the logging threshold to the debug level.
func SetDebug(on bool) {
	if on {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Debugf logs a formatted message at the debug level.
func Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

// Infof logs a formatted message at the info level.
func Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// Warnf logs a formatted message at the warning level.
func Warnf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// Errorf logs a formatted message at the error level.
func Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

// Fatalf logs a formatted message at the fatal level and stops the process.
func Fatalf(format string, args ...interface{}) {
	log.Fatal().Msgf(format, args...)
}

// splitWriter sends error-and-above records to stderr and the rest to stdout.
type splitWriter struct {
	out io.Writer
	err io.Writer
}

func (w splitWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

// WriteLevel implements zerolog.LevelWriter.
func (w splitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}
