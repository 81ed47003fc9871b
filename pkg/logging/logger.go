// Package logging wraps zerolog to provide subsystem-scoped loggers, with an
// optional rotating file sink.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	// Packages
	zerolog "github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Logger wraps zerolog to provide subsystem-scoped child loggers.
type Logger struct {
	zl zerolog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 14
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a root logger writing to the given writer at the specified level.
// If w is nil, defaults to pretty console output on stderr.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(w).With().Timestamp().Logger()
	zl = zl.Level(parseLevel(level))
	return &Logger{zl: zl}
}

// NewFile creates a root logger writing JSON lines to a rotating file at
// path. The directory is created if it does not exist. The returned closer
// releases the file.
func NewFile(path, level string) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return New(w, level), w, nil
}

// Nop returns a logger which discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Sub returns a child logger tagged with a subsystem name.
func (l *Logger) Sub(subsystem string) *Logger {
	return &Logger{zl: l.zl.With().Str("subsystem", subsystem).Logger()}
}

// Debug logs at debug level.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info logs at info level.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn logs at warn level.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error logs at error level.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Zerolog returns the underlying zerolog.Logger for advanced use.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
