// Package logger provides a small leveled logger for the application.
// Levels: off (silent), normal (info/warn/error), verbose (adds debug).
// Loggers are safe for concurrent use; components get a named child via
// Named so log lines identify their origin.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel converts a config string into a Level. Unrecognized values
// fall back to normal.
func ParseLevel(s string) Level {
	switch s {
	case "off", "quiet":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	mu   sync.RWMutex
	lvl  Level
	name string
	out  *log.Logger
}

// New creates a logger with the given level, writing to out. If out is
// nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		lvl: level,
		out: log.New(out, "", log.Ltime),
	}
}

// Named returns a child logger whose lines carry the given component name.
// The child shares the parent's output and level.
func (l *Logger) Named(name string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Logger{lvl: l.lvl, name: name, out: l.out}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = level
}

func (l *Logger) emit(min Level, tag, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.lvl < min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.name != "" {
		msg = l.name + ": " + msg
	}
	l.out.Output(3, tag+" "+msg)
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.emit(LevelVerbose, "[DBG]", format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.emit(LevelNormal, "[INF]", format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.emit(LevelNormal, "[WRN]", format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.emit(LevelNormal, "[ERR]", format, args...)
}
