// Package logger wraps log/slog with the process-wide handler setup.
// Logs go to stderr so they never interleave with command output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
)

// Init installs the global logger. format is "json" or "text".
func Init(level, format string) {
	InitWriter(os.Stderr, level, format)
}

// InitWriter is Init with an explicit destination (tests capture output with it).
func InitWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()
	slog.SetDefault(defaultLogger)
}

// ParseLevel maps a config level name onto a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the global logger, initializing a warn-level text logger on first use.
func Get() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		Init("warn", "text")
		return Get()
	}
	return l
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { Get().Error(msg, args...) }
