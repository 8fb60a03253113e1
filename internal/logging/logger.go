package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger wraps slog.Logger with field helpers used across handlers and services.
type Logger struct {
	*slog.Logger
}

var defaultLogger atomic.Pointer[Logger]

// NewLogger creates a logger writing to stdout. Development uses the text
// handler at debug level, everything else JSON at info level.
func NewLogger(isDevelopment bool) *Logger {
	level := slog.LevelInfo
	if isDevelopment {
		level = slog.LevelDebug
	}
	return NewWithWriter(os.Stdout, isDevelopment, level)
}

// New creates a stdout logger with an explicit level name (debug, info, warn, error).
func New(isDevelopment bool, level string) *Logger {
	return NewWithWriter(os.Stdout, isDevelopment, ParseLevel(level))
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, isDevelopment bool, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isDevelopment {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return NewWithWriter(io.Discard, false, slog.LevelError+1)
}

// NewStdLogger adapts l for APIs that require a *log.Logger, such as
// http.Server.ErrorLog. Lines are written at error level.
func NewStdLogger(l *Logger) *log.Logger {
	return slog.NewLogLogger(l.Handler(), slog.LevelError)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// WithFields returns a child logger carrying the given attributes.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

// SetDefault sets the logger returned when a context carries none.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Default returns the process-wide fallback logger.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return NewLogger(true)
}
