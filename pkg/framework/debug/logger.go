// Package debug provides logging, profiling, and signal inspection for
// plugins running inside a host that offers no console of its own.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for per-cook detail.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for lifecycle events.
	LogLevelInfo
	// LogLevelWarn is for recoverable oddities in host input.
	LogLevelWarn
	// LogLevelError is for failed callbacks.
	LogLevelError
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO", "":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // Include timestamp
	FlagShortFile             // Include short file name and line number
	FlagLevel                 // Include log level
	FlagPrefix                // Include prefix
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagLevel | FlagPrefix

// Logger is a leveled logger safe for use from host callbacks.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	level  LogLevel
	prefix string
	flags  int
	seen   map[string]struct{}
}

var defaultLogger = New(os.Stderr, "chopgo", DefaultFlags)

// New creates a new logger instance at LogLevelInfo.
func New(output io.Writer, prefix string, flags int) *Logger {
	return &Logger{
		output: output,
		prefix: prefix,
		flags:  flags,
		level:  LogLevelInfo,
		seen:   make(map[string]struct{}),
	}
}

// NewFileLogger creates a logger that appends to a file. Hosts usually
// swallow stderr, so the C bridge logs here when asked to.
func NewFileLogger(filename, prefix string, flags int) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(file, prefix, flags), nil
}

// SetOutput sets the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetPrefix sets the logger prefix.
func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || l.level == LogLevelOff {
		return
	}

	var sb strings.Builder
	if l.flags&FlagTime != 0 {
		sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	}
	if l.flags&FlagLevel != 0 {
		fmt.Fprintf(&sb, "[%s] ", level)
	}
	if l.flags&FlagPrefix != 0 && l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	if l.flags&FlagShortFile != 0 {
		// Skip log() and the exported wrapper
		if _, file, line, ok := runtime.Caller(2); ok {
			fmt.Fprintf(&sb, "%s:%d: ", filepath.Base(file), line)
		}
	}

	msg := fmt.Sprintf(format, args...)
	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteByte('\n')
	}

	io.WriteString(l.output, sb.String())
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}

// WarnOnce logs a warning the first time key is seen. Conditions that hold
// for every cook would otherwise flood the log at frame rate.
func (l *Logger) WarnOnce(key, format string, args ...any) {
	l.mu.Lock()
	_, dup := l.seen[key]
	l.seen[key] = struct{}{}
	l.mu.Unlock()

	if !dup {
		l.log(LogLevelWarn, format, args...)
	}
}

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...any) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...any) {
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...any) {
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...any) {
	defaultLogger.Error(format, args...)
}
