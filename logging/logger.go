// Package logging provides a tiny abstraction over slog so the rest of the
// module can depend on a minimal interface (Logger) while allowing callers to
// plug any structured logger. It also offers a richer RunLogger with
// contextual helpers (component, run id) and domain specific helpers for tool
// and model calls.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
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
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "warn", "WARN":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger defines the minimal logging interface used across reagent.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// Config configures construction of a RunLogger.
type Config struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	RunID     string
}

// DefaultConfig returns a baseline text info level configuration writing to
// stderr so agent output on stdout stays clean.
func DefaultConfig() *Config {
	return &Config{Level: LogLevelInfo, Format: "text", Output: os.Stderr}
}

// RunLogger wraps slog.Logger adding contextual cloning helpers and domain
// convenience methods. It is cheap to copy via With* methods.
type RunLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	runID     string
}

// NewLogger builds a RunLogger from a config (or defaults if nil).
func NewLogger(cfg *Config) *RunLogger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &RunLogger{logger: slog.New(handler), level: cfg.Level, component: cfg.Component, runID: cfg.RunID}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a copy bound to a logical component (agent, tool,
// model).
func (l *RunLogger) WithComponent(c string) *RunLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithRun returns a copy bound to a run identifier for correlation.
func (l *RunLogger) WithRun(runID string) *RunLogger {
	nl := *l
	nl.runID = runID
	return &nl
}

func (l *RunLogger) attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.runID != "" {
		attrs = append(attrs, slog.String("run_id", l.runID))
	}
	return attrs
}

func (l *RunLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	attrs := l.attrs()
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			attrs = append(attrs, slog.Any(key, args[i+1]))
		}
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *RunLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *RunLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *RunLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *RunLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogToolCall records execution details for a tool invocation.
func (l *RunLogger) LogToolCall(tool string, dur time.Duration, success bool, err error) {
	args := []any{"tool_name", tool, "duration_ms", dur.Milliseconds(), "success", success}
	if err != nil {
		args = append(args, "error", err.Error())
		l.Error("Tool execution failed", args...)
		return
	}
	l.Info("Tool execution completed", args...)
}

// LogModelCall records model call latency, token usage and success.
func (l *RunLogger) LogModelCall(model string, tokens int, dur time.Duration, success bool, err error) {
	args := []any{"model", model, "duration_ms", dur.Milliseconds(), "success", success}
	if tokens > 0 {
		args = append(args, "tokens", tokens)
	}
	if err != nil {
		args = append(args, "error", err.Error())
		l.Error("Model call failed", args...)
		return
	}
	l.Info("Model call completed", args...)
}

// CallLogger is implemented by loggers that record tool and model call
// outcomes with latency; RunLogger provides it. Call sites fall back to
// plain leveled logging for loggers without it.
type CallLogger interface {
	Logger
	LogToolCall(tool string, dur time.Duration, success bool, err error)
	LogModelCall(model string, tokens int, dur time.Duration, success bool, err error)
}

// ForComponent binds l to a logical component when the logger supports
// native binding; other loggers pass through unchanged.
func ForComponent(l Logger, c string) Logger {
	if rl, ok := l.(*RunLogger); ok {
		return rl.WithComponent(c)
	}
	return l
}

// ForRun binds l to a run identifier for correlation. Loggers without
// native binding get the identifier appended to every record instead.
func ForRun(l Logger, runID string) Logger {
	if rl, ok := l.(*RunLogger); ok {
		return rl.WithRun(runID)
	}
	if _, ok := l.(NoOpLogger); ok {
		return l
	}
	w := withArgs{next: l, args: []any{"run_id", runID}}
	if cl, ok := l.(CallLogger); ok {
		return withCallArgs{withArgs: w, calls: cl}
	}
	return w
}

// withArgs appends fixed key/value pairs to every record of the wrapped
// logger.
type withArgs struct {
	next Logger
	args []any
}

func (w withArgs) Debug(msg string, args ...any) { w.next.Debug(msg, append(args, w.args...)...) }
func (w withArgs) Info(msg string, args ...any)  { w.next.Info(msg, append(args, w.args...)...) }
func (w withArgs) Warn(msg string, args ...any)  { w.next.Warn(msg, append(args, w.args...)...) }
func (w withArgs) Error(msg string, args ...any) { w.next.Error(msg, append(args, w.args...)...) }

// withCallArgs additionally forwards the rich call methods of a wrapped
// CallLogger.
type withCallArgs struct {
	withArgs
	calls CallLogger
}

func (w withCallArgs) LogToolCall(tool string, dur time.Duration, success bool, err error) {
	w.calls.LogToolCall(tool, dur, success, err)
}

func (w withCallArgs) LogModelCall(model string, tokens int, dur time.Duration, success bool, err error) {
	w.calls.LogModelCall(model, tokens, dur, success, err)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is
// disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
