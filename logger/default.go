package logger

import (
	"sync"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler/consolehandler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
	defaultOnce   sync.Once
)

// newDefault builds the default logger. It is created on first use so
// that importing the package does not start a session on stdout.
func newDefault() *Logger {
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Engine: formatter.NewPlainEngine(formatter.Config{}),
		Async:  true,
	})
	if err != nil {
		// Without a handler the logger discards everything
		return NewBuilder().WithLevel(core.NoneLevel).Build()
	}
	return NewBuilder().
		WithHandler(h).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = newDefault()
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Trace logs a trace message using the default logger
func Trace(msg string, parts ...core.Part) {
	Default().Trace(msg, parts...)
}

// Debug logs a debug message using the default logger
func Debug(msg string, parts ...core.Part) {
	Default().Debug(msg, parts...)
}

// Info logs an info message using the default logger
func Info(msg string, parts ...core.Part) {
	Default().Info(msg, parts...)
}

// Warning logs a warning message using the default logger
func Warning(msg string, parts ...core.Part) {
	Default().Warning(msg, parts...)
}

// Error logs an error message using the default logger
func Error(msg string, parts ...core.Part) {
	Default().Error(msg, parts...)
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg string, parts ...core.Part) {
	Default().Fatal(msg, parts...)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) {
	Default().Tracef(format, args...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...interface{}) {
	Default().Warningf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Fatalf logs a formatted fatal message using the default logger and exits the program
func Fatalf(format string, args ...interface{}) {
	Default().Fatalf(format, args...)
}

// With creates a new logger with additional parts
func With(parts ...core.Part) *Logger {
	return Default().With(parts...)
}

// Close closes the default logger, writing its session footer
func Close() error {
	return Default().Close()
}
