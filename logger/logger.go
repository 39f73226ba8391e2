package logger

import (
	"fmt"
	"os"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Logger is the main logging interface (immutable)
type Logger struct {
	handler      handler.Handler
	level        core.Level
	parts        []core.Part
	clock        core.Clock
	recycleEntry bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler      handler.Handler
	level        core.Level
	parts        []core.Part
	clock        core.Clock
	recycleEntry bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level: core.InfoLevel, // Default level
		clock: core.SystemClock{},
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	// Pre-compute recycleEntry to avoid interface assertion in Build()
	if rc, ok := h.(handler.Recycler); ok {
		b.recycleEntry = rc.CanRecycleEntry()
	} else {
		b.recycleEntry = false
	}
	return b
}

// WithLevel sets the threshold. AllLevels logs everything, NoneLevel nothing.
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithParts adds default continuation parts to all log entries
func (b *Builder) WithParts(parts ...core.Part) *Builder {
	b.parts = append(b.parts, parts...)
	return b
}

// WithClock sets the clock that stamps entries (default: system clock)
func (b *Builder) WithClock(c core.Clock) *Builder {
	if c != nil {
		b.clock = c
	}
	return b
}

// WithCoarseClock stamps entries from the process-wide coarse clock
// instead of calling time.Now for every record
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	if enabled {
		b.clock = core.NewCoarseClock()
	} else {
		b.clock = core.SystemClock{}
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	parts := make([]core.Part, len(b.parts))
	copy(parts, b.parts)
	return &Logger{
		handler:      b.handler,
		level:        b.level,
		parts:        parts,
		clock:        b.clock,
		recycleEntry: b.recycleEntry,
	}
}

// With creates a new Logger with additional parts (immutable operation)
func (l *Logger) With(parts ...core.Part) *Logger {
	newParts := make([]core.Part, len(l.parts)+len(parts))
	copy(newParts, l.parts)
	copy(newParts[len(l.parts):], parts)

	return &Logger{
		handler:      l.handler,
		level:        l.level,
		parts:        newParts,
		clock:        l.clock,
		recycleEntry: l.recycleEntry,
	}
}

// Level returns the logger's threshold
func (l *Logger) Level() core.Level {
	return l.level
}

// Enabled reports whether a record at level would be handled
func (l *Logger) Enabled(level core.Level) bool {
	return l.handler != nil && l.level.Allows(level)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, parts ...core.Part) {
	// Level check optimization - exit early BEFORE any allocations
	if !l.level.Allows(level) {
		return
	}
	l.log(level, msg, parts)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, parts []core.Part) {
	// Handler check - exit if no handler (avoid any work)
	if l.handler == nil {
		return
	}

	// Get entry from pool AFTER level check
	entry := core.GetEntry()
	entry.Time = l.clock.Now()
	entry.Level = level
	entry.Parts = append(entry.Parts, core.Text(msg))

	// Add logger's default parts
	if len(l.parts) > 0 {
		entry.Parts = append(entry.Parts, l.parts...)
	}

	// Add provided parts
	if len(parts) > 0 {
		entry.Parts = append(entry.Parts, parts...)
	}

	err := l.handler.Handle(entry)
	if err != nil {
		return
	}

	// Return entry to pool if handler supports it
	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, parts ...core.Part) {
	if !l.level.Allows(core.TraceLevel) {
		return
	}
	l.log(core.TraceLevel, msg, parts)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, parts ...core.Part) {
	if !l.level.Allows(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, msg, parts)
}

// Info logs an info message
func (l *Logger) Info(msg string, parts ...core.Part) {
	if !l.level.Allows(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, msg, parts)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, parts ...core.Part) {
	if !l.level.Allows(core.WarningLevel) {
		return
	}
	l.log(core.WarningLevel, msg, parts)
}

// Error logs an error message
func (l *Logger) Error(msg string, parts ...core.Part) {
	if !l.level.Allows(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, parts)
}

// Fatal logs a fatal message, closes the handler so the session footer
// is written, and exits the program with os.Exit(1). The message is
// dropped when the threshold is NoneLevel, but the exit still happens.
func (l *Logger) Fatal(msg string, parts ...core.Part) {
	if l.level.Allows(core.FatalLevel) {
		l.log(core.FatalLevel, msg, parts)
	}
	l.Close()
	osExit(1)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.level.Allows(core.TraceLevel) {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.level.Allows(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.level.Allows(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	if !l.level.Allows(core.WarningLevel) {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.level.Allows(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	if l.level.Allows(core.FatalLevel) {
		l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
	}
	l.Close()
	osExit(1)
}

// Close closes the logger's handler, which finalizes its session
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
