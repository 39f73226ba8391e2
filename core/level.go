package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognized level names.
var ErrUnknownLevel = errors.New("unknown level")

// Level represents the severity level of a log entry
type Level int8

const (
	// TraceLevel for very fine grained tracing
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarningLevel for warning messages
	WarningLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for fatal messages (causes os.Exit(1) in the logger)
	FatalLevel

	// NoneLevel is a filter sentinel that allows nothing. It never renders.
	NoneLevel
	// AllLevels is a filter sentinel that allows everything. It never renders.
	AllLevels
)

var levelNames = [...]string{
	TraceLevel:   "Trace",
	DebugLevel:   "Debug",
	InfoLevel:    "Info",
	WarningLevel: "Warning",
	ErrorLevel:   "Error",
	FatalLevel:   "Fatal",
	NoneLevel:    "None",
	AllLevels:    "All Levels",
}

// String returns the string representation of the level
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "Unknown"
	}
	return levelNames[l]
}

// Renderable reports whether entries at this level produce formatted output.
// The filter sentinels and out-of-range values are not renderable.
func (l Level) Renderable() bool {
	return l >= TraceLevel && l <= FatalLevel
}

// Allows reports whether a threshold l lets entries at level through.
func (l Level) Allows(level Level) bool {
	if !level.Renderable() {
		return false
	}
	switch l {
	case AllLevels:
		return true
	case NoneLevel:
		return false
	default:
		return level >= l
	}
}

// Levels returns the renderable levels in ascending order.
func Levels() []Level {
	return []Level{TraceLevel, DebugLevel, InfoLevel, WarningLevel, ErrorLevel, FatalLevel}
}

// ParseLevel converts a case-insensitive name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	case "NONE":
		return NoneLevel, nil
	case "ALL", "ALL LEVELS", "ALLLEVELS":
		return AllLevels, nil
	default:
		return InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
