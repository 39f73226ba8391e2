package sloghandler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
)

// LevelTrace and LevelFatal extend slog's levels to cover the full
// sessionlog range.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelFatal = slog.LevelError + 4
)

// SlogHandler is an adapter that implements slog.Handler using a sessionlog Handler.
type SlogHandler struct {
	handler handler.Handler
	level   core.Level
	parts   []core.Part
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
// Records below level are discarded.
func NewSlogHandler(h handler.Handler, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.level.Allows(LevelFromSlog(level))
}

// Handle processes a slog.Record by converting it to a core.Entry and passing it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = LevelFromSlog(record.Level)
	entry.Parts = append(entry.Parts, core.Text(record.Message))

	// Add pre-configured attrs
	entry.Parts = append(entry.Parts, s.parts...)

	// Add record attrs
	record.Attrs(func(a slog.Attr) bool {
		entry.Parts = appendAttr(entry.Parts, s.group, a)
		return true
	})

	err := s.handler.Handle(entry)
	if rc, ok := s.handler.(handler.Recycler); ok && rc.CanRecycleEntry() {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	parts := make([]core.Part, len(s.parts), len(s.parts)+len(attrs))
	copy(parts, s.parts)
	for _, a := range attrs {
		parts = appendAttr(parts, s.group, a)
	}
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		parts:   parts,
		group:   s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		parts:   s.parts,
		group:   joinKey(s.group, name),
	}
}

// LevelFromSlog converts a slog.Level to a core.Level.
func LevelFromSlog(level slog.Level) core.Level {
	switch {
	case level >= LevelFatal:
		return core.FatalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

// appendAttr converts a slog.Attr to parts, flattening groups with a dotted prefix.
func appendAttr(parts []core.Part, group string, a slog.Attr) []core.Part {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return parts
	}

	key := joinKey(group, a.Key)

	switch a.Value.Kind() {
	case slog.KindString:
		return append(parts, core.Part{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(parts, core.Part{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(parts, core.Part{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(parts, core.Part{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(parts, core.Part{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(parts, core.Part{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(parts, core.Part{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		// An inline group (empty key) adds its attrs at the current level
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			parts = appendAttr(parts, prefix, ga)
		}
		return parts
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(parts, core.Part{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(parts, core.Part{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
