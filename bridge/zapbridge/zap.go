// Package zapbridge provides a zapcore.Core that forwards zap entries to
// a sessionlog handler, so a zap.Logger can write into a session.
package zapbridge

import (
	"fmt"
	"sort"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
)

// Core implements zapcore.Core on top of a handler.Handler.
type Core struct {
	handler handler.Handler
	level   core.Level
	parts   []core.Part
	prefix  string
}

// NewCore returns a Core that passes records allowed by level to h.
func NewCore(h handler.Handler, level core.Level) *Core {
	return &Core{handler: h, level: level}
}

// LevelFromZap converts a zapcore.Level to a core.Level. DPanic, Panic
// and Fatal all map to FatalLevel.
func LevelFromZap(l zapcore.Level) core.Level {
	switch {
	case l >= zapcore.DPanicLevel:
		return core.FatalLevel
	case l >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case l >= zapcore.WarnLevel:
		return core.WarningLevel
	case l >= zapcore.InfoLevel:
		return core.InfoLevel
	case l >= zapcore.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// Enabled implements zapcore.LevelEnabler.
func (c *Core) Enabled(l zapcore.Level) bool {
	return c.level.Allows(LevelFromZap(l))
}

// With returns a copy of the core carrying fields as default parts.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := &Core{
		handler: c.handler,
		level:   c.level,
		parts:   make([]core.Part, len(c.parts), len(c.parts)+len(fields)),
		prefix:  c.prefix,
	}
	copy(clone.parts, c.parts)
	clone.parts, clone.prefix = appendFields(clone.parts, clone.prefix, fields)
	return clone
}

// Check implements zapcore.Core.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry and its fields into a sessionlog entry.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	entry.Time = ent.Time
	entry.Level = LevelFromZap(ent.Level)
	entry.Parts = append(entry.Parts, core.Text(ent.Message))
	if ent.LoggerName != "" {
		entry.Parts = append(entry.Parts, core.Part{Key: "logger", Type: core.StringType, Str: ent.LoggerName})
	}
	if ent.Caller.Defined {
		entry.Parts = append(entry.Parts, core.Part{Key: "caller", Type: core.StringType, Str: ent.Caller.TrimmedPath()})
	}
	entry.Parts = append(entry.Parts, c.parts...)
	entry.Parts, _ = appendFields(entry.Parts, c.prefix, fields)
	if ent.Stack != "" {
		entry.Parts = append(entry.Parts, core.Part{Key: "stack", Type: core.StringType, Str: ent.Stack})
	}

	err := c.handler.Handle(entry)
	if rc, ok := c.handler.(handler.Recycler); ok && rc.CanRecycleEntry() {
		core.PutEntry(entry)
	}
	return err
}

// Sync is a no-op; handlers flush when they are closed.
func (c *Core) Sync() error {
	return nil
}

// appendFields encodes each field through a map encoder and appends the
// results as keyed parts. Namespace fields prefix every later key.
func appendFields(parts []core.Part, prefix string, fields []zapcore.Field) ([]core.Part, string) {
	for _, f := range fields {
		if f.Type == zapcore.NamespaceType {
			prefix = joinKey(prefix, f.Key)
			continue
		}
		if f.Type == zapcore.SkipType {
			continue
		}

		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)

		keys := make([]string, 0, len(enc.Fields))
		for k := range enc.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, toPart(joinKey(prefix, k), enc.Fields[k]))
		}
	}
	return parts, prefix
}

func toPart(key string, v interface{}) core.Part {
	switch val := v.(type) {
	case string:
		return core.Part{Key: key, Type: core.StringType, Str: val}
	case int64:
		return core.Part{Key: key, Type: core.Int64Type, Int64: val}
	case int:
		return core.Part{Key: key, Type: core.IntType, Int64: int64(val)}
	case float64:
		return core.Part{Key: key, Type: core.Float64Type, Float64: val}
	case bool:
		p := core.Part{Key: key, Type: core.BoolType}
		if val {
			p.Int64 = 1
		}
		return p
	case fmt.Stringer:
		return core.Part{Key: key, Type: core.StringType, Str: val.String()}
	default:
		return core.Part{Key: key, Type: core.AnyType, Any: v}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
