// Package logrusbridge renders logrus entries through sessionlog
// engines. Formatter plugs into logrus.Logger.SetFormatter; Hook forwards
// entries to a handler that owns the session.
package logrusbridge

import (
	"bytes"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler"
)

// LevelFromLogrus converts a logrus.Level to a core.Level. Panic and
// Fatal both map to FatalLevel.
func LevelFromLogrus(l logrus.Level) core.Level {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel:
		return core.FatalLevel
	case logrus.ErrorLevel:
		return core.ErrorLevel
	case logrus.WarnLevel:
		return core.WarningLevel
	case logrus.InfoLevel:
		return core.InfoLevel
	case logrus.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// Parts converts a logrus entry into parts: the message first, then
// the data fields sorted by key.
func Parts(e *logrus.Entry) []core.Part {
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]core.Part, 0, len(keys)+1)
	parts = append(parts, core.Text(e.Message))
	for _, k := range keys {
		switch v := e.Data[k].(type) {
		case string:
			parts = append(parts, core.Part{Key: k, Type: core.StringType, Str: v})
		case error:
			parts = append(parts, core.Part{Key: k, Type: core.ErrorType, Str: v.Error()})
		default:
			parts = append(parts, core.Part{Key: k, Type: core.AnyType, Any: v})
		}
	}
	return parts
}

// Formatter implements logrus.Formatter. Each entry is rendered as one
// record followed by a newline; Header and Footer return the session
// bracket for callers that manage the output themselves.
type Formatter struct {
	Engine  formatter.Engine
	Session core.Session
}

// Format renders the entry with the entry's own time.
func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	b := e.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	formatter.AppendRecord(b, f.engine(), f.Session.At(e.Time), LevelFromLogrus(e.Level), Parts(e))
	return b.Bytes(), nil
}

// Header returns the session header of the formatter's engine.
func (f *Formatter) Header() string {
	return f.engine().InitializeString(f.Session)
}

// Footer returns the session footer of the formatter's engine.
func (f *Formatter) Footer() string {
	return f.engine().FinalizeString(f.Session)
}

func (f *Formatter) engine() formatter.Engine {
	if f.Engine == nil {
		return formatter.NewPlainEngine(formatter.Config{})
	}
	return f.Engine
}

// Hook implements logrus.Hook and forwards every entry at the given
// levels to a handler.
type Hook struct {
	handler handler.Handler
	levels  []logrus.Level
}

// NewHook returns a hook firing for logrus levels allowed by level.
func NewHook(h handler.Handler, level core.Level) *Hook {
	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if level.Allows(LevelFromLogrus(l)) {
			levels = append(levels, l)
		}
	}
	return &Hook{handler: h, levels: levels}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(e *logrus.Entry) error {
	entry := core.GetEntry()
	entry.Time = e.Time
	entry.Level = LevelFromLogrus(e.Level)
	entry.Parts = append(entry.Parts, Parts(e)...)

	err := h.handler.Handle(entry)
	if rc, ok := h.handler.(handler.Recycler); ok && rc.CanRecycleEntry() {
		core.PutEntry(entry)
	}
	return err
}
