package formatter

import (
	"bytes"
	"time"

	"github.com/philipp01105/sessionlog/core"
)

// PlainEngine formats records as human-readable plain text.
// Nothing is escaped.
type PlainEngine struct {
	Config
}

// NewPlainEngine creates a new plain text engine
func NewPlainEngine(cfg Config) *PlainEngine {
	return &PlainEngine{Config: cfg.withDefaults()}
}

// Name implements Engine
func (e *PlainEngine) Name() string { return "plain" }

// InitializeString implements Engine
func (e *PlainEngine) InitializeString(s core.Session) string {
	return s.Name + " Session Log:\nDate: " + s.Now().Format(e.DateTimeLayout) + "\n"
}

// FormatMessage implements Engine
func (e *PlainEngine) FormatMessage(s core.Session, level core.Level, parts ...core.Part) string {
	return formatWith(e, s, level, parts)
}

// FormatMessageTo implements BufferEngine
func (e *PlainEngine) FormatMessageTo(buf *bytes.Buffer, s core.Session, level core.Level, parts []core.Part) bool {
	if !renderable(level, parts) {
		return false
	}
	writeTextRecord(buf, s.Now(), e.TimeLayout, spaceLabel(level), parts)
	return true
}

// FinalizeString implements Engine
func (e *PlainEngine) FinalizeString(s core.Session) string {
	return "\nEnd of session log.\n" + s.Now().Format(e.DateTimeLayout)
}

// writeTextRecord writes "<time> [<label>] <primary>" followed by one
// indented line per continuation part.
func writeTextRecord(buf *bytes.Buffer, t time.Time, layout, label string, parts []core.Part) {
	appendTime(buf, t, layout)
	buf.WriteString(" [")
	buf.WriteString(label)
	buf.WriteString("] ")
	buf.WriteString(parts[0].Text())

	for _, p := range parts[1:] {
		buf.WriteByte('\n')
		buf.WriteString(continuationIndent)
		buf.WriteString(p.Text())
	}
}
