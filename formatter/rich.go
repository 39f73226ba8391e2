package formatter

import (
	"bytes"

	"github.com/philipp01105/sessionlog/core"
)

// RichTextEngine formats records as rich text fragments for text widgets
// that understand a small HTML subset. Each record is wrapped in a font
// tag colored by severity or by a matching color hint; Fatal records are
// additionally bold.
type RichTextEngine struct {
	Config
}

// NewRichTextEngine creates a new rich text engine
func NewRichTextEngine(cfg Config) *RichTextEngine {
	return &RichTextEngine{Config: cfg.withDefaults()}
}

// Name implements Engine
func (e *RichTextEngine) Name() string { return "rich" }

// InitializeString implements Engine
func (e *RichTextEngine) InitializeString(s core.Session) string {
	return Escape(s.Name) + " Session Log:<br>Date: " + s.Now().Format(e.DateTimeLayout) + "<br>"
}

// FormatMessage implements Engine
func (e *RichTextEngine) FormatMessage(s core.Session, level core.Level, parts ...core.Part) string {
	return formatWith(e, s, level, parts)
}

// FormatMessageTo implements BufferEngine
func (e *RichTextEngine) FormatMessageTo(buf *bytes.Buffer, s core.Session, level core.Level, parts []core.Part) bool {
	if !renderable(level, parts) {
		return false
	}
	primary := parts[0].Text()
	bold := level == core.FatalLevel

	if bold {
		buf.WriteString("<b>")
	}
	buf.WriteString("<font color='")
	buf.WriteString(resolveColor(e.ColorHints, primary, level))
	buf.WriteString("'>")

	appendTime(buf, s.Now(), e.TimeLayout)
	buf.WriteString(" [")
	buf.WriteString(nbspLabel(level))
	buf.WriteString("] ")
	escapeTo(buf, primary)

	for _, p := range parts[1:] {
		buf.WriteString("<br>")
		buf.WriteString(continuationIndent)
		escapeTo(buf, p.Text())
	}

	buf.WriteString("</font>")
	if bold {
		buf.WriteString("</b>")
	}
	return true
}

// FinalizeString implements Engine
func (e *RichTextEngine) FinalizeString(s core.Session) string {
	return "<br>End of session log.<br>" + s.Now().Format(e.DateTimeLayout)
}
