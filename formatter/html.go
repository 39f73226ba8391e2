package formatter

import (
	"bytes"

	"github.com/philipp01105/sessionlog/core"
)

// HTMLEngine formats a session as an HTML document holding a two column
// table (time, message) with one row per record.
//
// Only the primary part of a record is rendered; continuation parts are
// dropped. This is a known limitation of the HTML layout, not an error.
type HTMLEngine struct {
	Config
	frame frame
}

// NewHTMLEngine creates a new HTML engine
func NewHTMLEngine(cfg Config) *HTMLEngine {
	e := &HTMLEngine{Config: cfg.withDefaults()}
	e.frame = frame{
		{
			name: "html",
			head: func(buf *bytes.Buffer, s core.Session) {
				buf.WriteString("<head><title>")
				e.writeHeading(buf, s)
				buf.WriteString("</title></head>\n")
			},
		},
		{
			name: "body",
			attrs: func(core.Session) []attr {
				return []attr{{key: "style", value: "font-family: Arial"}}
			},
			head: func(buf *bytes.Buffer, s core.Session) {
				buf.WriteString("<h2>")
				e.writeHeading(buf, s)
				buf.WriteString("</h2>\n")
			},
			tail: func(buf *bytes.Buffer, s core.Session) {
				buf.WriteString("<br>End of session log: ")
				appendTime(buf, s.Now(), e.DateTimeLayout)
			},
		},
		{
			name: "table",
			attrs: func(core.Session) []attr {
				return []attr{
					{key: "width", value: "100%"},
					{key: "style", value: "table-layout:auto; margin: auto; border-width:thin; border-color:#000000;"},
				}
			},
			head: func(buf *bytes.Buffer, _ core.Session) {
				buf.WriteString("\n<tr><td width=\"10%\"><b>Time</b></td><td><b>Message</b></td></tr>\n")
			},
		},
	}
	return e
}

func (e *HTMLEngine) writeHeading(buf *bytes.Buffer, s core.Session) {
	escapeTo(buf, s.Name)
	buf.WriteString(" - ")
	appendTime(buf, s.Now(), e.DateLayout)
}

// Name implements Engine
func (e *HTMLEngine) Name() string { return "html" }

// InitializeString implements Engine
func (e *HTMLEngine) InitializeString(s core.Session) string {
	buf := getBuffer()
	defer putBuffer(buf)

	e.frame.open(buf, s)
	return buf.String()
}

// FormatMessage implements Engine
func (e *HTMLEngine) FormatMessage(s core.Session, level core.Level, parts ...core.Part) string {
	return formatWith(e, s, level, parts)
}

// FormatMessageTo implements BufferEngine
func (e *HTMLEngine) FormatMessageTo(buf *bytes.Buffer, s core.Session, level core.Level, parts []core.Part) bool {
	if !renderable(level, parts) {
		return false
	}
	buf.WriteString("<tr><td>")
	appendTime(buf, s.Now(), e.TimeLayout)
	buf.WriteString("</td><td><font color='")
	buf.WriteString(styleOf(level).color)
	buf.WriteString("'>[")
	buf.WriteString(spaceLabel(level))
	buf.WriteString("] ")
	escapeTo(buf, parts[0].Text())
	buf.WriteString("</font></td></tr>")
	return true
}

// FinalizeString implements Engine
func (e *HTMLEngine) FinalizeString(s core.Session) string {
	buf := getBuffer()
	defer putBuffer(buf)

	e.frame.close(buf, s)
	buf.WriteByte('\n')
	return buf.String()
}
