package formatter

import (
	"bytes"
	"strconv"

	"github.com/philipp01105/sessionlog/core"
)

// XMLEngine formats a session as an XML document: a Session root element
// holding one Log element per record. Every part of a record, the primary
// one included, gets its own Message_<i> element.
type XMLEngine struct {
	Config
	frame frame
}

// NewXMLEngine creates a new XML engine
func NewXMLEngine(cfg Config) *XMLEngine {
	e := &XMLEngine{Config: cfg.withDefaults()}
	e.frame = frame{{
		name: "Session",
		attrs: func(s core.Session) []attr {
			return []attr{
				{key: "Context", value: s.Name},
				{key: "Date", value: s.Now().Format(e.DateTimeLayout)},
			}
		},
	}}
	return e
}

// Name implements Engine
func (e *XMLEngine) Name() string { return "xml" }

// InitializeString implements Engine
func (e *XMLEngine) InitializeString(s core.Session) string {
	buf := getBuffer()
	defer putBuffer(buf)

	e.frame.open(buf, s)
	return buf.String()
}

// FormatMessage implements Engine
func (e *XMLEngine) FormatMessage(s core.Session, level core.Level, parts ...core.Part) string {
	return formatWith(e, s, level, parts)
}

// FormatMessageTo implements BufferEngine
func (e *XMLEngine) FormatMessageTo(buf *bytes.Buffer, _ core.Session, level core.Level, parts []core.Part) bool {
	if !renderable(level, parts) {
		return false
	}
	buf.WriteString("<Log>\n<Type>")
	buf.WriteString(styleOf(level).label)
	buf.WriteString("</Type>")

	for i, p := range parts {
		name := "Message_" + strconv.Itoa(i)
		buf.WriteString("\n<")
		buf.WriteString(name)
		buf.WriteByte('>')
		escapeTo(buf, p.Text())
		buf.WriteString("</")
		buf.WriteString(name)
		buf.WriteByte('>')
	}

	buf.WriteString("\n</Log>")
	return true
}

// FinalizeString implements Engine
func (e *XMLEngine) FinalizeString(s core.Session) string {
	buf := getBuffer()
	defer putBuffer(buf)

	e.frame.close(buf, s)
	buf.WriteByte('\n')
	return buf.String()
}
