package formatter

import (
	"bytes"
	"io"

	"github.com/philipp01105/sessionlog/core"
)

// RenderDocument writes a complete session: the header, one line per
// renderable entry, and the footer. Entries that render to nothing are
// skipped.
func RenderDocument(w io.Writer, e Engine, s core.Session, entries []*core.Entry) error {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteString(e.InitializeString(s))
	for _, entry := range entries {
		AppendRecord(buf, e, s.At(entry.Time), entry.Level, entry.Parts)
	}
	buf.WriteString(e.FinalizeString(s))

	_, err := w.Write(buf.Bytes())
	return err
}

// AppendRecord renders one record followed by a newline into buf and
// reports whether anything was written.
func AppendRecord(buf *bytes.Buffer, e Engine, s core.Session, level core.Level, parts []core.Part) bool {
	if be, ok := e.(BufferEngine); ok {
		if !be.FormatMessageTo(buf, s, level, parts) {
			return false
		}
		buf.WriteByte('\n')
		return true
	}

	msg := e.FormatMessage(s, level, parts...)
	if msg == "" {
		return false
	}
	buf.WriteString(msg)
	buf.WriteByte('\n')
	return true
}
