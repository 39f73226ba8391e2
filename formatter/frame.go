package formatter

import (
	"bytes"

	"github.com/philipp01105/sessionlog/core"
)

type attr struct {
	key   string
	value string
}

// frameTag is one element of a document frame. The header opens every
// tag in order and the footer closes them in reverse, so the two halves
// are generated from the same description and cannot drift apart.
type frameTag struct {
	name  string
	attrs func(s core.Session) []attr
	// head is written right after the open tag, tail right before the close tag
	head func(buf *bytes.Buffer, s core.Session)
	tail func(buf *bytes.Buffer, s core.Session)
}

type frame []frameTag

func (f frame) open(buf *bytes.Buffer, s core.Session) {
	for _, t := range f {
		buf.WriteByte('<')
		buf.WriteString(t.name)
		if t.attrs != nil {
			for _, a := range t.attrs(s) {
				buf.WriteByte(' ')
				buf.WriteString(a.key)
				buf.WriteString(`="`)
				escapeTo(buf, a.value)
				buf.WriteByte('"')
			}
		}
		buf.WriteByte('>')
		if t.head != nil {
			t.head(buf, s)
		}
	}
}

func (f frame) close(buf *bytes.Buffer, s core.Session) {
	for i := len(f) - 1; i >= 0; i-- {
		t := f[i]
		if t.tail != nil {
			t.tail(buf, s)
		}
		buf.WriteString("</")
		buf.WriteString(t.name)
		buf.WriteByte('>')
	}
}
