package formatter

import (
	"bytes"
	"unicode/utf8"
)

// Escape replaces the markup characters & < > and " with entities, and
// replaces invalid UTF-8 and runes that XML 1.0 does not allow (C0
// controls other than tab, newline and carriage return, surrogates,
// U+FFFE and U+FFFF) with U+FFFD.
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}
	var buf bytes.Buffer
	buf.Grow(len(s) + 16)
	escapeTo(&buf, s)
	return buf.String()
}

// escapeTo writes the escaped form of s to buf
func escapeTo(buf *bytes.Buffer, s string) {
	if !needsEscape(s) {
		buf.WriteString(s)
		return
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case r == '"':
			buf.WriteString("&quot;")
		case r == utf8.RuneError && size == 1, !isXMLChar(r):
			buf.WriteRune(utf8.RuneError)
		default:
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
}

// needsEscape reports whether s holds a markup character, a control
// character or a byte outside ASCII that has to be checked rune by rune.
func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '&', c == '<', c == '>', c == '"':
			return true
		case c < 0x20 && c != '\t' && c != '\n' && c != '\r':
			return true
		case c >= utf8.RuneSelf:
			return true
		}
	}
	return false
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= utf8.MaxRune
}
