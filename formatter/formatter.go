package formatter

import (
	"bytes"
	"sync"
	"time"

	"github.com/philipp01105/sessionlog/core"
)

// Engine renders log records and the session header and footer around them.
type Engine interface {
	// Name returns the registry name of the engine
	Name() string
	// InitializeString returns the session header
	InitializeString(s core.Session) string
	// FormatMessage renders one record. It returns "" for the filter
	// sentinels core.NoneLevel and core.AllLevels and for empty parts.
	FormatMessage(s core.Session, level core.Level, parts ...core.Part) string
	// FinalizeString returns the session footer
	FinalizeString(s core.Session) string
}

// BufferEngine is an optional interface that engines can implement
// to render a record directly into a caller-provided buffer, avoiding
// the internal buffer pool and the string copy.
type BufferEngine interface {
	// FormatMessageTo appends the rendered record to buf and reports
	// whether anything was written.
	FormatMessageTo(buf *bytes.Buffer, s core.Session, level core.Level, parts []core.Part) bool
}

// Default layouts, matching the classic session log output.
const (
	DefaultTimeLayout     = "15:04:05"
	DefaultDateTimeLayout = "Mon Jan 2 15:04:05 2006"
	DefaultDateLayout     = "Mon Jan 2 2006"
)

// continuationIndent aligns continuation lines under the primary text.
const continuationIndent = "            "

// Config holds common engine configuration
type Config struct {
	// TimeLayout formats the per-record time (default: DefaultTimeLayout)
	TimeLayout string
	// DateTimeLayout formats header and footer timestamps (default: DefaultDateTimeLayout)
	DateTimeLayout string
	// DateLayout formats the HTML heading date (default: DefaultDateLayout)
	DateLayout string
	// ColorHints overrides per-severity colors in rich output (optional)
	ColorHints ColorHinter
}

func (c Config) withDefaults() Config {
	if c.TimeLayout == "" {
		c.TimeLayout = DefaultTimeLayout
	}
	if c.DateTimeLayout == "" {
		c.DateTimeLayout = DefaultDateTimeLayout
	}
	if c.DateLayout == "" {
		c.DateLayout = DefaultDateLayout
	}
	return c
}

// renderable reports whether a record produces any output at all.
func renderable(level core.Level, parts []core.Part) bool {
	return level.Renderable() && len(parts) > 0
}

func appendTime(buf *bytes.Buffer, t time.Time, layout string) {
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), layout))
}

// formatWith renders through a BufferEngine using a pooled buffer.
func formatWith(e BufferEngine, s core.Session, level core.Level, parts []core.Part) string {
	buf := getBuffer()
	defer putBuffer(buf)

	if !e.FormatMessageTo(buf, s, level, parts) {
		return ""
	}
	return buf.String()
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
