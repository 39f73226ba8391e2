package formatter

import (
	"bytes"

	"github.com/philipp01105/sessionlog/core"
)

// RawEngine passes the primary part through untouched. It has no header
// or footer, ignores the severity of renderable records and drops
// continuation parts.
type RawEngine struct{}

// NewRawEngine creates a new raw passthrough engine
func NewRawEngine(Config) *RawEngine {
	return &RawEngine{}
}

// Name implements Engine
func (RawEngine) Name() string { return "raw" }

// InitializeString implements Engine
func (RawEngine) InitializeString(core.Session) string { return "" }

// FormatMessage implements Engine
func (e RawEngine) FormatMessage(_ core.Session, level core.Level, parts ...core.Part) string {
	if !renderable(level, parts) {
		return ""
	}
	return parts[0].Text()
}

// FormatMessageTo implements BufferEngine
func (RawEngine) FormatMessageTo(buf *bytes.Buffer, _ core.Session, level core.Level, parts []core.Part) bool {
	if !renderable(level, parts) {
		return false
	}
	buf.WriteString(parts[0].Text())
	return true
}

// FinalizeString implements Engine
func (RawEngine) FinalizeString(core.Session) string { return "" }
