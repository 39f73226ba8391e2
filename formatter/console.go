package formatter

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/philipp01105/sessionlog/core"
)

// terminal colors per level, ANSI 256 palette
var consoleColors = [...]lipgloss.Color{
	core.TraceLevel:   lipgloss.Color("250"),
	core.DebugLevel:   lipgloss.Color("244"),
	core.InfoLevel:    lipgloss.Color("39"),
	core.WarningLevel: lipgloss.Color("214"),
	core.ErrorLevel:   lipgloss.Color("196"),
	core.FatalLevel:   lipgloss.Color("129"),
}

// ConsoleEngine is the plain text layout with the severity label colored
// for terminals. Colors are dropped automatically when the output is not
// a terminal.
type ConsoleEngine struct {
	PlainEngine
	labels [len(consoleColors)]string
}

// NewConsoleEngine creates a new console engine
func NewConsoleEngine(cfg Config) *ConsoleEngine {
	e := &ConsoleEngine{PlainEngine: PlainEngine{Config: cfg.withDefaults()}}
	for i, c := range consoleColors {
		style := lipgloss.NewStyle().Foreground(c).Bold(core.Level(i) == core.FatalLevel)
		label := severities[i].label
		// style only the letters so the padding survives untouched
		e.labels[i] = style.Render(label) + strings.Repeat(" ", labelWidth-len(label))
	}
	return e
}

// Name implements Engine
func (e *ConsoleEngine) Name() string { return "console" }

// FormatMessage implements Engine
func (e *ConsoleEngine) FormatMessage(s core.Session, level core.Level, parts ...core.Part) string {
	return formatWith(e, s, level, parts)
}

// FormatMessageTo implements BufferEngine
func (e *ConsoleEngine) FormatMessageTo(buf *bytes.Buffer, s core.Session, level core.Level, parts []core.Part) bool {
	if !renderable(level, parts) {
		return false
	}
	writeTextRecord(buf, s.Now(), e.TimeLayout, e.labels[level], parts)
	return true
}
