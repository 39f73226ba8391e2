package formatter

import (
	"strings"

	"github.com/philipp01105/sessionlog/core"
)

// labelWidth is the width, in runes, of every rendered severity label.
const labelWidth = 8

const nbsp = '\u00a0'

// severityStyle is the per-level rendering data shared by every engine.
type severityStyle struct {
	label string
	color string
}

var severities = [...]severityStyle{
	core.TraceLevel:   {label: "Trace", color: "lightgrey"},
	core.DebugLevel:   {label: "Debug", color: "grey"},
	core.InfoLevel:    {label: "Info", color: "black"},
	core.WarningLevel: {label: "Warning", color: "orange"},
	core.ErrorLevel:   {label: "Error", color: "red"},
	core.FatalLevel:   {label: "Fatal", color: "purple"},
}

// pre-padded labels to avoid per-call padding work
var (
	spaceLabels [len(severities)]string
	nbspLabels  [len(severities)]string
)

func init() {
	for i, s := range severities {
		spaceLabels[i] = padLabel(s.label, ' ')
		nbspLabels[i] = padLabel(s.label, nbsp)
	}
}

func padLabel(label string, pad rune) string {
	n := labelWidth - len([]rune(label))
	if n <= 0 {
		return label
	}
	return label + strings.Repeat(string(pad), n)
}

// styleOf returns the style for a renderable level.
func styleOf(level core.Level) severityStyle {
	return severities[level]
}

// spaceLabel returns the space padded label of a renderable level.
func spaceLabel(level core.Level) string {
	return spaceLabels[level]
}

// nbspLabel returns the U+00A0 padded label of a renderable level.
func nbspLabel(level core.Level) string {
	return nbspLabels[level]
}
