package formatter

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/philipp01105/sessionlog/core"
)

// ErrInvalidColor is returned when a color hint names something that is
// not a plain color name or hex value.
var ErrInvalidColor = errors.New("invalid color")

var colorName = regexp.MustCompile(`^#?[A-Za-z0-9]+$`)

// ColorHinter looks up an override color for a record's primary text.
type ColorHinter interface {
	MatchColorHint(text string, level core.Level) (color string, ok bool)
}

// ColorHintFunc adapts a function to the ColorHinter interface.
type ColorHintFunc func(text string, level core.Level) (string, bool)

// MatchColorHint calls f.
func (f ColorHintFunc) MatchColorHint(text string, level core.Level) (string, bool) {
	return f(text, level)
}

type colorHint struct {
	pattern *regexp.Regexp
	level   core.Level
	color   string
}

// ColorHints is a registry of regular expressions mapped to colors per
// level. The first matching hint in registration order wins. It is safe
// for concurrent use.
type ColorHints struct {
	mu    sync.RWMutex
	hints []colorHint
}

// NewColorHints creates an empty registry
func NewColorHints() *ColorHints {
	return &ColorHints{}
}

// Add registers a hint. Level core.AllLevels applies the hint to every level.
func (c *ColorHints) Add(pattern string, level core.Level, color string) error {
	if !colorName.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("color hint pattern %q: %w", pattern, err)
	}

	c.mu.Lock()
	c.hints = append(c.hints, colorHint{pattern: re, level: level, color: color})
	c.mu.Unlock()
	return nil
}

// Len returns the number of registered hints
func (c *ColorHints) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hints)
}

// MatchColorHint implements ColorHinter
func (c *ColorHints) MatchColorHint(text string, level core.Level) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, h := range c.hints {
		if h.level != core.AllLevels && h.level != level {
			continue
		}
		if h.pattern.MatchString(text) {
			return h.color, true
		}
	}
	return "", false
}

// resolveColor returns the hinted color for text, or the level default.
// A nil hinter, a miss, an unusable color, or a panicking hinter all
// degrade to the default.
func resolveColor(h ColorHinter, text string, level core.Level) (color string) {
	color = styleOf(level).color
	if h == nil {
		return color
	}
	defer func() {
		if recover() != nil {
			color = styleOf(level).color
		}
	}()

	if hint, ok := h.MatchColorHint(text, level); ok && colorName.MatchString(hint) {
		return hint
	}
	return color
}
