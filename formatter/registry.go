package formatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownEngine is returned by New for names with no registered factory.
var ErrUnknownEngine = errors.New("unknown formatting engine")

// Factory builds an engine from a config
type Factory func(cfg Config) Engine

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		"plain":   func(cfg Config) Engine { return NewPlainEngine(cfg) },
		"rich":    func(cfg Config) Engine { return NewRichTextEngine(cfg) },
		"xml":     func(cfg Config) Engine { return NewXMLEngine(cfg) },
		"html":    func(cfg Config) Engine { return NewHTMLEngine(cfg) },
		"raw":     func(cfg Config) Engine { return NewRawEngine(cfg) },
		"console": func(cfg Config) Engine { return NewConsoleEngine(cfg) },
	}
	aliases = map[string]string{
		"default":  "plain",
		"text":     "plain",
		"richtext": "rich",
		"qt":       "raw",
	}
)

// Register adds or replaces the factory for name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = f
}

// New builds the engine registered under name (case-insensitive).
func New(name string, cfg Config) (Engine, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}

	registryMu.RLock()
	f, ok := registry[key]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return f(cfg), nil
}

// Lookup builds the engine registered under name with the default config.
func Lookup(name string) (Engine, error) {
	return New(name, Config{})
}

// Names returns the registered engine names, sorted. Aliases are not listed.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
