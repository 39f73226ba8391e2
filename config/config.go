// Package config loads sessionlog settings from JSON5 or TOML files and
// the environment, and builds a ready Logger from them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/titanous/json5"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler"
	"github.com/philipp01105/sessionlog/handler/consolehandler"
	"github.com/philipp01105/sessionlog/handler/filehandler"
	"github.com/philipp01105/sessionlog/handler/multihandler"
	"github.com/philipp01105/sessionlog/logger"
)

// Environment variables that override file settings
const (
	EnvEngine  = "SESSIONLOG_ENGINE"
	EnvLevel   = "SESSIONLOG_LEVEL"
	EnvSession = "SESSIONLOG_SESSION"
	EnvFile    = "SESSIONLOG_FILE"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds the logging configuration
type Config struct {
	Engine         string      `json:"engine" toml:"engine"`
	Session        string      `json:"session" toml:"session"`
	Level          string      `json:"level" toml:"level"`
	TimeLayout     string      `json:"time_layout" toml:"time_layout"`
	DateTimeLayout string      `json:"datetime_layout" toml:"datetime_layout"`
	Console        Console     `json:"console" toml:"console"`
	File           File        `json:"file" toml:"file"`
	ColorHints     []ColorHint `json:"color_hints" toml:"color_hints"`
}

// Console configures the console handler
type Console struct {
	Enabled bool `json:"enabled" toml:"enabled"`
	Async   bool `json:"async" toml:"async"`
	// Writer is "stdout" or "stderr"
	Writer string `json:"writer" toml:"writer"`
}

// File configures the file handler; an empty Path disables it
type File struct {
	Path       string `json:"path" toml:"path"`
	MaxSize    int64  `json:"max_size" toml:"max_size"`
	MaxAge     string `json:"max_age" toml:"max_age"` // time.Duration syntax, e.g. "24h"
	MaxBackups int    `json:"max_backups" toml:"max_backups"`
	Async      bool   `json:"async" toml:"async"`
}

// ColorHint maps a regular expression to a color for one level (or "all")
type ColorHint struct {
	Pattern string `json:"pattern" toml:"pattern"`
	Level   string `json:"level" toml:"level"`
	Color   string `json:"color" toml:"color"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Engine: "plain",
		Level:  "info",
		Console: Console{
			Enabled: true,
			Writer:  "stdout",
		},
	}
}

// Load reads path on top of the defaults and applies environment
// overrides. ".json" and ".json5" files are parsed as JSON5, ".toml"
// files as TOML. An empty path only applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.decode(filepath.Ext(path), data); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func (c *Config) decode(ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".json", ".json5":
		return json5.Unmarshal(data, c)
	case ".toml":
		return toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ApplyEnv overrides settings from SESSIONLOG_* environment variables
func (c *Config) ApplyEnv() {
	if engine := os.Getenv(EnvEngine); engine != "" {
		c.Engine = engine
	}
	if level := os.Getenv(EnvLevel); level != "" {
		c.Level = level
	}
	if session := os.Getenv(EnvSession); session != "" {
		c.Session = session
	}
	if file := os.Getenv(EnvFile); file != "" {
		c.File.Path = file
	}
}

// Validate checks that every name and value can be resolved
func (c *Config) Validate() error {
	var errs []error

	if _, err := formatter.Lookup(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if _, err := core.ParseLevel(c.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Console.Enabled {
		switch strings.ToLower(c.Console.Writer) {
		case "", "stdout", "stderr":
		default:
			errs = append(errs, fmt.Errorf("console writer %q: want stdout or stderr", c.Console.Writer))
		}
	}
	if c.File.MaxSize < 0 {
		errs = append(errs, errors.New("file max_size must not be negative"))
	}
	if c.File.MaxBackups < 0 {
		errs = append(errs, errors.New("file max_backups must not be negative"))
	}
	if _, err := c.maxAge(); err != nil {
		errs = append(errs, err)
	}
	if !c.Console.Enabled && c.File.Path == "" {
		errs = append(errs, errors.New("no handler enabled"))
	}
	if _, err := c.colorHints(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c *Config) maxAge() (time.Duration, error) {
	if c.File.MaxAge == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.File.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("file max_age: %w", err)
	}
	if d < 0 {
		return 0, errors.New("file max_age must not be negative")
	}
	return d, nil
}

func (c *Config) colorHints() (*formatter.ColorHints, error) {
	if len(c.ColorHints) == 0 {
		return nil, nil
	}
	hints := formatter.NewColorHints()
	for i, h := range c.ColorHints {
		level := core.AllLevels
		if h.Level != "" {
			l, err := core.ParseLevel(h.Level)
			if err != nil {
				return nil, fmt.Errorf("color_hints[%d]: %w", i, err)
			}
			level = l
		}
		if err := hints.Add(h.Pattern, level, h.Color); err != nil {
			return nil, fmt.Errorf("color_hints[%d]: %w", i, err)
		}
	}
	return hints, nil
}

// NewEngine builds the configured formatting engine
func (c *Config) NewEngine() (formatter.Engine, error) {
	hints, err := c.colorHints()
	if err != nil {
		return nil, err
	}
	fc := formatter.Config{
		TimeLayout:     c.TimeLayout,
		DateTimeLayout: c.DateTimeLayout,
	}
	if hints != nil {
		fc.ColorHints = hints
	}
	return formatter.New(c.Engine, fc)
}

// NewSession returns the configured session with the system clock
func (c *Config) NewSession() core.Session {
	name := c.Session
	if name == "" {
		name = consolehandler.DefaultSessionName()
	}
	return core.NewSession(name, core.SystemClock{})
}

func (c *Config) consoleWriter() io.Writer {
	if strings.EqualFold(c.Console.Writer, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

// NewHandler builds the configured handlers. Console and file handlers
// get their own engine instance and share the session name.
func (c *Config) NewHandler() (handler.Handler, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	session := c.NewSession()

	var handlers []handler.Handler
	closeAll := func() {
		for _, h := range handlers {
			_ = h.Close()
		}
	}

	if c.Console.Enabled {
		engine, err := c.NewEngine()
		if err != nil {
			return nil, err
		}
		h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:  c.consoleWriter(),
			Engine:  engine,
			Session: session,
			Async:   c.Console.Async,
		})
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}

	if c.File.Path != "" {
		engine, err := c.NewEngine()
		if err != nil {
			closeAll()
			return nil, err
		}
		maxAge, _ := c.maxAge()
		h, err := filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:   c.File.Path,
			Engine:     engine,
			Session:    session,
			Async:      c.File.Async,
			MaxSize:    c.File.MaxSize,
			MaxAge:     maxAge,
			MaxBackups: c.File.MaxBackups,
		})
		if err != nil {
			closeAll()
			return nil, err
		}
		handlers = append(handlers, h)
	}

	if len(handlers) == 1 {
		return handlers[0], nil
	}
	return multihandler.NewMultiHandler(handlers...), nil
}

// Build validates the config and returns a Logger over its handlers
func (c *Config) Build() (*logger.Logger, error) {
	h, err := c.NewHandler()
	if err != nil {
		return nil, err
	}
	level, _ := core.ParseLevel(c.Level)
	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(level).
		Build(), nil
}

// String renders the config as TOML
func (c *Config) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return strconv.Quote(err.Error())
	}
	return string(data)
}
