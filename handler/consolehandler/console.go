package consolehandler

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Engine to use (default: plain engine)
	Engine formatter.Engine
	// Session supplies the name and clock (default: executable name, system clock)
	Session core.Session
	// Async enables asynchronous logging
	Async bool
	// Queue configures the async queue; ignored unless Async is set
	Queue handler.QueueConfig
}

// ConsoleHandler writes log entries as one session to a writer
type ConsoleHandler struct {
	sink      *handler.Sink
	queue     *handler.Queue
	closeOnce sync.Once
	closeErr  error
}

// DefaultSessionName is used when no session name is configured.
func DefaultSessionName() string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		return filepath.Base(os.Args[0])
	}
	return "sessionlog"
}

// NewConsoleHandler creates a new console handler and writes the
// session header.
func NewConsoleHandler(cfg ConsoleConfig) (*ConsoleHandler, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Engine == nil {
		cfg.Engine = formatter.NewPlainEngine(formatter.Config{})
	}
	if cfg.Session.Name == "" {
		cfg.Session.Name = DefaultSessionName()
	}

	sink, err := handler.NewSink(cfg.Writer, cfg.Engine, cfg.Session, handler.NewStats())
	if err != nil {
		return nil, err
	}

	h := &ConsoleHandler{sink: sink}
	if cfg.Async {
		h.queue = handler.NewQueue(cfg.Queue, sink.Write, sink.Stats())
	}
	return h, nil
}

// Handle processes a log entry
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.queue != nil {
		return h.queue.Enqueue(entry)
	}
	return h.sink.Write(entry)
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return h.queue == nil
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.sink.Stats().GetSnapshot()
}

// Close drains pending entries and writes the session footer.
// It is safe to call more than once.
func (h *ConsoleHandler) Close() error {
	h.closeOnce.Do(func() {
		if h.queue != nil {
			h.queue.Close()
		}
		h.closeErr = h.sink.Finalize()
	})
	return h.closeErr
}
