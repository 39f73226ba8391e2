// Package benchmark compares sessionlog engines and handlers with each
// other and with zap, logrus, zerolog and slog. It is a separate module
// so the competitors stay out of the main dependency graph.
package benchmark

import (
	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
)

// noopHandler recycles every entry without formatting it
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Parts)
	core.PutEntry(e)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
