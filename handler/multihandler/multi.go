package multihandler

import (
	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers []handler.Handler
	// retains[i] is set when handlers[i] may keep the entry after Handle
	// returns, so it must be given a copy it owns.
	retains []bool
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...handler.Handler) *MultiHandler {
	m := &MultiHandler{
		handlers: handlers,
		retains:  make([]bool, len(handlers)),
	}
	for i, h := range handlers {
		if rc, ok := h.(handler.Recycler); !ok || !rc.CanRecycleEntry() {
			m.retains[i] = true
		}
	}
	return m
}

// Handle processes a log entry by sending it to all handlers.
// Every child sees the entry; the last error is returned. Children that
// keep entries past Handle, such as async handlers, each get their own
// copy, so the original stays with the caller.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var lastErr error
	for i, child := range h.handlers {
		e := entry
		if h.retains[i] {
			e = entry.Clone()
		}
		if err := child.Handle(e); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// CanRecycleEntry always returns true: retaining children work on copies.
func (h *MultiHandler) CanRecycleEntry() bool {
	return true
}

// Stats sums the statistics of every child that keeps them.
func (h *MultiHandler) Stats() handler.Snapshot {
	total := handler.Snapshot{DroppedTotal: make(map[core.Level]uint64)}
	for _, child := range h.handlers {
		sp, ok := child.(handler.StatsProvider)
		if !ok {
			continue
		}
		s := sp.Stats()
		for level, n := range s.DroppedTotal {
			total.DroppedTotal[level] += n
		}
		total.BlockedTotal += s.BlockedTotal
		total.ProcessedTotal += s.ProcessedTotal
	}
	return total
}

// Close closes all handlers, finalizing each child's session
func (h *MultiHandler) Close() error {
	var lastErr error
	for _, child := range h.handlers {
		if err := child.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
