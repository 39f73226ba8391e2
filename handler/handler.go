package handler

import (
	"errors"

	"github.com/philipp01105/sessionlog/core"
)

// ErrClosed is returned when an entry is handed to a closed handler.
var ErrClosed = errors.New("handler closed")

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close ends the handler's session(s) and releases resources
	Close() error
}

// Recycler is an optional interface reporting whether the caller may
// return an entry to the pool as soon as Handle returns.
type Recycler interface {
	CanRecycleEntry() bool
}

// StatsProvider is implemented by handlers that keep Stats.
type StatsProvider interface {
	Stats() Snapshot
}
