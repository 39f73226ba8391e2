package handler

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
)

// Sink writes one session at a time to an io.Writer through a
// formatting engine. It guarantees the session protocol: one header,
// any number of records, one footer. Sink is safe for concurrent use.
type Sink struct {
	mu      sync.Mutex
	w       io.Writer
	engine  formatter.Engine
	session core.Session
	stats   *Stats
	buf     bytes.Buffer
	active  bool
}

// NewSink creates a sink and starts its first session on w. A nil stats
// gets a fresh Stats.
func NewSink(w io.Writer, e formatter.Engine, s core.Session, stats *Stats) (*Sink, error) {
	if stats == nil {
		stats = NewStats()
	}
	k := &Sink{engine: e, session: s, stats: stats}
	k.buf.Grow(256)

	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.begin(w); err != nil {
		return nil, err
	}
	return k, nil
}

// begin writes the header to w and makes it the current destination.
// Callers hold mu.
func (k *Sink) begin(w io.Writer) error {
	k.w = w
	k.active = true
	if header := k.engine.InitializeString(k.session); header != "" {
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
	}
	return nil
}

// end writes the footer once. Callers hold mu.
func (k *Sink) end() error {
	if !k.active {
		return nil
	}
	k.active = false
	if footer := k.engine.FinalizeString(k.session); footer != "" {
		if _, err := io.WriteString(k.w, footer); err != nil {
			return err
		}
	}
	return nil
}

// Write renders entry as one line of the current session. Entries with a
// sentinel level or no parts produce no output and are not counted.
func (k *Sink) Write(entry *core.Entry) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.active {
		return ErrClosed
	}

	k.buf.Reset()
	if !formatter.AppendRecord(&k.buf, k.engine, k.session.At(entry.Time), entry.Level, entry.Parts) {
		return nil
	}
	if _, err := k.w.Write(k.buf.Bytes()); err != nil {
		return err
	}
	k.stats.IncrementProcessed()
	return nil
}

// Restart finalizes the current session and starts a new one on w.
// The swap callback runs between the two, after the footer has been
// written, and may flush or replace the old destination; it returns the
// writer for the new session.
func (k *Sink) Restart(swap func(old io.Writer) (io.Writer, error)) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.end(); err != nil {
		return err
	}
	w, err := swap(k.w)
	if err != nil {
		return err
	}
	return k.begin(w)
}

// Finalize writes the session footer. Calling it more than once is a no-op.
func (k *Sink) Finalize() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.end()
}

// Active reports whether a session is open.
func (k *Sink) Active() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.active
}

// Stats returns the sink's statistics
func (k *Sink) Stats() *Stats {
	return k.stats
}
