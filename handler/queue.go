package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/sessionlog/core"
)

// QueueConfig holds configuration for an async queue
type QueueConfig struct {
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *QueueConfig) ApplyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 1000
	}
	if c.OverflowPolicy == nil {
		c.OverflowPolicy = DefaultLevelPolicy()
	}
	if c.BlockTimeout == 0 {
		c.BlockTimeout = 100 * time.Millisecond
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = 5 * time.Second
	}
}

// Queue hands entries to a background goroutine that writes them with
// the supplied write function. Entries are returned to the pool after
// they are written or dropped.
type Queue struct {
	cfg    QueueConfig
	write  func(*core.Entry) error
	stats  *Stats
	queue  chan *core.Entry
	wg     sync.WaitGroup
	mu     sync.RWMutex // held for reading while enqueuing, for writing while closing
	closed bool
	done   chan struct{}
}

// NewQueue starts the background writer.
func NewQueue(cfg QueueConfig, write func(*core.Entry) error, stats *Stats) *Queue {
	cfg.ApplyDefaults()
	if stats == nil {
		stats = NewStats()
	}
	q := &Queue{
		cfg:   cfg,
		write: write,
		stats: stats,
		queue: make(chan *core.Entry, cfg.BufferSize),
		done:  make(chan struct{}),
	}
	q.wg.Add(1)
	go q.process()
	return q
}

// Enqueue sends an entry to the queue with overflow policy handling.
func (q *Queue) Enqueue(entry *core.Entry) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}

	switch PolicyFor(q.cfg.OverflowPolicy, entry.Level) {
	case Block:
		select {
		case q.queue <- entry:
			return nil
		default:
		}
		timer := time.NewTimer(q.cfg.BlockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- entry:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			q.stats.IncrementBlocked()
			err := q.write(entry)
			core.PutEntry(entry)
			return err
		}

	case DropOldest:
		select {
		case q.queue <- entry:
			return nil
		default:
		}
		// Queue full - try to drop oldest
		select {
		case old := <-q.queue:
			q.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case q.queue <- entry:
		default:
			// Still full, drop this one
			q.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
		}
		return nil

	default:
		select {
		case q.queue <- entry:
		default:
			// Queue full - drop this entry
			q.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
		}
		return nil
	}
}

// process handles async log processing
func (q *Queue) process() {
	defer q.wg.Done()

	for {
		select {
		case entry := <-q.queue:
			_ = q.write(entry)
			core.PutEntry(entry)
		case <-q.done:
			// Drain remaining entries with timeout
			deadline := time.After(q.cfg.DrainTimeout)
			for {
				select {
				case entry := <-q.queue:
					_ = q.write(entry)
					core.PutEntry(entry)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

// Close stops accepting entries, drains the queue and waits for the
// background goroutine. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.done)
	q.wg.Wait()
}

// Len returns the number of queued entries
func (q *Queue) Len() int {
	return len(q.queue)
}
