package filehandler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler"
)

// backupTimeFormat is appended to rotated file names
const backupTimeFormat = "2006-01-02T15-04-05.000"

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Engine to use (default: plain engine)
	Engine formatter.Engine
	// Session supplies the name and clock (default: file base name, system clock)
	Session core.Session
	// Async enables asynchronous logging
	Async bool
	// Queue configures the async queue; ignored unless Async is set
	Queue handler.QueueConfig
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// MaxAge is the maximum age of a session file before rotation (0 = no age rotation)
	MaxAge time.Duration
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
}

// countingWriter tracks total bytes written through it
type countingWriter struct {
	w       io.Writer
	written int64
}

func (c *countingWriter) Write(p []byte) (n int, err error) {
	n, err = c.w.Write(p)
	c.written += int64(n)
	return
}

// FileHandler writes one session per file
type FileHandler struct {
	mu         sync.Mutex // serializes rotation checks with writes
	filename   string
	file       *os.File
	bufWriter  *bufio.Writer
	counter    *countingWriter
	sink       *handler.Sink
	queue      *handler.Queue
	maxSize    int64
	maxAge     time.Duration
	maxBackups int
	openedAt   time.Time
	closeOnce  sync.Once
	closeErr   error
	closed     bool
}

// NewFileHandler creates the file (and its directory) and writes the
// session header.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}
	if cfg.Engine == nil {
		cfg.Engine = formatter.NewPlainEngine(formatter.Config{})
	}
	if cfg.Session.Name == "" {
		cfg.Session.Name = strings.TrimSuffix(filepath.Base(cfg.Filename), filepath.Ext(cfg.Filename))
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, err
	}

	h := &FileHandler{
		filename:   cfg.Filename,
		maxSize:    cfg.MaxSize,
		maxAge:     cfg.MaxAge,
		maxBackups: cfg.MaxBackups,
	}

	// A previous session must not share a file with the new one
	if info, err := os.Stat(cfg.Filename); err == nil && info.Size() > 0 {
		if err := h.backup(); err != nil {
			return nil, fmt.Errorf("rotate existing %s: %w", cfg.Filename, err)
		}
	}

	w, err := h.open()
	if err != nil {
		return nil, err
	}

	h.sink, err = handler.NewSink(w, cfg.Engine, cfg.Session, handler.NewStats())
	if err != nil {
		_ = h.file.Close()
		return nil, err
	}

	if cfg.Async {
		h.queue = handler.NewQueue(cfg.Queue, h.write, h.sink.Stats())
	}
	return h, nil
}

// open creates a fresh file and returns the writer a session writes to.
func (h *FileHandler) open() (io.Writer, error) {
	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	h.file = file
	h.bufWriter = bufio.NewWriterSize(file, 4096)
	h.counter = &countingWriter{w: h.bufWriter}
	h.openedAt = time.Now()
	return h.counter, nil
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if h.queue != nil {
		return h.queue.Enqueue(entry)
	}
	return h.write(entry)
}

// write rotates if needed and writes the entry to the current session
func (h *FileHandler) write(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return handler.ErrClosed
	}
	if err := h.rotateIfNeeded(); err != nil {
		return err
	}
	return h.sink.Write(entry)
}

// rotateIfNeeded checks and performs rotation if needed. Callers hold mu.
func (h *FileHandler) rotateIfNeeded() error {
	needRotate := false

	// Check size-based rotation
	if h.maxSize > 0 && h.counter.written >= h.maxSize {
		needRotate = true
	}

	// Check age-based rotation
	if h.maxAge > 0 && time.Since(h.openedAt) >= h.maxAge {
		needRotate = true
	}

	if !needRotate {
		return nil
	}
	return h.rotate()
}

// Rotate ends the current session and starts a new one in a fresh file.
func (h *FileHandler) Rotate() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return handler.ErrClosed
	}
	return h.rotate()
}

// rotate performs the actual file rotation. Callers hold mu.
func (h *FileHandler) rotate() error {
	return h.sink.Restart(func(io.Writer) (io.Writer, error) {
		if err := h.closeFile(); err != nil {
			return nil, err
		}
		if err := h.backup(); err != nil {
			// If rename fails, keep writing into a fresh session in place
			w, openErr := h.open()
			if openErr != nil {
				return nil, fmt.Errorf("rotation failed: %v, reopen failed: %w", err, openErr)
			}
			return w, nil
		}
		if h.maxBackups > 0 {
			h.cleanupOldBackups()
		}
		return h.open()
	})
}

// backup renames the current file with a timestamp suffix, adding a
// sequence number if that name is already taken.
func (h *FileHandler) backup() error {
	name := h.filename + "." + time.Now().Format(backupTimeFormat)
	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			break
		}
		candidate = name + "." + strconv.Itoa(i)
	}
	return os.Rename(h.filename, candidate)
}

// Backups returns the rotated files, oldest first.
func (h *FileHandler) Backups() ([]string, error) {
	matches, err := filepath.Glob(h.filename + ".*")
	if err != nil {
		return nil, err
	}

	type backup struct {
		name string
		mod  time.Time
	}
	backups := make([]backup, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		backups = append(backups, backup{name: m, mod: info.ModTime()})
	}

	// Sort by modification time (oldest first), name breaks ties
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].mod.Equal(backups[j].mod) {
			return backups[i].name < backups[j].name
		}
		return backups[i].mod.Before(backups[j].mod)
	})

	names := make([]string, len(backups))
	for i, b := range backups {
		names[i] = b.name
	}
	return names, nil
}

// cleanupOldBackups removes old backup files based on MaxBackups
func (h *FileHandler) cleanupOldBackups() {
	backups, err := h.Backups()
	if err != nil || len(backups) <= h.maxBackups {
		return
	}
	for _, file := range backups[:len(backups)-h.maxBackups] {
		if err := os.Remove(file); err != nil {
			return
		}
	}
}

// closeFile flushes, syncs and closes the underlying file.
func (h *FileHandler) closeFile() error {
	if h.file == nil {
		return nil
	}
	flushErr := h.bufWriter.Flush()
	syncErr := h.file.Sync()
	closeErr := h.file.Close()
	h.file = nil
	return errors.Join(flushErr, syncErr, closeErr)
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *FileHandler) CanRecycleEntry() bool {
	return h.queue == nil
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.sink.Stats().GetSnapshot()
}

// Close drains pending entries, writes the session footer and closes
// the file. It is safe to call more than once.
func (h *FileHandler) Close() error {
	h.closeOnce.Do(func() {
		if h.queue != nil {
			h.queue.Close()
		}

		h.mu.Lock()
		defer h.mu.Unlock()
		h.closed = true
		h.closeErr = errors.Join(h.sink.Finalize(), h.closeFile())
	})
	return h.closeErr
}
