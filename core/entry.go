package core

import (
	"sync"
	"time"
)

// Entry represents a log record: a level and an ordered, non-empty list
// of parts. Time is the capture time; engines only read it through the
// Session they are handed.
type Entry struct {
	Time  time.Time
	Level Level
	Parts []Part
}

// Primary returns the display text of the first part, or "" if there is none.
func (e *Entry) Primary() string {
	if len(e.Parts) == 0 {
		return ""
	}
	return e.Parts[0].Text()
}

// Continuations returns the parts after the primary one.
func (e *Entry) Continuations() []Part {
	if len(e.Parts) < 2 {
		return nil
	}
	return e.Parts[1:]
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Parts: make([]Part, 0, 8), // Pre-allocate for 8 parts
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Level = InfoLevel
	e.Parts = e.Parts[:0]
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	e.Parts = e.Parts[:0]
	entryPool.Put(e)
}

// Clone returns a pooled copy of e that owns its own Parts slice.
func (e *Entry) Clone() *Entry {
	c := GetEntry()
	c.Time = e.Time
	c.Level = e.Level
	c.Parts = append(c.Parts, e.Parts...)
	return c
}
