package core

import "time"

// Session is the context every engine operation receives: the
// application/session name embedded in headers and the clock read for
// timestamps. The zero Session has an empty name and uses the system clock.
type Session struct {
	Name  string
	Clock Clock
}

// NewSession returns a Session with the given name and clock.
func NewSession(name string, clock Clock) Session {
	return Session{Name: name, Clock: clock}
}

// Now reads the session clock.
func (s Session) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// At returns a copy of the session whose clock is pinned to t.
// Handlers that format after the fact use it so a record carries the
// time it was captured, not the time it was written. A zero t leaves
// the session unchanged.
func (s Session) At(t time.Time) Session {
	if t.IsZero() {
		return s
	}
	s.Clock = FixedClock(t)
	return s
}
