// Package filehandler provides a file handler that writes formatted
// sessions to a file with automatic rotation by size, age, or interval.
//
// Every file holds exactly one complete session. Rotation writes the
// footer of the current session, renames the file with a timestamp
// suffix, and starts a new session (header first) in a fresh file. An
// existing non-empty file is rotated out before the first session
// starts, so markup engines always produce well-formed documents.
//
// The handler is synchronous by default. With Async set, entries pass
// through a bounded queue with per-level OverflowPolicy and a dedicated
// background goroutine.
package filehandler
