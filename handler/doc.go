// Package handler provides the Handler interface and the session
// plumbing shared by its built-in implementations.
//
// A handler owns one or more sessions. The Sink type implements the
// session protocol every formatting engine expects: the header is
// written exactly once when the session starts, each entry is rendered
// on its own line, and the footer is written exactly once when the
// session ends. Sink serializes these writes, so header/footer pairing
// holds even when many goroutines log at the same time.
//
// Asynchronous handlers send entries to a bounded channel and process
// them in a background goroutine. When the queue is full, each handler
// applies a per-level OverflowPolicy: DropNewest (default for Trace
// through Warning), DropOldest, or Block with a configurable timeout
// (default for Error and Fatal).
//
// Built-in handlers:
//
//   - consolehandler writes a session to any io.Writer (default: stdout).
//   - filehandler writes a session to a file; rotation finalizes the
//     current session and starts a new one in the fresh file.
//   - multihandler fans out a single entry to multiple child handlers.
//   - sloghandler adapts a Handler to log/slog.Handler.
//
// All handlers track dropped, blocked, and processed counts via the
// Stats type, which can be queried at runtime for monitoring.
package handler
