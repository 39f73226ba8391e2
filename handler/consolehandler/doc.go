// Package consolehandler provides a console handler that writes one
// formatted session to any io.Writer (default: os.Stdout).
//
// The session header is written when the handler is created and the
// footer when it is closed. In async mode entries go through a bounded
// queue with per-level OverflowPolicy and a dedicated background
// goroutine; Close drains the queue before writing the footer.
package consolehandler
