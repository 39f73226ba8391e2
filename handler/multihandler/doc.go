// Package multihandler provides a fan-out handler that dispatches log
// entries to multiple child handlers, each owning its own session.
package multihandler
