// Package sloghandler provides an adapter from handler.Handler to
// log/slog.Handler, allowing sessionlog to serve as a backend for the
// standard library's structured logging.
//
// The record message becomes the primary part. Attributes follow as
// "key=value" continuation parts, with group names joined by dots.
package sloghandler
