// Package logger is the public API of sessionlog. Most users only need
// to import this package.
//
// A Logger is immutable after construction. The handler, the level
// threshold and the default parts are set once via the Builder and
// never modified, so a Logger is safe for concurrent use without any
// locking on the read path.
//
// Every record is an ordered list of parts: the message is the primary
// part, the logger's default parts and the call-site parts follow as
// continuations. The handler owns the session, so the first record of a
// logger lands after the session header and Close writes the footer.
//
// The package provides a lazily created default Logger (async, plain
// engine, InfoLevel, stdout). The package-level functions Info, Error,
// Debugf, etc. delegate to it:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    Build()
//	defer log.Close()
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a threshold comparison.
package logger
