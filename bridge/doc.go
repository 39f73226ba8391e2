// Package bridge groups adapters that route records from other Go
// logging libraries into sessionlog handlers and engines:
//
//   - zapbridge: a zapcore.Core writing to a handler.Handler
//   - logrusbridge: a logrus.Formatter rendering through an engine
//   - zerologbridge: a zerolog.LevelWriter decoding zerolog events
//
// In every bridge the library's message becomes the primary part and
// its structured fields follow as "key=value" continuation parts.
package bridge
