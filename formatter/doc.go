// Package formatter defines the formatting engines that render log
// records into session documents.
//
// An Engine has three operations that together form a session:
// InitializeString writes the header once, FormatMessage renders one
// record per call, and FinalizeString writes the footer once. Engines
// never enforce that ordering themselves; the handlers in package
// handler do.
//
// Engines are immutable after construction and read nothing but their
// arguments: the name and clock arrive in a core.Session, and color
// overrides come from an injected ColorHinter. They are therefore safe
// for concurrent use as long as the hinter is.
//
// Built-in engines are plain, rich, xml, html, raw and console. They are
// selected by name through New, and new engines can be added with
// Register. All of them also implement BufferEngine so handlers can
// render into a handler-owned buffer; the string-returning methods use a
// pooled bytes.Buffer internally.
//
// The severity label of every record comes from one lookup table, left
// aligned in a field of exactly eight runes. Plain and HTML pad with
// spaces; rich text pads with U+00A0 so HTML renderers do not collapse
// the alignment.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
