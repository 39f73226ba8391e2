// Package zerologbridge provides a zerolog.LevelWriter that decodes
// zerolog's JSON events and forwards them to a sessionlog handler.
package zerologbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
)

// LevelFromZerolog converts a zerolog.Level to a core.Level. NoLevel and
// Disabled map to NoneLevel, which handlers never render.
func LevelFromZerolog(l zerolog.Level) core.Level {
	switch l {
	case zerolog.TraceLevel:
		return core.TraceLevel
	case zerolog.DebugLevel:
		return core.DebugLevel
	case zerolog.InfoLevel:
		return core.InfoLevel
	case zerolog.WarnLevel:
		return core.WarningLevel
	case zerolog.ErrorLevel:
		return core.ErrorLevel
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return core.FatalLevel
	default:
		return core.NoneLevel
	}
}

// Writer is a zerolog.LevelWriter forwarding events to a handler. Event
// fields keep their order and follow the message as keyed parts.
type Writer struct {
	handler handler.Handler
}

// NewWriter returns a Writer forwarding to h.
func NewWriter(h handler.Handler) *Writer {
	return &Writer{handler: h}
}

// Write decodes one event, taking the level from its level field.
func (w *Writer) Write(p []byte) (int, error) {
	return w.write(zerolog.NoLevel, p)
}

// WriteLevel decodes one event logged at level.
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	return w.write(level, p)
}

// Close closes the underlying handler.
func (w *Writer) Close() error {
	return w.handler.Close()
}

func (w *Writer) write(level zerolog.Level, p []byte) (int, error) {
	ev, err := decodeEvent(p)
	if err != nil {
		return 0, fmt.Errorf("decode zerolog event: %w", err)
	}
	if level == zerolog.NoLevel {
		level = ev.level
	}

	entry := core.GetEntry()
	entry.Time = ev.time
	entry.Level = LevelFromZerolog(level)
	entry.Parts = append(entry.Parts, core.Text(ev.message))
	entry.Parts = append(entry.Parts, ev.parts...)

	err = w.handler.Handle(entry)
	if rc, ok := w.handler.(handler.Recycler); ok && rc.CanRecycleEntry() {
		core.PutEntry(entry)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

type event struct {
	level   zerolog.Level
	time    time.Time
	message string
	parts   []core.Part
}

// decodeEvent walks the top-level JSON object in order.
func decodeEvent(p []byte) (event, error) {
	ev := event{level: zerolog.NoLevel, time: time.Now()}

	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil {
		return ev, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ev, fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return ev, err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return ev, err
		}

		switch key {
		case zerolog.LevelFieldName:
			var s string
			if json.Unmarshal(raw, &s) == nil {
				if l, err := zerolog.ParseLevel(s); err == nil {
					ev.level = l
				}
			}
		case zerolog.MessageFieldName:
			ev.message = rawText(raw)
		case zerolog.TimestampFieldName:
			if t, ok := parseTime(raw); ok {
				ev.time = t
			}
		case zerolog.ErrorFieldName:
			ev.parts = append(ev.parts, core.Part{Key: key, Type: core.ErrorType, Str: rawText(raw)})
		default:
			ev.parts = append(ev.parts, core.Part{Key: key, Type: core.StringType, Str: rawText(raw)})
		}
	}
	return ev, nil
}

// rawText returns strings unquoted and any other JSON value as compact text.
func rawText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var compact bytes.Buffer
	if json.Compact(&compact, raw) == nil {
		return compact.String()
	}
	return string(raw)
}

func parseTime(raw json.RawMessage) (time.Time, bool) {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		layout := zerolog.TimeFieldFormat
		if layout == "" || layout == zerolog.TimeFormatUnix {
			layout = time.RFC3339
		}
		t, err := time.Parse(layout, s)
		return t, err == nil
	}

	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	switch zerolog.TimeFieldFormat {
	case zerolog.TimeFormatUnixMs:
		return time.UnixMilli(int64(n)), true
	case zerolog.TimeFormatUnixMicro:
		return time.UnixMicro(int64(n)), true
	case zerolog.TimeFormatUnixNano:
		return time.Unix(0, int64(n)), true
	default:
		sec := int64(n)
		return time.Unix(sec, int64((n-float64(sec))*1e9)), true
	}
}
