package multihandler

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler"
	"github.com/philipp01105/sessionlog/handler/consolehandler"
)

var testSession = core.NewSession("multi", core.FixedClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)))

type failingHandler struct {
	err    error
	closed bool
}

func (f *failingHandler) Handle(*core.Entry) error { return f.err }
func (f *failingHandler) Close() error {
	f.closed = true
	return f.err
}

func newConsole(t *testing.T, buf *bytes.Buffer, e formatter.Engine) *consolehandler.ConsoleHandler {
	t.Helper()
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:  buf,
		Engine:  e,
		Session: testSession,
	})
	if err != nil {
		t.Fatalf("NewConsoleHandler() error = %v", err)
	}
	return h
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	h1 := newConsole(t, &buf1, formatter.NewPlainEngine(formatter.Config{}))
	h2 := newConsole(t, &buf2, formatter.NewXMLEngine(formatter.Config{}))

	multi := NewMultiHandler(h1, h2)
	if !multi.CanRecycleEntry() {
		t.Error("sync children should allow recycling")
	}

	entry := core.GetEntry()
	entry.Level = core.InfoLevel
	entry.Parts = append(entry.Parts, core.Text("multi test"))

	if err := multi.Handle(entry); err != nil {
		t.Errorf("Handle() error = %v", err)
	}
	if err := multi.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if !strings.Contains(buf1.String(), "[Info    ] multi test") {
		t.Errorf("First handler did not receive message: %q", buf1.String())
	}
	if !strings.Contains(buf2.String(), "<Message_0>multi test</Message_0>") {
		t.Errorf("Second handler did not receive message: %q", buf2.String())
	}
	if !strings.HasSuffix(buf2.String(), "</Session>\n") {
		t.Errorf("Close must finalize every child session: %q", buf2.String())
	}
}

func TestMultiHandler_LastErrorWins(t *testing.T) {
	first := &failingHandler{err: errors.New("first")}
	second := &failingHandler{err: errors.New("second")}
	var buf bytes.Buffer
	ok := newConsole(t, &buf, formatter.NewRawEngine(formatter.Config{}))

	multi := NewMultiHandler(first, ok, second)

	entry := core.GetEntry()
	entry.Parts = append(entry.Parts, core.Text("still delivered"))
	if err := multi.Handle(entry); err != second.err {
		t.Errorf("Handle() error = %v, want %v", err, second.err)
	}
	if !strings.Contains(buf.String(), "still delivered") {
		t.Error("a failing child must not stop delivery to the others")
	}

	if err := multi.Close(); err != second.err {
		t.Errorf("Close() error = %v, want %v", err, second.err)
	}
	if !first.closed || !second.closed {
		t.Error("Close must reach every child")
	}
	if err := ok.Handle(entry); err != handler.ErrClosed {
		t.Errorf("child Handle() after Close = %v, want ErrClosed", err)
	}
}

func newAsyncConsole(t *testing.T, buf *bytes.Buffer) *consolehandler.ConsoleHandler {
	t.Helper()
	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:  buf,
		Engine:  formatter.NewRawEngine(formatter.Config{}),
		Session: testSession,
		Async:   true,
		Queue:   handler.QueueConfig{BufferSize: 1024},
	})
	if err != nil {
		t.Fatalf("NewConsoleHandler() error = %v", err)
	}
	return h
}

func TestMultiHandler_AsyncChildrenOwnTheirEntries(t *testing.T) {
	const n = 500
	var buf1, buf2 bytes.Buffer
	multi := NewMultiHandler(newAsyncConsole(t, &buf1), newAsyncConsole(t, &buf2))
	if !multi.CanRecycleEntry() {
		t.Fatal("the caller's entry must stay recyclable")
	}

	// Recycle right after Handle the way the logger does, so a shared
	// entry would be overwritten while the queues still hold it.
	for i := 0; i < n; i++ {
		entry := core.GetEntry()
		entry.Parts = append(entry.Parts, core.Text(fmt.Sprintf("record-%03d", i)))
		if err := multi.Handle(entry); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		core.PutEntry(entry)
	}
	if err := multi.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	for name, buf := range map[string]*bytes.Buffer{"first": &buf1, "second": &buf2} {
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if len(lines) != n {
			t.Fatalf("%s child wrote %d lines, want %d", name, len(lines), n)
		}
		seen := make(map[string]int, n)
		for _, l := range lines {
			seen[l]++
		}
		for i := 0; i < n; i++ {
			want := fmt.Sprintf("record-%03d", i)
			if seen[want] != 1 {
				t.Errorf("%s child wrote %q %d times", name, want, seen[want])
			}
		}
	}
}

func TestMultiHandler_CopiesOnlyForRetainingChildren(t *testing.T) {
	var got []*core.Entry
	keep := &recordingHandler{entries: &got}
	var buf bytes.Buffer
	syncH := newConsole(t, &buf, formatter.NewRawEngine(formatter.Config{}))

	multi := NewMultiHandler(syncH, keep)
	entry := core.GetEntry()
	entry.Level = core.WarningLevel
	entry.Parts = append(entry.Parts, core.Text("kept"))
	if err := multi.Handle(entry); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] == entry {
		t.Fatalf("a child without CanRecycleEntry must get a copy, got %v", got)
	}
	if got[0].Level != core.WarningLevel || got[0].Primary() != "kept" {
		t.Errorf("copy = %+v", got[0])
	}
	if buf.String() != "kept\n" {
		t.Errorf("sync child output = %q", buf.String())
	}
	_ = multi.Close()
}

type recordingHandler struct {
	entries *[]*core.Entry
}

func (r *recordingHandler) Handle(e *core.Entry) error {
	*r.entries = append(*r.entries, e)
	return nil
}
func (r *recordingHandler) Close() error { return nil }

func TestMultiHandler_Stats(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	syncH := newConsole(t, &buf1, formatter.NewPlainEngine(formatter.Config{}))
	async := newAsyncConsole(t, &buf2)
	multi := NewMultiHandler(syncH, async, &failingHandler{})

	for i := 0; i < 3; i++ {
		entry := core.GetEntry()
		entry.Parts = append(entry.Parts, core.Text("counted"))
		_ = multi.Handle(entry)
		core.PutEntry(entry)
	}
	// Sentinel levels are not rendered and not counted.
	none := core.GetEntry()
	none.Level = core.NoneLevel
	none.Parts = append(none.Parts, core.Text("skipped"))
	_ = multi.Handle(none)
	core.PutEntry(none)

	_ = multi.Close()

	snap := multi.Stats()
	if snap.ProcessedTotal != 6 {
		t.Errorf("ProcessedTotal = %d, want 6", snap.ProcessedTotal)
	}
	if snap.BlockedTotal != 0 {
		t.Errorf("BlockedTotal = %d, want 0", snap.BlockedTotal)
	}
	for level, n := range snap.DroppedTotal {
		if n != 0 {
			t.Errorf("DroppedTotal[%v] = %d, want 0", level, n)
		}
	}
}
