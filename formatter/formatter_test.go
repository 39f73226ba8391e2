package formatter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/sessionlog/core"
)

var testTime = time.Date(2026, 10, 18, 14, 3, 1, 0, time.UTC)

func testSession() core.Session {
	return core.NewSession("demo", core.FixedClock(testTime))
}

func allEngines() []Engine {
	return []Engine{
		NewPlainEngine(Config{}),
		NewRichTextEngine(Config{}),
		NewXMLEngine(Config{}),
		NewHTMLEngine(Config{}),
		NewRawEngine(Config{}),
		NewConsoleEngine(Config{}),
	}
}

func TestPlainEngine_Scenario(t *testing.T) {
	e := NewPlainEngine(Config{})

	got := e.FormatMessage(testSession(), core.WarningLevel, core.Texts("disk usage high", "87%")...)
	want := "14:03:01 [Warning ] disk usage high\n            87%"
	if got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
}

func TestPlainEngine_HeaderFooter(t *testing.T) {
	e := NewPlainEngine(Config{})

	if got, want := e.InitializeString(testSession()), "demo Session Log:\nDate: Sun Oct 18 14:03:01 2026\n"; got != want {
		t.Errorf("InitializeString() = %q, want %q", got, want)
	}
	if got, want := e.FinalizeString(testSession()), "\nEnd of session log.\nSun Oct 18 14:03:01 2026"; got != want {
		t.Errorf("FinalizeString() = %q, want %q", got, want)
	}
}

func TestPlainEngine_NoEscaping(t *testing.T) {
	e := NewPlainEngine(Config{})

	got := e.FormatMessage(testSession(), core.InfoLevel, core.Text("a < b && c > d"))
	if !strings.HasSuffix(got, "a < b && c > d") {
		t.Errorf("plain output should not escape, got: %q", got)
	}
}

func TestPlainEngine_CustomLayout(t *testing.T) {
	e := NewPlainEngine(Config{TimeLayout: time.RFC3339})

	got := e.FormatMessage(testSession(), core.InfoLevel, core.Text("x"))
	if !strings.HasPrefix(got, "2026-10-18T14:03:01Z [Info    ] ") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRichTextEngine_Colors(t *testing.T) {
	tests := []struct {
		level core.Level
		want  string
	}{
		{core.InfoLevel, "<font color='black'>"},
		{core.WarningLevel, "<font color='orange'>"},
		{core.ErrorLevel, "<font color='red'>"},
		{core.FatalLevel, "<b><font color='purple'>"},
		{core.DebugLevel, "<font color='grey'>"},
		{core.TraceLevel, "<font color='lightgrey'>"},
	}

	e := NewRichTextEngine(Config{})
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := e.FormatMessage(testSession(), tt.level, core.Text("msg"))
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("FormatMessage() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestRichTextEngine_Scenario(t *testing.T) {
	e := NewRichTextEngine(Config{})

	got := e.FormatMessage(testSession(), core.WarningLevel, core.Texts("disk <usage> high", "87% & rising")...)
	want := "<font color='orange'>14:03:01 [Warning\u00a0] disk &lt;usage&gt; high<br>            87% &amp; rising</font>"
	if got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
}

func TestRichTextEngine_FatalIsBold(t *testing.T) {
	e := NewRichTextEngine(Config{})

	got := e.FormatMessage(testSession(), core.FatalLevel, core.Text("boom"))
	want := "<b><font color='purple'>14:03:01 [Fatal\u00a0\u00a0\u00a0] boom</font></b>"
	if got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
}

func TestRichTextEngine_HeaderFooter(t *testing.T) {
	e := NewRichTextEngine(Config{})

	if got, want := e.InitializeString(testSession()), "demo Session Log:<br>Date: Sun Oct 18 14:03:01 2026<br>"; got != want {
		t.Errorf("InitializeString() = %q, want %q", got, want)
	}
	if got, want := e.FinalizeString(testSession()), "<br>End of session log.<br>Sun Oct 18 14:03:01 2026"; got != want {
		t.Errorf("FinalizeString() = %q, want %q", got, want)
	}
}

func TestXMLEngine_Scenario(t *testing.T) {
	e := NewXMLEngine(Config{})

	got := e.FormatMessage(testSession(), core.WarningLevel, core.Texts("disk usage high", "87%")...)
	want := "<Log>\n<Type>Warning</Type>\n<Message_0>disk usage high</Message_0>\n<Message_1>87%</Message_1>\n</Log>"
	if got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
}

func TestXMLEngine_HeaderFooter(t *testing.T) {
	e := NewXMLEngine(Config{})
	s := core.NewSession(`my "app" & co`, core.FixedClock(testTime))

	want := `<Session Context="my &quot;app&quot; &amp; co" Date="Sun Oct 18 14:03:01 2026">`
	if got := e.InitializeString(s); got != want {
		t.Errorf("InitializeString() = %q, want %q", got, want)
	}
	if got := e.FinalizeString(s); got != "</Session>\n" {
		t.Errorf("FinalizeString() = %q", got)
	}
}

func TestXMLEngine_DocumentIsWellFormed(t *testing.T) {
	e := NewXMLEngine(Config{})
	s := testSession()

	var doc strings.Builder
	doc.WriteString(e.InitializeString(s))
	doc.WriteString(e.FormatMessage(s, core.ErrorLevel, core.Texts("<script>alert(1)</script>", `a "quoted" & value`)...))
	doc.WriteString(e.FormatMessage(s, core.InfoLevel, core.Text("plain")))
	doc.WriteString(e.FinalizeString(s))

	roots, err := countXMLRoots(doc.String())
	if err != nil {
		t.Fatalf("document is not well-formed: %v\n%s", err, doc.String())
	}
	if roots != 1 {
		t.Errorf("expected exactly one root element, got %d", roots)
	}
}

func TestXMLEngine_ControlCharacters(t *testing.T) {
	e := NewXMLEngine(Config{})
	s := core.NewSession("bell\x07 bad\xff", core.FixedClock(testTime))

	var doc strings.Builder
	doc.WriteString(e.InitializeString(s))
	doc.WriteString(e.FormatMessage(s, core.ErrorLevel, core.Texts("bell\x07 bad\xff", "nul\x00 esc\x1b tab\t")...))
	doc.WriteString(e.FinalizeString(s))

	roots, err := countXMLRoots(doc.String())
	if err != nil {
		t.Fatalf("document is not well-formed: %v\n%q", err, doc.String())
	}
	if roots != 1 {
		t.Errorf("expected exactly one root element, got %d", roots)
	}
	if !strings.Contains(doc.String(), "<Message_0>bell\uFFFD bad\uFFFD</Message_0>") {
		t.Errorf("control characters not replaced: %q", doc.String())
	}
	if !strings.Contains(doc.String(), `Context="bell\uFFFD bad\uFFFD"`) {
		t.Errorf("session name not replaced: %q", doc.String())
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`a <b> & "c"`, "a &lt;b&gt; &amp; &quot;c&quot;"},
		{"tab\tline\ncr\r", "tab\tline\ncr\r"},
		{"nul\x00", "nul\uFFFD"},
		{"\xc3\x28", "\uFFFD("},
		{"\uFFFE\uFFFF", "\uFFFD\uFFFD"},
		{"Grüße 日本 \U0001F600", "Grüße 日本 \U0001F600"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTMLEngine_HeaderFooter(t *testing.T) {
	e := NewHTMLEngine(Config{})

	wantHeader := "<html><head><title>demo - Sun Oct 18 2026</title></head>\n" +
		"<body style=\"font-family: Arial\"><h2>demo - Sun Oct 18 2026</h2>\n" +
		"<table width=\"100%\" style=\"table-layout:auto; margin: auto; border-width:thin; border-color:#000000;\">\n" +
		"<tr><td width=\"10%\"><b>Time</b></td><td><b>Message</b></td></tr>\n"
	if got := e.InitializeString(testSession()); got != wantHeader {
		t.Errorf("InitializeString() =\n%q\nwant\n%q", got, wantHeader)
	}

	wantFooter := "</table><br>End of session log: Sun Oct 18 14:03:01 2026</body></html>\n"
	if got := e.FinalizeString(testSession()); got != wantFooter {
		t.Errorf("FinalizeString() = %q, want %q", got, wantFooter)
	}
}

func TestHTMLEngine_RowDropsContinuations(t *testing.T) {
	e := NewHTMLEngine(Config{})

	got := e.FormatMessage(testSession(), core.ErrorLevel, core.Texts("a < b", "ignored detail")...)
	want := "<tr><td>14:03:01</td><td><font color='red'>[Error   ] a &lt; b</font></td></tr>"
	if got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
	if strings.Contains(got, "ignored detail") {
		t.Error("HTML rows must not render continuation parts")
	}
}

func TestHTMLEngine_DocumentTagsBalance(t *testing.T) {
	e := NewHTMLEngine(Config{})
	s := testSession()

	var doc strings.Builder
	doc.WriteString(e.InitializeString(s))
	for _, l := range core.Levels() {
		doc.WriteString(e.FormatMessage(s, l, core.Text("<td>not a tag</td>")))
	}
	doc.WriteString(e.FinalizeString(s))

	if err := checkHTMLBalance(doc.String()); err != nil {
		t.Fatalf("unbalanced document: %v\n%s", err, doc.String())
	}
}

func TestRawEngine(t *testing.T) {
	e := NewRawEngine(Config{})

	if got := e.FormatMessage(testSession(), core.ErrorLevel, core.Texts("<raw> & text", "dropped")...); got != "<raw> & text" {
		t.Errorf("FormatMessage() = %q", got)
	}
	if e.InitializeString(testSession()) != "" || e.FinalizeString(testSession()) != "" {
		t.Error("raw engine must have an empty header and footer")
	}
}

func TestConsoleEngine(t *testing.T) {
	e := NewConsoleEngine(Config{})

	got := e.FormatMessage(testSession(), core.WarningLevel, core.Texts("disk usage high", "87%")...)
	if !strings.Contains(got, "Warning") || !strings.Contains(got, "disk usage high") {
		t.Errorf("unexpected console output: %q", got)
	}
	if !strings.HasSuffix(got, "\n"+continuationIndent+"87%") {
		t.Errorf("continuation line missing: %q", got)
	}
	if got, want := e.InitializeString(testSession()), NewPlainEngine(Config{}).InitializeString(testSession()); got != want {
		t.Errorf("console header = %q, want plain header %q", got, want)
	}
}

func TestEngines_SentinelLevelsRenderNothing(t *testing.T) {
	for _, e := range allEngines() {
		for _, l := range []core.Level{core.NoneLevel, core.AllLevels} {
			if got := e.FormatMessage(testSession(), l, core.Text("hidden")); got != "" {
				t.Errorf("%s.FormatMessage(%v) = %q, want empty", e.Name(), l, got)
			}
		}
	}
}

func TestEngines_EmptyPartsRenderNothing(t *testing.T) {
	for _, e := range allEngines() {
		if got := e.FormatMessage(testSession(), core.InfoLevel); got != "" {
			t.Errorf("%s.FormatMessage() with no parts = %q, want empty", e.Name(), got)
		}
	}
}

func TestEngines_ContainLabelAndPrimary(t *testing.T) {
	for _, e := range allEngines() {
		if e.Name() == "raw" {
			continue
		}
		for _, l := range core.Levels() {
			got := e.FormatMessage(testSession(), l, core.Text("primary text"))
			if !strings.Contains(got, l.String()) || !strings.Contains(got, "primary text") {
				t.Errorf("%s.FormatMessage(%v) = %q", e.Name(), l, got)
			}
		}
	}
}

func TestEngines_BufferMatchesString(t *testing.T) {
	parts := core.Texts("first & <second>", "third")
	for _, e := range allEngines() {
		be, ok := e.(BufferEngine)
		if !ok {
			t.Fatalf("%s does not implement BufferEngine", e.Name())
		}
		var buf bytes.Buffer
		be.FormatMessageTo(&buf, testSession(), core.ErrorLevel, parts)
		if got, want := buf.String(), e.FormatMessage(testSession(), core.ErrorLevel, parts...); got != want {
			t.Errorf("%s: FormatMessageTo = %q, FormatMessage = %q", e.Name(), got, want)
		}
	}
}

func TestRenderDocument(t *testing.T) {
	e := NewPlainEngine(Config{})
	entries := []*core.Entry{
		{Time: testTime.Add(time.Second), Level: core.InfoLevel, Parts: core.Texts("started")},
		{Level: core.NoneLevel, Parts: core.Texts("skipped")},
		{Level: core.ErrorLevel, Parts: core.Texts("failed", "exit=1")},
	}

	var buf bytes.Buffer
	if err := RenderDocument(&buf, e, testSession(), entries); err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	want := "demo Session Log:\nDate: Sun Oct 18 14:03:01 2026\n" +
		"14:03:02 [Info    ] started\n" +
		"14:03:01 [Error   ] failed\n            exit=1\n" +
		"\nEnd of session log.\nSun Oct 18 14:03:01 2026"
	if buf.String() != want {
		t.Errorf("RenderDocument() =\n%q\nwant\n%q", buf.String(), want)
	}
}

// countXMLRoots decodes doc strictly and counts top-level elements.
func countXMLRoots(doc string) (int, error) {
	d := xml.NewDecoder(strings.NewReader(doc))
	depth, roots := 0, 0
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		switch tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if depth != 0 {
		return roots, errors.New("unclosed elements")
	}
	return roots, nil
}

var htmlTag = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9]*)[^>]*>`)

// checkHTMLBalance verifies that every non-void tag is closed in order and
// that html is the single outermost element.
func checkHTMLBalance(doc string) error {
	var stack []string
	roots := 0
	for _, m := range htmlTag.FindAllStringSubmatch(doc, -1) {
		name := strings.ToLower(m[2])
		if name == "br" {
			continue
		}
		if m[1] == "" {
			if len(stack) == 0 {
				roots++
			}
			stack = append(stack, name)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != name {
			return errors.New("unexpected </" + name + ">")
		}
		stack = stack[:len(stack)-1]
	}
	if len(stack) != 0 {
		return errors.New("unclosed <" + stack[len(stack)-1] + ">")
	}
	if roots != 1 {
		return errors.New("expected a single root element")
	}
	return nil
}

func BenchmarkPlainEngine(b *testing.B) {
	e := NewPlainEngine(Config{})
	s := testSession()
	parts := core.Texts("test message", "key1=value1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.FormatMessage(s, core.InfoLevel, parts...)
	}
}

func BenchmarkXMLEngine(b *testing.B) {
	e := NewXMLEngine(Config{})
	s := testSession()
	parts := core.Texts("test <message>", "key1=value1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.FormatMessage(s, core.InfoLevel, parts...)
	}
}
