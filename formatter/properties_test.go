package formatter

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"pgregory.net/rapid"

	"github.com/philipp01105/sessionlog/core"
)

var (
	genLevel = rapid.SampledFrom(core.Levels())
	genText  = rapid.StringMatching(`[a-zA-Z0-9 <>&"'%.:=-]{1,40}`)
	genParts = rapid.Custom(func(t *rapid.T) []core.Part {
		texts := rapid.SliceOfN(genText, 1, 5).Draw(t, "texts")
		return core.Texts(texts...)
	})
	// genAnyText also draws control characters and invalid UTF-8.
	genAnyText = rapid.OneOf(
		rapid.String(),
		rapid.StringOf(rapid.RuneFrom(nil, &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0, Hi: 0x7f, Stride: 1}}})),
		rapid.Custom(func(t *rapid.T) string {
			return string(rapid.SliceOf(rapid.Byte()).Draw(t, "bytes"))
		}),
	)
	genAnyParts = rapid.Custom(func(t *rapid.T) []core.Part {
		texts := rapid.SliceOfN(genAnyText, 1, 5).Draw(t, "texts")
		return core.Texts(texts...)
	})
)

// labelAt returns the labelWidth runes that follow prefix in s, and the rune after them.
func labelAt(s, prefix string) (string, rune, bool) {
	i := strings.Index(s, prefix)
	if i < 0 {
		return "", 0, false
	}
	rest := []rune(s[i+len(prefix):])
	if len(rest) <= labelWidth {
		return "", 0, false
	}
	return string(rest[:labelWidth]), rest[labelWidth], true
}

func TestProperty_LabelFieldIsEightRunes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := genLevel.Draw(t, "level")
		parts := genParts.Draw(t, "parts")
		s := testSession()

		cases := []struct {
			engine Engine
			prefix string
		}{
			{NewPlainEngine(Config{}), "14:03:01 ["},
			{NewRichTextEngine(Config{}), "14:03:01 ["},
			{NewHTMLEngine(Config{}), "'>["},
		}
		for _, c := range cases {
			out := c.engine.FormatMessage(s, level, parts...)
			label, next, ok := labelAt(out, c.prefix)
			if !ok {
				t.Fatalf("%s: no label in %q", c.engine.Name(), out)
			}
			if utf8.RuneCountInString(label) != labelWidth || next != ']' {
				t.Fatalf("%s: label field %q is not %d runes wide", c.engine.Name(), label, labelWidth)
			}
			if !strings.HasPrefix(label, level.String()) {
				t.Fatalf("%s: label %q does not start with %q", c.engine.Name(), label, level)
			}
		}
	})
}

func TestProperty_RichPadsWithNonBreakingSpace(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := genLevel.Draw(t, "level")
		out := NewRichTextEngine(Config{}).FormatMessage(testSession(), level, genParts.Draw(t, "parts")...)
		label, _, _ := labelAt(out, "14:03:01 [")
		if strings.Contains(label, " ") {
			t.Fatalf("rich label %q is padded with plain spaces", label)
		}
	})
}

func TestProperty_XMLSessionIsWellFormed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := NewXMLEngine(Config{})
		s := core.NewSession(genAnyText.Draw(t, "name"), core.FixedClock(testTime))

		var doc strings.Builder
		doc.WriteString(e.InitializeString(s))
		n := rapid.IntRange(0, 6).Draw(t, "records")
		for i := 0; i < n; i++ {
			doc.WriteString(e.FormatMessage(s, genLevel.Draw(t, "level"), genAnyParts.Draw(t, "parts")...))
			doc.WriteByte('\n')
		}
		doc.WriteString(e.FinalizeString(s))

		roots, err := countXMLRoots(doc.String())
		if err != nil {
			t.Fatalf("not well-formed: %v\n%s", err, doc.String())
		}
		if roots != 1 {
			t.Fatalf("got %d root elements", roots)
		}
	})
}

func TestProperty_HTMLSessionIsBalanced(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := NewHTMLEngine(Config{})
		s := core.NewSession(genAnyText.Draw(t, "name"), core.FixedClock(testTime))

		var doc strings.Builder
		doc.WriteString(e.InitializeString(s))
		n := rapid.IntRange(0, 6).Draw(t, "records")
		for i := 0; i < n; i++ {
			doc.WriteString(e.FormatMessage(s, genLevel.Draw(t, "level"), genAnyParts.Draw(t, "parts")...))
		}
		doc.WriteString(e.FinalizeString(s))

		if err := checkHTMLBalance(doc.String()); err != nil {
			t.Fatalf("%v\n%s", err, doc.String())
		}
	})
}

func TestProperty_MarkupEnginesEscapePrimary(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := genLevel.Draw(t, "level")
		primary := genAnyText.Draw(t, "primary")

		for _, e := range []Engine{NewXMLEngine(Config{}), NewHTMLEngine(Config{}), NewRichTextEngine(Config{})} {
			// A reference render with a markup-free primary shows exactly
			// which markup the engine itself contributes around the text.
			ref := e.FormatMessage(testSession(), level, core.Text("SAFE"))
			idx := strings.LastIndex(ref, "SAFE")
			want := ref[:idx] + Escape(primary) + ref[idx+len("SAFE"):]

			if got := e.FormatMessage(testSession(), level, core.Text(primary)); got != want {
				t.Fatalf("%s: got %q, want %q", e.Name(), got, want)
			}
			if strings.ContainsAny(Escape(primary), "<>") {
				t.Fatalf("escaped text %q still holds markup", Escape(primary))
			}
			if !utf8.ValidString(Escape(primary)) {
				t.Fatalf("escaped text %q is not valid UTF-8", Escape(primary))
			}
		}
	})
}

func TestProperty_RawEchoesPrimary(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := genParts.Draw(t, "parts")
		got := NewRawEngine(Config{}).FormatMessage(testSession(), genLevel.Draw(t, "level"), parts...)
		if got != parts[0].Text() {
			t.Fatalf("raw output %q, want %q", got, parts[0].Text())
		}
	})
}

func TestProperty_PlainRendersEveryPart(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := genParts.Draw(t, "parts")
		out := NewPlainEngine(Config{}).FormatMessage(testSession(), genLevel.Draw(t, "level"), parts...)

		lines := strings.Split(out, "\n")
		if len(lines) != len(parts) {
			t.Fatalf("got %d lines for %d parts: %q", len(lines), len(parts), out)
		}
		for i, p := range parts[1:] {
			if lines[i+1] != continuationIndent+p.Text() {
				t.Fatalf("continuation %d = %q", i, lines[i+1])
			}
		}
	})
}
