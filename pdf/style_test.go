package pdf

import (
	"testing"

	"pkt.systems/trustdocs"
)

func TestFontStyle(t *testing.T) {
	got := fontStyle(true, true, false)
	if got != "B" {
		t.Fatalf("expected bold-only fallback, got %q", got)
	}
	got = fontStyle(true, true, true)
	if got != "BI" {
		t.Fatalf("expected bold-italic when allowed, got %q", got)
	}
	if got = fontStyle(false, true, true); got != "I" {
		t.Fatalf("expected italic, got %q", got)
	}
	if got = fontStyle(false, false, true); got != "" {
		t.Fatalf("expected regular, got %q", got)
	}
}

func TestToWindows1252(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		"§ 2503(b)":    "\xa7 2503(b)",
		"“quoted”":     "\x93quoted\x94",
		"emoji 😀":      "emoji ?",
		"trustee’s":    "trustee\x92s",
		"café résumé": "caf\xe9 r\xe9sum\xe9",
	}
	for in, want := range cases {
		if got := toWindows1252(in); got != want {
			t.Fatalf("toWindows1252(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFontSetFaces(t *testing.T) {
	core := newFontSet(DefaultConfig())
	st, err := trustdocs.DefaultStyleSheet().Lookup(trustdocs.StyleHeading3)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	f := core.styleFace(st, trustdocs.Span{Text: "x"})
	if f.family != trustdocs.DefaultFontFamily || f.style != "BI" || f.size != st.Size {
		t.Fatalf("unexpected heading face: %+v", f)
	}

	ttf := newFontSet(Config{FontFamily: "Body", RegularFont: "/f/r.ttf", BoldFont: "/f/b.ttf", ItalicFont: "/f/i.ttf"})
	f = ttf.styleFace(st, trustdocs.Span{Text: "x"})
	if f.family != "Body" || f.style != "B" {
		t.Fatalf("expected TrueType family without bold-italic, got %+v", f)
	}
	if !ttf.checkFamily("Anything") {
		t.Fatalf("TrueType font sets accept any style family")
	}
	if core.checkFamily("Comic Sans") {
		t.Fatalf("core font set must reject unknown families")
	}
}

func TestIsCoreFont(t *testing.T) {
	for _, name := range []string{"Helvetica", "times", "Courier", "Arial"} {
		if !isCoreFont(name) {
			t.Fatalf("expected %q to be a core font", name)
		}
	}
	if isCoreFont("Hack") {
		t.Fatalf("Hack is not a core font")
	}
}
