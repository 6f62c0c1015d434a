package trustdocs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInlineFaces(t *testing.T) {
	spans, err := ParseInline("<b>GRANTOR:</b> John and <i>Mary <b>Smith</b></i>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Span{
		{Text: "GRANTOR:", Bold: true},
		{Text: " John and "},
		{Text: "Mary ", Italic: true},
		{Text: "Smith", Bold: true, Italic: true},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineBreaksAndWhitespace(t *testing.T) {
	spans, err := ParseInline("Policy\n   Number:<br/>TL-2024-789456")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Span{
		{Text: "Policy Number:"},
		{Break: true},
		{Text: "TL-2024-789456"},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineEntities(t *testing.T) {
	spans, err := ParseInline("A &amp; B &lt;C&gt; &quot;x&quot; &apos;y&apos;")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(spans) != 1 || spans[0].Text != `A & B <C> "x" 'y'` {
		t.Fatalf("unexpected spans: %+v", spans)
	}
}

func TestParseInlineRejectsMalformedMarkup(t *testing.T) {
	for _, in := range []string{
		"<b>open",
		"close</i>",
		"<u>under</u>",
		"broken <b",
		"&unknown;",
		"AT&T",
	} {
		if _, err := ParseInline(in); !errors.Is(err, ErrBadMarkup) {
			t.Fatalf("ParseInline(%q): expected ErrBadMarkup, got %v", in, err)
		}
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"<b>Owner:</b> Smith Family ILIT": "Owner: Smith Family ILIT",
		"Line one <br/> line two":         "Line one\nline two",
		"unbalanced <b>":                  "unbalanced <b>",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Fatalf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeMarkupRoundTrip(t *testing.T) {
	in := "Smith & Sons <Trustee> R&D"
	spans, err := ParseInline(EscapeMarkup(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(spans) != 1 || spans[0].Text != in {
		t.Fatalf("escaped text changed: %+v", spans)
	}
}
