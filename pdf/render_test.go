package pdf

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"pkt.systems/trustdocs"
	"pkt.systems/trustdocs/internal/pdfcheck"
)

func testStyle(t *testing.T, name string) trustdocs.Style {
	t.Helper()
	st, err := trustdocs.DefaultStyleSheet().Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return st
}

func renderBytes(t *testing.T, doc trustdocs.Document, cfg Config) ([]byte, Result) {
	t.Helper()
	var out bytes.Buffer
	res, err := Render(RenderRequest{Document: doc, Writer: &out, Config: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.Bytes(), res
}

func TestRenderPDFWithCoreFonts(t *testing.T) {
	doc := trustdocs.NewDocument("memo", trustdocs.LetterGeometry(),
		trustdocs.NewParagraph("Title", testStyle(t, trustdocs.StyleTitle)),
		trustdocs.NewSpacer(12),
		trustdocs.NewParagraph("This is <b>bold</b> and <i>italic</i>.", testStyle(t, trustdocs.StyleNormal)),
	)
	data, res := renderBytes(t, doc, Config{})
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("unexpected pdf header: %q", data[:8])
	}
	if err := pdfcheck.Check(data); err != nil {
		t.Fatalf("structure: %v", err)
	}
	if res.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", res.Pages)
	}
	if res.Bytes != int64(len(data)) {
		t.Fatalf("result bytes %d, wrote %d", res.Bytes, len(data))
	}
}

func TestRenderEmptyDocumentHasOnePage(t *testing.T) {
	doc := trustdocs.NewDocument("empty", trustdocs.LetterGeometry())
	data, res := renderBytes(t, doc, Config{})
	n, err := pdfcheck.PageCount(data)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if n != 1 || res.Pages != 1 {
		t.Fatalf("expected one page, got count=%d result=%d", n, res.Pages)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() trustdocs.Document {
		rows := [][]string{{"Name", "Amount"}, {"Alice", "$1.00"}, {"Bob", "$2.00"}}
		return trustdocs.NewDocument("det", trustdocs.LetterGeometry(),
			trustdocs.NewParagraph("Deterministic output", testStyle(t, trustdocs.StyleHeading1)),
			trustdocs.NewTable(rows, []float64{200, 100},
				trustdocs.Background(trustdocs.Cell(0, 0), trustdocs.Cell(-1, 0), trustdocs.Grey),
				trustdocs.Grid(trustdocs.Cell(0, 0), trustdocs.Cell(-1, -1), 0.5, trustdocs.Black),
			).WithHeaderRows(1),
		)
	}
	a, _ := renderBytes(t, build(), Config{})
	b, _ := renderBytes(t, build(), Config{})
	if !bytes.Equal(a, b) {
		t.Fatalf("two renders of the same document differ")
	}
	got, ok := pdfcheck.Info(a, "CreationDate")
	if !ok || !strings.HasPrefix(got, "D:20240315") {
		t.Fatalf("unexpected creation date %q", got)
	}
	producer, ok := pdfcheck.Info(a, "Producer")
	if !ok || producer != "trustdocs" {
		t.Fatalf("unexpected producer %q", producer)
	}
}

func TestRenderStampsConfiguredDates(t *testing.T) {
	doc := trustdocs.NewDocument("dates", trustdocs.LetterGeometry(),
		trustdocs.NewParagraph("Dated", testStyle(t, trustdocs.StyleNormal)))
	data, _ := renderBytes(t, doc, Config{})
	for _, key := range []string{"CreationDate", "ModDate"} {
		got, ok := pdfcheck.Info(data, key)
		if !ok || got != "D:20240315000000" {
			t.Fatalf("%s = %q, want D:20240315000000", key, got)
		}
	}

	when := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	data, _ = renderBytes(t, doc, Config{CreationDate: when})
	if got, _ := pdfcheck.Info(data, "ModDate"); got != "D:20250102030405" {
		t.Fatalf("ModDate = %q, want configured date", got)
	}
}

func TestRenderPDFReplacesUnsupportedRunes(t *testing.T) {
	doc := trustdocs.NewDocument("emoji", trustdocs.LetterGeometry(),
		trustdocs.NewParagraph("Emoji 😀 becomes a question mark. Section § stays.", testStyle(t, trustdocs.StyleNormal)),
	)
	data, _ := renderBytes(t, doc, Config{DisableCompression: true})
	if !pdfcheck.ShowsText(data, "?") {
		t.Fatalf("expected replacement character in content stream")
	}
	if !pdfcheck.ShowsText(data, "\xa7") {
		t.Fatalf("expected section sign encoded as Windows-1252")
	}
}

func TestRenderDrawsTableCells(t *testing.T) {
	rows := [][]string{{"Coverage", "Amount"}, {"Death Benefit", "$2,000,000"}}
	doc := trustdocs.NewDocument("table", trustdocs.LetterGeometry(),
		trustdocs.NewTable(rows, []float64{200, 150}),
	)
	data, res := renderBytes(t, doc, Config{DisableCompression: true})
	for _, want := range []string{"Coverage", "Amount", "Death", "Benefit", "$2,000,000"} {
		if !pdfcheck.ShowsText(data, want) {
			t.Fatalf("expected %q in content stream", want)
		}
	}
	if len(res.Tables) != 1 || res.Tables[0].Rows != 2 || res.Tables[0].Cols != 2 {
		t.Fatalf("unexpected table stats: %+v", res.Tables)
	}
}

func TestRenderRejectsZeroWidthColumn(t *testing.T) {
	doc := trustdocs.NewDocument("bad", trustdocs.LetterGeometry(),
		trustdocs.NewParagraph("before", testStyle(t, trustdocs.StyleNormal)),
		trustdocs.NewTable([][]string{{"a", "b"}}, []float64{100, 0}),
	)
	var out bytes.Buffer
	_, err := Render(RenderRequest{Document: doc, Writer: &out})
	if !errors.Is(err, trustdocs.ErrZeroWidthColumn) {
		t.Fatalf("expected zero width column error, got %v", err)
	}
	var le *trustdocs.LayoutError
	if !errors.As(err, &le) || le.Block != 1 {
		t.Fatalf("expected layout error for block 1, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on layout failure, got %d bytes", out.Len())
	}
}

func TestRenderRejectsPaddingWiderThanColumn(t *testing.T) {
	doc := trustdocs.NewDocument("bad", trustdocs.LetterGeometry(),
		trustdocs.NewTable([][]string{{"a"}}, []float64{10}),
	)
	_, err := Render(RenderRequest{Document: doc, Writer: &bytes.Buffer{}})
	if !errors.Is(err, trustdocs.ErrZeroWidthColumn) || !trustdocs.IsLayoutError(err) {
		t.Fatalf("expected layout error for padded column, got %v", err)
	}
}

func TestRenderRejectsContentTallerThanFrame(t *testing.T) {
	geo := trustdocs.Geometry{
		Size:    trustdocs.PageSize{Name: "strip", Width: 612, Height: 120},
		Margins: trustdocs.Margins{Top: 36, Right: 36, Bottom: 36, Left: 36},
	}
	huge := testStyle(t, trustdocs.StyleNormal).WithSize(60).WithLeading(72)
	doc := trustdocs.NewDocument("tall", geo, trustdocs.NewParagraph("Huge", huge))
	_, err := Render(RenderRequest{Document: doc, Writer: &bytes.Buffer{}})
	if !errors.Is(err, trustdocs.ErrBlockTooTall) {
		t.Fatalf("expected block too tall, got %v", err)
	}

	words := strings.Repeat("word ", 40)
	doc = trustdocs.NewDocument("tall-row", geo, trustdocs.NewTable([][]string{{words}}, []float64{50}))
	_, err = Render(RenderRequest{Document: doc, Writer: &bytes.Buffer{}})
	if !errors.Is(err, trustdocs.ErrBlockTooTall) {
		t.Fatalf("expected row too tall, got %v", err)
	}
}

func TestRenderRejectsNonCoreFamily(t *testing.T) {
	st := testStyle(t, trustdocs.StyleNormal)
	st.FontFamily = "Comic Sans"
	doc := trustdocs.NewDocument("font", trustdocs.LetterGeometry(), trustdocs.NewParagraph("hello", st))
	_, err := Render(RenderRequest{Document: doc, Writer: &bytes.Buffer{}})
	if !errors.Is(err, trustdocs.ErrInvalidStyle) {
		t.Fatalf("expected invalid style error, got %v", err)
	}
}

func TestRenderNilWriter(t *testing.T) {
	doc := trustdocs.NewDocument("nil", trustdocs.LetterGeometry())
	if _, err := Render(RenderRequest{Document: doc}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestRenderTrueTypeConfigErrors(t *testing.T) {
	doc := trustdocs.NewDocument("ttf", trustdocs.LetterGeometry())
	cases := map[string]Config{
		"missing paths": {RegularFont: "/tmp/a/regular.ttf"},
		"split dirs": {
			RegularFont: "/tmp/a/regular.ttf",
			BoldFont:    "/tmp/b/bold.ttf",
			ItalicFont:  "/tmp/a/italic.ttf",
		},
		"missing files": {
			RegularFont: "/nonexistent/regular.ttf",
			BoldFont:    "/nonexistent/bold.ttf",
			ItalicFont:  "/nonexistent/italic.ttf",
		},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Render(RenderRequest{Document: doc, Writer: &bytes.Buffer{}, Config: cfg}); err == nil {
				t.Fatalf("expected font configuration error")
			}
		})
	}
}

func TestApplyConfigKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	applyConfig(&cfg, Config{Title: "Notice"})
	if cfg.Title != "Notice" {
		t.Fatalf("title not applied: %q", cfg.Title)
	}
	if !cfg.CreationDate.Equal(DefaultCreationDate) {
		t.Fatalf("creation date overwritten: %v", cfg.CreationDate)
	}
	if cfg.Producer != "trustdocs" {
		t.Fatalf("producer overwritten: %q", cfg.Producer)
	}
	if cfg.usesTrueType() {
		t.Fatalf("default config should use core fonts")
	}
}
