package trustdocs

import (
	"errors"
	"testing"
)

func normalStyle(t *testing.T) Style {
	t.Helper()
	st, err := DefaultStyleSheet().Lookup(StyleNormal)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return st
}

func TestValidateTextRejectsInvalidUTF8(t *testing.T) {
	if err := ValidateText(string([]byte{0xff, 0xfe, 0xfd})); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateTextRejectsControlCharacters(t *testing.T) {
	if err := ValidateText("bell\x07"); !errors.Is(err, ErrControlChar) {
		t.Fatalf("expected ErrControlChar, got %v", err)
	}
	if err := ValidateText("tab\tand\nnewline\r\n"); err != nil {
		t.Fatalf("whitespace controls should pass: %v", err)
	}
}

func TestDocumentValidateReportsBlockIndex(t *testing.T) {
	st := normalStyle(t)
	cases := []struct {
		name  string
		block Block
		want  error
	}{
		{"nil", nil, ErrNilBlock},
		{"markup", NewParagraph("<b>open", st), ErrBadMarkup},
		{"control", NewParagraph("x\x00", st), ErrControlChar},
		{"style", NewParagraph("x", Style{Name: "bad"}), ErrInvalidStyle},
		{"spacer", NewSpacer(-1), ErrNegativeSpacer},
		{"wide", NewTable([][]string{{"a"}}, []float64{500}), ErrTableTooWide},
		{"cell markup", NewTable([][]string{{"a</i>"}}, []float64{100}), ErrBadMarkup},
	}
	for _, tc := range cases {
		doc := NewDocument(tc.name, LetterGeometry(), NewParagraph("ok", st), tc.block)
		err := doc.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		var le *LayoutError
		if !errors.As(err, &le) || le.Block != 1 {
			t.Fatalf("%s: expected layout error at block 1, got %v", tc.name, err)
		}
	}
}

func TestDocumentValidateGeometry(t *testing.T) {
	cases := map[string]Geometry{
		"zero size":  {Size: PageSize{Width: 0, Height: 792}},
		"negative":   {Size: Letter, Margins: Margins{Top: -1}},
		"no frame":   {Size: Letter, Margins: Margins{Left: 306, Right: 306}},
		"no height":  {Size: Letter, Margins: Margins{Top: 400, Bottom: 400}},
	}
	for name, geo := range cases {
		err := NewDocument(name, geo).Validate()
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("%s: expected ErrInvalidGeometry, got %v", name, err)
		}
		var le *LayoutError
		if !errors.As(err, &le) || le.Block != -1 {
			t.Fatalf("%s: geometry errors are document-wide, got %v", name, err)
		}
	}
}

func TestDocumentValidateFullWidthTable(t *testing.T) {
	in := Inch
	tbl := NewTable([][]string{{"a", "b"}}, []float64{2.5 * in, 4 * in})
	if err := NewDocument("fit", LetterGeometry(), tbl).Validate(); err != nil {
		t.Fatalf("table as wide as the frame rejected: %v", err)
	}
}
