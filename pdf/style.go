package pdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"pkt.systems/trustdocs"
)

// face is a resolved font: family, gofpdf style string and size.
type face struct {
	family string
	style  string
	size   float64
}

type fontSet struct {
	trueType        bool
	family          string
	allowBoldItalic bool
	translate       func(string) string
}

func newFontSet(cfg Config) fontSet {
	if cfg.usesTrueType() {
		return fontSet{
			trueType:        true,
			family:          cfg.FontFamily,
			allowBoldItalic: cfg.BoldItalicFont != "",
			translate:       func(s string) string { return s },
		}
	}
	return fontSet{
		allowBoldItalic: true,
		translate:       toWindows1252,
	}
}

// toWindows1252 maps UTF-8 text onto the core-font code page. Runes the code
// page lacks become '?'.
func toWindows1252(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b = append(b, c)
	}
	return string(b)
}

func (fs fontSet) face(family string, bold, italic bool, size float64) face {
	if fs.trueType {
		family = fs.family
	}
	return face{
		family: family,
		style:  fontStyle(bold, italic, fs.allowBoldItalic),
		size:   size,
	}
}

func (fs fontSet) styleFace(st trustdocs.Style, span trustdocs.Span) face {
	return fs.face(st.FontFamily, st.Bold || span.Bold, st.Italic || span.Italic, st.Size)
}

func (fs fontSet) checkFamily(family string) bool {
	return fs.trueType || isCoreFont(family)
}

func fontStyle(bold, italic, allowBoldItalic bool) string {
	if bold && italic && !allowBoldItalic {
		italic = false
	}
	var b strings.Builder
	if bold {
		b.WriteByte('B')
	}
	if italic {
		b.WriteByte('I')
	}
	return b.String()
}

func isCoreFont(name string) bool {
	switch strings.ToLower(name) {
	case "courier", "helvetica", "arial", "times":
		return true
	default:
		return false
	}
}
