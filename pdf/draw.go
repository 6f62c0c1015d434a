package pdf

import (
	"github.com/jung-kurt/gofpdf"

	"pkt.systems/trustdocs"
)

type widthKey struct {
	face face
	text string
}

// fpdfMetrics measures strings with gofpdf's font tables. Widths are cached
// per face since layout asks for the same words over and over.
type fpdfMetrics struct {
	pdf   *gofpdf.Fpdf
	fonts fontSet
	cache map[widthKey]float64
}

func newFpdfMetrics(pdf *gofpdf.Fpdf, fonts fontSet) *fpdfMetrics {
	return &fpdfMetrics{pdf: pdf, fonts: fonts, cache: make(map[widthKey]float64)}
}

func (m *fpdfMetrics) stringWidth(f face, s string) float64 {
	key := widthKey{face: f, text: s}
	if w, ok := m.cache[key]; ok {
		return w
	}
	m.pdf.SetFont(f.family, f.style, f.size)
	w := m.pdf.GetStringWidth(m.fonts.translate(s))
	m.cache[key] = w
	return w
}

// pen tracks the graphics state already sent to gofpdf so repeated ops do
// not emit redundant operators.
type pen struct {
	pdf       *gofpdf.Fpdf
	face      *face
	text      *trustdocs.Color
	fill      *trustdocs.Color
	stroke    *trustdocs.Color
	lineWidth float64
	hasWidth  bool
}

func (p *pen) reset() {
	p.face, p.text, p.fill, p.stroke = nil, nil, nil, nil
	p.hasWidth = false
}

func (p *pen) setFace(f face) {
	if p.face == nil || *p.face != f {
		p.pdf.SetFont(f.family, f.style, f.size)
		p.face = &f
	}
}

func (p *pen) setText(c trustdocs.Color) {
	if p.text == nil || *p.text != c {
		p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		p.text = &c
	}
}

func (p *pen) setFill(c trustdocs.Color) {
	if p.fill == nil || *p.fill != c {
		p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.fill = &c
	}
}

func (p *pen) setStroke(c trustdocs.Color, width float64) {
	if p.stroke == nil || *p.stroke != c {
		p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.stroke = &c
	}
	if !p.hasWidth || p.lineWidth != width {
		p.pdf.SetLineWidth(width)
		p.lineWidth = width
		p.hasWidth = true
	}
}

func draw(pdf *gofpdf.Fpdf, fonts fontSet, pages []page) {
	p := &pen{pdf: pdf}
	for _, pg := range pages {
		pdf.AddPage()
		p.reset()
		for _, o := range pg.ops {
			switch o.kind {
			case opFill:
				p.setFill(o.color)
				pdf.Rect(o.x, o.y, o.w, o.h, "F")
			case opStroke:
				p.setStroke(o.color, o.lineWidth)
				pdf.Rect(o.x, o.y, o.w, o.h, "D")
			case opText:
				p.setFace(o.face)
				p.setText(o.color)
				pdf.Text(o.x, o.y, fonts.translate(o.text))
			}
		}
	}
}
