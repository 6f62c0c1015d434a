package pdf

import (
	"fmt"

	"pkt.systems/trustdocs"
)

const (
	// descentRatio approximates the core-font descender depth relative to
	// the font size; baselines sit this far above the bottom of the em box.
	descentRatio = 0.2
	// fitEpsilon tolerates rounding when a line lands exactly on the bottom
	// margin.
	fitEpsilon = 0.01
)

type opKind uint8

const (
	opFill opKind = iota
	opStroke
	opText
)

// op is one drawing operation. Text ops are positioned by baseline origin,
// rectangles by their top-left corner.
type op struct {
	kind      opKind
	x, y      float64
	w, h      float64
	text      string
	face      face
	color     trustdocs.Color
	lineWidth float64
}

type page struct {
	ops []op
}

// TableStats describes how a table block was rendered.
type TableStats struct {
	Block         int
	Rows          int
	Cols          int
	HeaderRepeats int
	FirstPage     int
	LastPage      int
}

type layouter struct {
	m      metrics
	fonts  fontSet
	geo    trustdocs.Geometry
	pages  []page
	tables []TableStats
	y      float64
	fresh  bool
	top    float64
	bottom float64
	left   float64
	width  float64
}

func newLayouter(m metrics, fonts fontSet, geo trustdocs.Geometry) *layouter {
	l := &layouter{
		m:      m,
		fonts:  fonts,
		geo:    geo,
		top:    geo.Margins.Top,
		bottom: geo.Size.Height - geo.Margins.Bottom,
		left:   geo.Margins.Left,
		width:  geo.FrameWidth(),
	}
	l.newPage()
	return l
}

func (l *layouter) newPage() {
	l.pages = append(l.pages, page{})
	l.y = l.top
	l.fresh = true
}

func (l *layouter) frameHeight() float64 {
	return l.bottom - l.top
}

func (l *layouter) fits(h float64) bool {
	return l.y+h <= l.bottom+fitEpsilon
}

func (l *layouter) emit(o op) {
	p := &l.pages[len(l.pages)-1]
	p.ops = append(p.ops, o)
}

func (l *layouter) pageIndex() int {
	return len(l.pages) - 1
}

func (l *layouter) layout(doc trustdocs.Document) error {
	for i := 0; i < doc.Len(); i++ {
		var err error
		switch b := doc.Block(i).(type) {
		case trustdocs.Paragraph:
			err = l.paragraph(i, b)
		case trustdocs.Spacer:
			l.spacer(b)
		case trustdocs.Table:
			err = l.table(i, b)
		default:
			err = trustdocs.NewLayoutError(i, trustdocs.ErrNilBlock, "unsupported block %T", b)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func baselineOffset(size, leading float64) float64 {
	return leading - (leading-size)/2 - size*descentRatio
}

func (l *layouter) wrap(st trustdocs.Style, text string, maxWidth float64) ([]line, error) {
	spans, err := trustdocs.ParseInline(text)
	if err != nil {
		return nil, err
	}
	if !l.fonts.checkFamily(st.FontFamily) {
		return nil, fmt.Errorf("%w: font family %q is not a core font", trustdocs.ErrInvalidStyle, st.FontFamily)
	}
	return breakLines(l.m, tokenize(l.m, l.fonts, st, spans), maxWidth, st.Align), nil
}

func (l *layouter) paragraph(idx int, p trustdocs.Paragraph) error {
	st := p.Style()
	lines, err := l.wrap(st, p.Text(), l.width)
	if err != nil {
		return trustdocs.NewLayoutError(idx, err, "paragraph")
	}
	lh := st.LineHeight()
	if lh > l.frameHeight() {
		return trustdocs.NewLayoutError(idx, trustdocs.ErrBlockTooTall, "line height %.2fpt in %.2fpt frame", lh, l.frameHeight())
	}
	if !l.fresh && st.SpaceBefore > 0 {
		if l.fits(st.SpaceBefore) {
			l.y += st.SpaceBefore
		} else {
			l.newPage()
		}
	}
	for _, ln := range lines {
		if !l.fits(lh) {
			l.newPage()
		}
		base := l.y + baselineOffset(st.Size, lh)
		for _, pf := range ln.frags {
			l.emit(op{kind: opText, x: l.left + pf.dx, y: base, text: pf.text, face: pf.face, color: st.Color})
		}
		l.y += lh
		l.fresh = false
	}
	if st.SpaceAfter > 0 && !l.fresh {
		l.y += st.SpaceAfter
		if l.y > l.bottom {
			l.y = l.bottom
		}
	}
	return nil
}

func (l *layouter) spacer(s trustdocs.Spacer) {
	h := s.Height()
	if h <= 0 {
		return
	}
	if !l.fits(h) {
		l.newPage()
		return
	}
	l.y += h
}

type cellLayout struct {
	style trustdocs.CellStyle
	lines []line
}

type rowLayout struct {
	cells  []cellLayout
	height float64
}

func (l *layouter) table(idx int, t trustdocs.Table) error {
	widths := t.ColWidths()
	x0 := l.left
	switch t.Alignment() {
	case trustdocs.AlignCenter:
		x0 += (l.width - t.Width()) / 2
	case trustdocs.AlignRight:
		x0 += l.width - t.Width()
	}

	rows := make([]rowLayout, t.NumRows())
	for r := range rows {
		row := rowLayout{cells: make([]cellLayout, len(widths))}
		for c, cw := range widths {
			cs := t.CellStyle(r, c)
			inner := cw - cs.PadLeft - cs.PadRight
			if inner <= 0 {
				return trustdocs.NewLayoutError(idx, trustdocs.ErrZeroWidthColumn, "cell (%d,%d) padding leaves %.2fpt", c, r, inner)
			}
			st := trustdocs.Style{
				FontFamily: cs.FontFamily,
				Bold:       cs.Bold,
				Size:       cs.Size,
				Leading:    cs.LineHeight(),
				Color:      cs.TextColor,
			}
			lines, err := l.wrap(st, t.Cell(r, c), inner)
			if err != nil {
				return trustdocs.NewLayoutError(idx, err, "cell (%d,%d)", c, r)
			}
			n := len(lines)
			if n == 0 {
				n = 1
			}
			h := float64(n)*cs.LineHeight() + cs.PadTop + cs.PadBottom
			if h > row.height {
				row.height = h
			}
			row.cells[c] = cellLayout{style: cs, lines: lines}
		}
		if row.height > l.frameHeight() {
			return trustdocs.NewLayoutError(idx, trustdocs.ErrBlockTooTall, "row %d is %.2fpt in %.2fpt frame", r, row.height, l.frameHeight())
		}
		rows[r] = row
	}

	header := t.HeaderRows()
	var headerHeight float64
	for r := 0; r < header; r++ {
		headerHeight += rows[r].height
	}
	stats := TableStats{Block: idx, Rows: len(rows), Cols: len(widths), FirstPage: l.pageIndex()}
	for r, row := range rows {
		if !l.fits(row.height) {
			l.newPage()
			if header > 0 && r >= header && headerHeight+row.height <= l.frameHeight()+fitEpsilon {
				for h := 0; h < header; h++ {
					l.placeRow(rows[h], x0, widths)
				}
				stats.HeaderRepeats++
			}
		}
		if r == 0 {
			stats.FirstPage = l.pageIndex()
		}
		l.placeRow(row, x0, widths)
	}
	stats.LastPage = l.pageIndex()
	l.tables = append(l.tables, stats)
	return nil
}

func (l *layouter) placeRow(row rowLayout, x0 float64, widths []float64) {
	y := l.y
	x := x0
	for c, cell := range row.cells {
		if cell.style.HasBackground {
			l.emit(op{kind: opFill, x: x, y: y, w: widths[c], h: row.height, color: cell.style.Background})
		}
		x += widths[c]
	}
	x = x0
	for c, cell := range row.cells {
		cs := cell.style
		lh := cs.LineHeight()
		content := float64(len(cell.lines)) * lh
		var ty float64
		switch cs.VAlign {
		case trustdocs.VAlignTop:
			ty = y + cs.PadTop
		case trustdocs.VAlignMiddle:
			ty = y + cs.PadTop + (row.height-cs.PadTop-cs.PadBottom-content)/2
		default:
			ty = y + row.height - cs.PadBottom - content
		}
		for i, ln := range cell.lines {
			base := ty + float64(i)*lh + baselineOffset(cs.Size, lh)
			for _, pf := range ln.frags {
				l.emit(op{kind: opText, x: x + cs.PadLeft + pf.dx, y: base, text: pf.text, face: pf.face, color: cs.TextColor})
			}
		}
		x += widths[c]
	}
	x = x0
	for c, cell := range row.cells {
		if cell.style.GridWidth > 0 {
			l.emit(op{kind: opStroke, x: x, y: y, w: widths[c], h: row.height, color: cell.style.GridColor, lineWidth: cell.style.GridWidth})
		}
		x += widths[c]
	}
	l.y += row.height
	l.fresh = false
}
