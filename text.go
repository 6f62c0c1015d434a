package trustdocs

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	minPreviewWidth = 20
	// pointsPerLine converts spacer heights into blank preview lines.
	pointsPerLine = 12.0
)

// WriteText writes a plain-text preview of doc wrapped to width columns.
// Markup is stripped, spacers become blank lines and tables are drawn as
// padded columns scaled from their point widths.
func WriteText(w io.Writer, doc Document, width int) error {
	if width < minPreviewWidth {
		width = minPreviewWidth
	}
	bw := bufio.NewWriter(w)
	frame := doc.geometry.FrameWidth()
	for _, b := range doc.blocks {
		var err error
		switch b := b.(type) {
		case Paragraph:
			err = writeParagraphText(bw, b, width)
		case Spacer:
			n := int(math.Round(b.height / pointsPerLine))
			if n < 1 && b.height > 0 {
				n = 1
			}
			_, err = bw.WriteString(strings.Repeat("\n", n))
		case Table:
			err = writeTableText(bw, b, width, frame)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeParagraphText(w *bufio.Writer, p Paragraph, width int) error {
	text := PlainText(p.text)
	wrapped := wordwrap.String(text, width)
	for _, line := range strings.Split(wrapped, "\n") {
		line = strings.TrimRight(line, " ")
		if _, err := fmt.Fprintln(w, alignText(line, width, p.style.Align)); err != nil {
			return err
		}
	}
	return nil
}

func alignText(line string, width int, a Alignment) string {
	gap := width - ansi.PrintableRuneWidth(line)
	if gap <= 0 {
		return line
	}
	switch a {
	case AlignCenter:
		return strings.Repeat(" ", gap/2) + line
	case AlignRight:
		return strings.Repeat(" ", gap) + line
	default:
		return line
	}
}

// previewColumns scales point widths to character columns, leaving one space
// between columns.
func previewColumns(t Table, width int, frame float64) []int {
	if frame <= 0 {
		frame = t.Width()
	}
	avail := width - (len(t.colWidths) - 1)
	cols := make([]int, len(t.colWidths))
	for i, cw := range t.colWidths {
		n := int(math.Floor(cw / frame * float64(avail)))
		if n < 1 {
			n = 1
		}
		cols[i] = n
	}
	return cols
}

func writeTableText(w *bufio.Writer, t Table, width int, frame float64) error {
	cols := previewColumns(t, width, frame)
	for r, row := range t.rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			text := strings.ReplaceAll(PlainText(cell), "\n", " ")
			text = truncate.StringWithTail(text, uint(cols[c]), "…")
			if c < len(row)-1 {
				text = padding.String(text, uint(cols[c]))
			}
			cells[c] = text
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " ")); err != nil {
			return err
		}
		if t.headerRows > 0 && r == t.headerRows-1 {
			total := 0
			for _, n := range cols {
				total += n
			}
			total += len(cols) - 1
			if _, err := fmt.Fprintln(w, strings.Repeat("-", total)); err != nil {
				return err
			}
		}
	}
	return nil
}
