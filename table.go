package trustdocs

import "fmt"

// VAlign is the vertical placement of text inside a table cell.
type VAlign uint8

const (
	VAlignBottom VAlign = iota
	VAlignMiddle
	VAlignTop
)

// CellRef addresses a table cell by column and row. Negative values count
// from the end: -1 is the last column or row.
type CellRef struct {
	Col int
	Row int
}

// Cell is shorthand for CellRef{Col: col, Row: row}.
func Cell(col, row int) CellRef {
	return CellRef{Col: col, Row: row}
}

// RuleKind selects which cell attribute a TableRule sets.
type RuleKind uint8

const (
	RuleBackground RuleKind = iota
	RuleTextColor
	RuleBold
	RuleFontSize
	RuleGrid
	RuleVAlign
	RuleLeftPadding
	RuleRightPadding
	RuleTopPadding
	RuleBottomPadding
)

func (k RuleKind) String() string {
	switch k {
	case RuleBackground:
		return "BACKGROUND"
	case RuleTextColor:
		return "TEXTCOLOR"
	case RuleBold:
		return "BOLD"
	case RuleFontSize:
		return "FONTSIZE"
	case RuleGrid:
		return "GRID"
	case RuleVAlign:
		return "VALIGN"
	case RuleLeftPadding:
		return "LEFTPADDING"
	case RuleRightPadding:
		return "RIGHTPADDING"
	case RuleTopPadding:
		return "TOPPADDING"
	case RuleBottomPadding:
		return "BOTTOMPADDING"
	default:
		return fmt.Sprintf("RuleKind(%d)", uint8(k))
	}
}

// TableRule applies one attribute to the rectangular cell range From..To.
type TableRule struct {
	Kind   RuleKind
	From   CellRef
	To     CellRef
	Color  Color
	Value  float64
	VAlign VAlign
}

// Background fills the range with c.
func Background(from, to CellRef, c Color) TableRule {
	return TableRule{Kind: RuleBackground, From: from, To: to, Color: c}
}

// TextColor sets the text color of the range.
func TextColor(from, to CellRef, c Color) TableRule {
	return TableRule{Kind: RuleTextColor, From: from, To: to, Color: c}
}

// Bold sets the range in the bold face.
func Bold(from, to CellRef) TableRule {
	return TableRule{Kind: RuleBold, From: from, To: to, Value: 1}
}

// FontSize sets the font size of the range.
func FontSize(from, to CellRef, size float64) TableRule {
	return TableRule{Kind: RuleFontSize, From: from, To: to, Value: size}
}

// Grid strokes every cell border in the range.
func Grid(from, to CellRef, width float64, c Color) TableRule {
	return TableRule{Kind: RuleGrid, From: from, To: to, Value: width, Color: c}
}

// Align sets the vertical alignment of the range.
func Align(from, to CellRef, v VAlign) TableRule {
	return TableRule{Kind: RuleVAlign, From: from, To: to, VAlign: v}
}

// Padding sets one side's padding for the range; kind must be one of the
// padding rule kinds.
func Padding(kind RuleKind, from, to CellRef, pad float64) TableRule {
	return TableRule{Kind: kind, From: from, To: to, Value: pad}
}

// CellStyle is the resolved style of a single table cell.
type CellStyle struct {
	FontFamily    string
	Bold          bool
	Size          float64
	TextColor     Color
	HasBackground bool
	Background    Color
	GridWidth     float64
	GridColor     Color
	VAlign        VAlign
	PadLeft       float64
	PadRight      float64
	PadTop        float64
	PadBottom     float64
}

// LineHeight returns the leading used for wrapped cell text.
func (c CellStyle) LineHeight() float64 {
	return c.Size * 1.2
}

// DefaultCellStyle is the style of a cell no rule touches.
func DefaultCellStyle() CellStyle {
	return CellStyle{
		FontFamily: DefaultFontFamily,
		Size:       10,
		TextColor:  Black,
		VAlign:     VAlignBottom,
		PadLeft:    6,
		PadRight:   6,
		PadTop:     3,
		PadBottom:  3,
	}
}

// Table is a rectangular grid of cell text with fixed column widths.
type Table struct {
	rows       [][]string
	colWidths  []float64
	rules      []TableRule
	headerRows int
	align      Alignment
}

// NewTable returns a centered table holding copies of rows and colWidths.
func NewTable(rows [][]string, colWidths []float64, rules ...TableRule) Table {
	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string(nil), row...)
	}
	return Table{
		rows:      cp,
		colWidths: append([]float64(nil), colWidths...),
		rules:     append([]TableRule(nil), rules...),
		align:     AlignCenter,
	}
}

func (Table) Kind() BlockKind { return KindTable }
func (Table) block()          {}

// WithHeaderRows returns a copy of t whose first n rows repeat at the top of
// every continuation page.
func (t Table) WithHeaderRows(n int) Table {
	t.headerRows = n
	return t
}

// WithAlign returns a copy of t placed horizontally by a.
func (t Table) WithAlign(a Alignment) Table {
	t.align = a
	return t
}

// NumRows returns the row count.
func (t Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t Table) NumCols() int { return len(t.colWidths) }

// HeaderRows returns the number of repeated header rows.
func (t Table) HeaderRows() int { return t.headerRows }

// Alignment returns the horizontal placement of the table.
func (t Table) Alignment() Alignment { return t.align }

// Cell returns the text of cell (row, col).
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}

// Row returns a copy of row i.
func (t Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Rows returns a copy of all rows.
func (t Table) Rows() [][]string {
	cp := make([][]string, len(t.rows))
	for i := range t.rows {
		cp[i] = t.Row(i)
	}
	return cp
}

// ColWidths returns a copy of the column widths.
func (t Table) ColWidths() []float64 {
	return append([]float64(nil), t.colWidths...)
}

// Width returns the sum of the column widths.
func (t Table) Width() float64 {
	var w float64
	for _, cw := range t.colWidths {
		w += cw
	}
	return w
}

// Rules returns a copy of the style rules.
func (t Table) Rules() []TableRule {
	return append([]TableRule(nil), t.rules...)
}

// CellStyle resolves the style of cell (row, col) by applying every rule that
// covers it in order.
func (t Table) CellStyle(row, col int) CellStyle {
	cs := DefaultCellStyle()
	for _, r := range t.rules {
		if !t.covers(r, row, col) {
			continue
		}
		switch r.Kind {
		case RuleBackground:
			cs.HasBackground = true
			cs.Background = r.Color
		case RuleTextColor:
			cs.TextColor = r.Color
		case RuleBold:
			cs.Bold = r.Value != 0
		case RuleFontSize:
			cs.Size = r.Value
		case RuleGrid:
			cs.GridWidth = r.Value
			cs.GridColor = r.Color
		case RuleVAlign:
			cs.VAlign = r.VAlign
		case RuleLeftPadding:
			cs.PadLeft = r.Value
		case RuleRightPadding:
			cs.PadRight = r.Value
		case RuleTopPadding:
			cs.PadTop = r.Value
		case RuleBottomPadding:
			cs.PadBottom = r.Value
		}
	}
	return cs
}

func (t Table) covers(r TableRule, row, col int) bool {
	c0, c1 := resolveIndex(r.From.Col, len(t.colWidths)), resolveIndex(r.To.Col, len(t.colWidths))
	r0, r1 := resolveIndex(r.From.Row, len(t.rows)), resolveIndex(r.To.Row, len(t.rows))
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return col >= c0 && col <= c1 && row >= r0 && row <= r1
}

func resolveIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}

func (t Table) validate() error {
	if len(t.rows) == 0 || len(t.colWidths) == 0 {
		return ErrEmptyTable
	}
	for i, w := range t.colWidths {
		if w <= 0 {
			return fmt.Errorf("%w: column %d is %v", ErrZeroWidthColumn, i, w)
		}
	}
	for i, row := range t.rows {
		if len(row) != len(t.colWidths) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedTable, i, len(row), len(t.colWidths))
		}
	}
	if t.headerRows < 0 || t.headerRows > len(t.rows) {
		return fmt.Errorf("%w: %d header rows in %d-row table", ErrRuleOutOfRange, t.headerRows, len(t.rows))
	}
	for i, r := range t.rules {
		for _, ref := range []CellRef{r.From, r.To} {
			c := resolveIndex(ref.Col, len(t.colWidths))
			row := resolveIndex(ref.Row, len(t.rows))
			if c < 0 || c >= len(t.colWidths) || row < 0 || row >= len(t.rows) {
				return fmt.Errorf("%w: rule %d (%s) cell (%d,%d)", ErrRuleOutOfRange, i, r.Kind, ref.Col, ref.Row)
			}
		}
		if r.Kind == RuleFontSize && r.Value <= 0 {
			return fmt.Errorf("%w: rule %d font size %v", ErrInvalidStyle, i, r.Value)
		}
		if r.Value < 0 {
			return fmt.Errorf("%w: rule %d (%s) negative value", ErrInvalidStyle, i, r.Kind)
		}
	}
	return nil
}
