package trustdocs

import "strings"

// Inch is the number of points per inch.
const Inch = 72.0

// BlockKind identifies the concrete type of a Block.
type BlockKind uint8

const (
	KindParagraph BlockKind = iota
	KindSpacer
	KindTable
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindSpacer:
		return "spacer"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Block is one unit of a document's linear layout. The only implementations
// are Paragraph, Spacer and Table.
type Block interface {
	Kind() BlockKind
	block()
}

// Paragraph is a run of text with inline markup set in a Style.
type Paragraph struct {
	text  string
	style Style
}

// NewParagraph returns a paragraph block. Text may carry <b>, <i> and <br/>
// markup.
func NewParagraph(text string, style Style) Paragraph {
	return Paragraph{text: text, style: style}
}

func (Paragraph) Kind() BlockKind { return KindParagraph }
func (Paragraph) block()          {}

// Text returns the marked-up source text.
func (p Paragraph) Text() string { return p.text }

// Style returns the paragraph style.
func (p Paragraph) Style() Style { return p.style }

// Spacer is vertical empty space.
type Spacer struct {
	height float64
}

// NewSpacer returns a spacer of height points.
func NewSpacer(height float64) Spacer {
	return Spacer{height: height}
}

func (Spacer) Kind() BlockKind { return KindSpacer }
func (Spacer) block()          {}

// Height returns the spacer height in points.
func (s Spacer) Height() float64 { return s.height }

// PageSize is a named page size in points.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// Standard page sizes.
var (
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}
	Legal  = PageSize{Name: "Legal", Width: 612, Height: 1008}
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89}
)

// PageSizeByName resolves a standard page size case-insensitively.
func PageSizeByName(name string) (PageSize, bool) {
	for _, size := range []PageSize{Letter, Legal, A4} {
		if strings.EqualFold(size.Name, strings.TrimSpace(name)) {
			return size, true
		}
	}
	return PageSize{}, false
}

// Margins are the four page margins in points.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Geometry is a page size plus margins.
type Geometry struct {
	Size    PageSize
	Margins Margins
}

// LetterGeometry returns US Letter with one-inch margins, except a quarter
// inch at the bottom.
func LetterGeometry() Geometry {
	return Geometry{
		Size:    Letter,
		Margins: Margins{Top: Inch, Right: Inch, Bottom: 18, Left: Inch},
	}
}

// FrameWidth returns the page width available between the side margins.
func (g Geometry) FrameWidth() float64 {
	return g.Size.Width - g.Margins.Left - g.Margins.Right
}

// FrameHeight returns the page height available between top and bottom
// margins.
func (g Geometry) FrameHeight() float64 {
	return g.Size.Height - g.Margins.Top - g.Margins.Bottom
}

// Document is an ordered sequence of blocks plus page geometry. It is built
// once and consumed once by a renderer.
type Document struct {
	name     string
	geometry Geometry
	blocks   []Block
}

// NewDocument returns a document holding a copy of blocks.
func NewDocument(name string, geometry Geometry, blocks ...Block) Document {
	cp := make([]Block, len(blocks))
	copy(cp, blocks)
	return Document{name: name, geometry: geometry, blocks: cp}
}

// Name returns the document name.
func (d Document) Name() string { return d.name }

// Geometry returns the page geometry.
func (d Document) Geometry() Geometry { return d.geometry }

// Len returns the number of blocks.
func (d Document) Len() int { return len(d.blocks) }

// Block returns block i.
func (d Document) Block(i int) Block { return d.blocks[i] }

// Blocks returns a copy of the block list.
func (d Document) Blocks() []Block {
	cp := make([]Block, len(d.blocks))
	copy(cp, d.blocks)
	return cp
}

// Tables returns the tables of d in document order.
func (d Document) Tables() []Table {
	var out []Table
	for _, b := range d.blocks {
		if t, ok := b.(Table); ok {
			out = append(out, t)
		}
	}
	return out
}
