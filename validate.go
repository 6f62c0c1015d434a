package trustdocs

import (
	"fmt"
	"unicode/utf8"
)

// frameEpsilon absorbs float rounding when column widths add up to exactly
// the frame width.
const frameEpsilon = 0.01

// ValidateText returns an error if s is not valid UTF-8 or contains control
// characters other than tab and newline.
func ValidateText(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	for _, r := range s {
		if isControlRune(r) {
			return fmt.Errorf("%w: %U", ErrControlChar, r)
		}
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7F
}

// Validate checks the geometry and every block, returning the first problem
// as a *LayoutError.
func (d Document) Validate() error {
	g := d.geometry
	if g.Size.Width <= 0 || g.Size.Height <= 0 {
		return NewLayoutError(-1, ErrInvalidGeometry, "page size %vx%v", g.Size.Width, g.Size.Height)
	}
	m := g.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return NewLayoutError(-1, ErrInvalidGeometry, "negative margin")
	}
	if g.FrameWidth() <= 0 || g.FrameHeight() <= 0 {
		return NewLayoutError(-1, ErrInvalidGeometry, "margins leave no frame")
	}
	for i, b := range d.blocks {
		if b == nil {
			return NewLayoutError(i, ErrNilBlock, "")
		}
		if err := validateBlock(b, g); err != nil {
			return NewLayoutError(i, err, "%s", b.Kind())
		}
	}
	return nil
}

func validateBlock(b Block, g Geometry) error {
	switch b := b.(type) {
	case Paragraph:
		if err := b.style.validate(); err != nil {
			return err
		}
		if err := ValidateText(b.text); err != nil {
			return err
		}
		if _, err := ParseInline(b.text); err != nil {
			return err
		}
	case Spacer:
		if b.height < 0 {
			return ErrNegativeSpacer
		}
	case Table:
		if err := b.validate(); err != nil {
			return err
		}
		if b.Width() > g.FrameWidth()+frameEpsilon {
			return fmt.Errorf("%w: %.2fpt in %.2fpt", ErrTableTooWide, b.Width(), g.FrameWidth())
		}
		for _, row := range b.rows {
			for _, cell := range row {
				if err := ValidateText(cell); err != nil {
					return err
				}
				if _, err := ParseInline(cell); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
