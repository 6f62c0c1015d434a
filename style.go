package trustdocs

import (
	"fmt"
	"sort"
	"strings"
)

// Alignment controls horizontal placement of paragraph lines and tables.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlignment maps "left", "center", "right" and "justify" to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify":
		return AlignJustify, nil
	default:
		return AlignLeft, fmt.Errorf("unknown alignment %q", s)
	}
}

// Built-in style names.
const (
	StyleNormal   = "Normal"
	StyleBodyText = "BodyText"
	StyleTitle    = "Title"
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
	StyleHeading3 = "Heading3"
)

// DefaultFontFamily is the core PDF font family used by the built-in styles.
const DefaultFontFamily = "Helvetica"

// Style is a named set of paragraph rendering attributes. Styles are values;
// the With methods return modified copies.
type Style struct {
	Name        string
	FontFamily  string
	Bold        bool
	Italic      bool
	Size        float64
	Leading     float64
	Color       Color
	Align       Alignment
	SpaceBefore float64
	SpaceAfter  float64
}

// LineHeight returns Leading, or 1.2 times Size when Leading is unset.
func (s Style) LineHeight() float64 {
	if s.Leading > 0 {
		return s.Leading
	}
	return s.Size * 1.2
}

// Named returns a copy of s under a new name.
func (s Style) Named(name string) Style {
	s.Name = name
	return s
}

// WithSize returns a copy of s with a new font size. Leading is unchanged.
func (s Style) WithSize(size float64) Style {
	s.Size = size
	return s
}

// WithLeading returns a copy of s with a new line height.
func (s Style) WithLeading(leading float64) Style {
	s.Leading = leading
	return s
}

// WithColor returns a copy of s with a new text color.
func (s Style) WithColor(c Color) Style {
	s.Color = c
	return s
}

// WithAlign returns a copy of s with a new alignment.
func (s Style) WithAlign(a Alignment) Style {
	s.Align = a
	return s
}

// WithBold returns a copy of s with bold switched on or off.
func (s Style) WithBold(bold bool) Style {
	s.Bold = bold
	return s
}

// WithSpacing returns a copy of s with new space before and after.
func (s Style) WithSpacing(before, after float64) Style {
	s.SpaceBefore = before
	s.SpaceAfter = after
	return s
}

func (s Style) validate() error {
	if s.FontFamily == "" {
		return fmt.Errorf("%w: style %q has no font family", ErrInvalidStyle, s.Name)
	}
	if s.Size <= 0 {
		return fmt.Errorf("%w: style %q has size %v", ErrInvalidStyle, s.Name, s.Size)
	}
	if s.Leading < 0 || s.SpaceBefore < 0 || s.SpaceAfter < 0 {
		return fmt.Errorf("%w: style %q has negative spacing", ErrInvalidStyle, s.Name)
	}
	return nil
}

// StyleSheet is an immutable registry of named styles. Build it once and pass
// it to whatever assembles documents.
type StyleSheet struct {
	styles map[string]Style
}

// NewStyleSheet returns a sheet holding styles keyed by their names. Later
// styles replace earlier ones with the same name.
func NewStyleSheet(styles ...Style) *StyleSheet {
	m := make(map[string]Style, len(styles))
	for _, st := range styles {
		m[st.Name] = st
	}
	return &StyleSheet{styles: m}
}

// DefaultStyleSheet returns the built-in presets. Metrics follow the classic
// sample sheet: 10pt body text on 12pt leading, bold Helvetica headings.
func DefaultStyleSheet() *StyleSheet {
	normal := Style{
		Name:       StyleNormal,
		FontFamily: DefaultFontFamily,
		Size:       10,
		Leading:    12,
		Color:      Black,
	}
	body := normal.Named(StyleBodyText)
	body.SpaceBefore = 6
	h1 := normal.Named(StyleHeading1)
	h1.Bold = true
	h1.Size, h1.Leading = 18, 22
	h1.SpaceAfter = 6
	title := h1.Named(StyleTitle)
	title.Align = AlignCenter
	h2 := normal.Named(StyleHeading2)
	h2.Bold = true
	h2.Size, h2.Leading = 14, 18
	h2.SpaceBefore, h2.SpaceAfter = 12, 6
	h3 := normal.Named(StyleHeading3)
	h3.Bold = true
	h3.Italic = true
	h3.Size, h3.Leading = 12, 14.4
	h3.SpaceBefore, h3.SpaceAfter = 12, 6
	return NewStyleSheet(normal, body, title, h1, h2, h3)
}

// Style returns the named style.
func (s *StyleSheet) Style(name string) (Style, bool) {
	st, ok := s.styles[name]
	return st, ok
}

// Lookup returns the named style or an error wrapping ErrUnknownStyle.
func (s *StyleSheet) Lookup(name string) (Style, error) {
	st, ok := s.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("%w %q", ErrUnknownStyle, name)
	}
	return st, nil
}

// Names returns the registered style names in sorted order.
func (s *StyleSheet) Names() []string {
	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered styles.
func (s *StyleSheet) Len() int {
	return len(s.styles)
}
