package trustdocs

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB color with 8-bit channels.
type Color struct {
	R, G, B uint8
}

// Named colors used by the built-in styles and fixtures.
var (
	Black      = Color{0, 0, 0}
	White      = Color{255, 255, 255}
	Grey       = Color{128, 128, 128}
	WhiteSmoke = Color{245, 245, 245}
)

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 {
		return Color{}, fmt.Errorf("color %q: expected 6 hex digits", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// MustHex is ParseHex for literal colors known to be valid.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorByName resolves a named color or a hex literal.
func ColorByName(name string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	case "grey", "gray":
		return Grey, nil
	case "whitesmoke":
		return WhiteSmoke, nil
	}
	return ParseHex(name)
}
