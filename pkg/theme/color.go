package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	orcherrors "github.com/matzehuels/orchard/pkg/errors"
)

// Color is an sRGB colour written as "#RRGGBB" or "#RRGGBBAA" in theme files.
type Color color.NRGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return color.NRGBA(c).RGBA() }

// NRGBA returns the colour as a standard library value.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA(c) }

// WithAlpha returns c with alpha a.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// String formats c as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := Hex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Hex parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the "#" is optional).
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, orcherrors.New(orcherrors.ErrCodeInvalidTheme, "invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, orcherrors.New(orcherrors.ErrCodeInvalidTheme, "invalid colour %q", s)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustHex is like [Hex] but panics on malformed input. It is meant for
// built-in presets.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB builds an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xff} }

// RGBA builds a colour with alpha.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }
