package graphics

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned for anything that is not a 6-digit
// hex color with an optional leading '#'.
var ErrInvalidColorFormat = errors.New("invalid color format")

// FormatError reports the offending color string.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidColorFormat, e.Input)
}

// Unwrap lets errors.Is match ErrInvalidColorFormat.
func (e *FormatError) Unwrap() error {
	return ErrInvalidColorFormat
}

// Text colors chosen by ContrastColor.
const (
	DarkText  = "#0F172A"
	LightText = "#FFFFFF"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB", case-insensitive.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return Color{}, &FormatError{Input: s}
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return Color{}, &FormatError{Input: s}
		}
	}
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return Color{}, &FormatError{Input: s}
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// MustParseHex is ParseHex for constants; it panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// Hex returns the lowercase "#rrggbb" form.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// RGBA returns the color for image backends.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Luminance is the perceived brightness (0.299R + 0.587G + 0.114B) / 255.
func (c Color) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// IsLight reports whether dark text should be used on this background.
func (c Color) IsLight() bool {
	return c.Luminance() > 0.5
}

// Contrast returns the text color to draw on top of c.
func (c Color) Contrast() Color {
	if c.IsLight() {
		return MustParseHex(DarkText)
	}
	return MustParseHex(LightText)
}

// Hover darkens light colors by 20% and lightens dark ones by 30%.
func (c Color) Hover() Color {
	factor := 1.3
	if c.IsLight() {
		factor = 0.8
	}
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*factor)))
	}
	return Color{scale(c.R), scale(c.G), scale(c.B)}
}

// Mix blends c toward other by t in [0, 1], in RGB space.
func (c Color) Mix(other Color, t float64) Color {
	r, g, b := c.colorful().BlendRgb(other.colorful(), t).Clamped().RGB255()
	return Color{r, g, b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ContrastColor returns DarkText or LightText for a background hex color.
func ContrastColor(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	if c.IsLight() {
		return DarkText, nil
	}
	return LightText, nil
}

// HoverColor returns the hover variant of a hex color in "#rrggbb" form.
func HoverColor(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Hover().Hex(), nil
}

// HexToRGB splits a hex color into channels.
func HexToRGB(hex string) (r, g, b uint8, err error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	return c.R, c.G, c.B, nil
}

// RGBToHex formats channels as lowercase "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return Color{r, g, b}.Hex()
}
