package raster

import (
	"image/color"
	"strings"

	"yearwheel/pkg/graphics"
)

// Transparent is the background keyword for an empty canvas.
const Transparent = "transparent"

// parseStyle turns a "#RRGGBB" style into an opaque color.
func parseStyle(style string) (color.RGBA, error) {
	if strings.EqualFold(style, Transparent) {
		return color.RGBA{}, nil
	}
	c, err := graphics.ParseHex(style)
	if err != nil {
		return color.RGBA{}, err
	}
	return c.RGBA(), nil
}

// ParseBackground parses a canvas background: a hex color or
// "transparent". An empty string is white.
func ParseBackground(s string) (color.Color, error) {
	if s == "" {
		return color.White, nil
	}
	c, err := parseStyle(s)
	if err != nil {
		return nil, err
	}
	return c, nil
}
