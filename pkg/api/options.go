package api

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
	"yearwheel/pkg/wheel"
)

// OutputFormat is the encoding written by Page.RenderTo.
type OutputFormat string

const (
	PNG OutputFormat = "png"
	SVG OutputFormat = "svg"
)

// ParseFormat maps a format name to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForFile picks the format from a file extension, PNG when the
// extension is unknown.
func FormatForFile(name string) OutputFormat {
	if f, err := ParseFormat(filepath.Ext(name)); err == nil {
		return f
	}
	return PNG
}

// RenderOptions configures rendering behavior.
type RenderOptions struct {
	// Size sets the side of the square output in pixels.
	// Default: 2000
	Size int

	// Zoom is the zoom percentage the labels are fitted for.
	// Default: 100
	Zoom float64

	// Locale selects month names.
	// Default: "sv"
	Locale string

	// Background sets the background color.
	// Default: white
	Background color.Color

	// Transparent leaves the background empty (ignores Background).
	// Default: false
	Transparent bool

	// ShowWeekRing draws the week number band.
	// Default: true
	ShowWeekRing bool

	// ShowMonthRing draws the month band.
	// Default: true
	ShowMonthRing bool

	// ShowRingNames draws ring names.
	// Default: true
	ShowRingNames bool

	// RotationOffset turns the calendar, in degrees.
	// Default: -105
	RotationOffset float64

	// Format is the encoding used by RenderTo.
	// Default: PNG
	Format OutputFormat
}

// DefaultRenderOptions returns render options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Size:           wheel.DefaultSize,
		Zoom:           100,
		Locale:         layout.LocaleSV,
		Background:     color.White,
		ShowWeekRing:   true,
		ShowMonthRing:  true,
		ShowRingNames:  true,
		RotationOffset: layout.DefaultRotationOffset,
		Format:         PNG,
	}
}

// Option is a functional option for configuring RenderOptions.
type Option func(*RenderOptions)

// Size sets the output size in pixels.
func Size(px int) Option {
	return func(o *RenderOptions) {
		o.Size = px
	}
}

// Zoom sets the zoom percentage.
func Zoom(percent float64) Option {
	return func(o *RenderOptions) {
		o.Zoom = percent
	}
}

// Locale sets the month name locale.
func Locale(locale string) Option {
	return func(o *RenderOptions) {
		o.Locale = locale
	}
}

// Background sets the background color.
func Background(c color.Color) Option {
	return func(o *RenderOptions) {
		o.Background = c
	}
}

// Transparent enables a transparent background.
func Transparent() Option {
	return func(o *RenderOptions) {
		o.Transparent = true
	}
}

// NoWeekRing hides the week band.
func NoWeekRing() Option {
	return func(o *RenderOptions) {
		o.ShowWeekRing = false
	}
}

// NoMonthRing hides the month band.
func NoMonthRing() Option {
	return func(o *RenderOptions) {
		o.ShowMonthRing = false
	}
}

// NoRingNames hides ring names.
func NoRingNames() Option {
	return func(o *RenderOptions) {
		o.ShowRingNames = false
	}
}

// Rotation sets the calendar rotation in degrees.
func Rotation(deg float64) Option {
	return func(o *RenderOptions) {
		o.RotationOffset = deg
	}
}

// Format sets the RenderTo encoding.
func Format(f OutputFormat) Option {
	return func(o *RenderOptions) {
		o.Format = f
	}
}

// NewRenderOptions creates options from functional options.
func NewRenderOptions(opts ...Option) RenderOptions {
	o := DefaultRenderOptions()
	o.Apply(opts...)
	return o
}

// Apply applies functional options to existing options.
func (o *RenderOptions) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// background returns the background as a color and as a style string.
func (o *RenderOptions) background() (color.Color, string) {
	if o.Transparent {
		return color.RGBA{}, "transparent"
	}
	bg := o.Background
	if bg == nil {
		bg = color.White
	}
	r, g, b, _ := bg.RGBA()
	return bg, graphics.RGBToHex(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func (o *RenderOptions) wheelOptions() []wheel.Option {
	return []wheel.Option{
		wheel.Size(float64(o.Size)),
		wheel.Zoom(o.Zoom),
		wheel.Locale(o.Locale),
		wheel.ShowWeekRing(o.ShowWeekRing),
		wheel.ShowMonthRing(o.ShowMonthRing),
		wheel.ShowRingNames(o.ShowRingNames),
		wheel.RotationOffset(o.RotationOffset),
	}
}
