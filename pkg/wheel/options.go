package wheel

import (
	"yearwheel/internal/log"
	"yearwheel/pkg/cache"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
)

// DefaultSize is the wheel side length in pixels when none is given.
const DefaultSize = 2000

// Options configures a wheel.
type Options struct {
	// Size is the side of the square drawing area in pixels.
	// Default: 2000
	Size float64

	// Zoom is the on-screen zoom percentage. Fonts shrink as it grows.
	// Default: 100
	Zoom float64

	// Locale selects month names: "sv" or "en".
	// Default: "sv"
	Locale string

	// ShowWeekRing draws the ISO week band.
	// Default: true
	ShowWeekRing bool

	// ShowMonthRing draws the month band.
	// Default: true
	ShowMonthRing bool

	// ShowRingNames reserves a band at the outer edge of every ring for
	// its name.
	// Default: true
	ShowRingNames bool

	// RotationOffset turns the whole calendar, in degrees.
	// Default: layout.DefaultRotationOffset
	RotationOffset float64

	// Cache is the text measurement cache. nil gives the wheel its own.
	Cache *cache.LRU[string, float64]

	// Logger receives draw diagnostics. nil uses log.Default().
	Logger *log.Logger

	// Measurer measures text instead of the drawing surface.
	Measurer graphics.TextMeasurer
}

// DefaultOptions returns options with every band shown.
func DefaultOptions() Options {
	return Options{
		Size:           DefaultSize,
		Zoom:           100,
		Locale:         layout.LocaleSV,
		ShowWeekRing:   true,
		ShowMonthRing:  true,
		ShowRingNames:  true,
		RotationOffset: layout.DefaultRotationOffset,
	}
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// Size sets the wheel size in pixels.
func Size(px float64) Option {
	return func(o *Options) {
		o.Size = px
	}
}

// Zoom sets the zoom percentage.
func Zoom(percent float64) Option {
	return func(o *Options) {
		o.Zoom = percent
	}
}

// Locale sets the month name locale.
func Locale(locale string) Option {
	return func(o *Options) {
		o.Locale = locale
	}
}

// ShowWeekRing toggles the week band.
func ShowWeekRing(show bool) Option {
	return func(o *Options) {
		o.ShowWeekRing = show
	}
}

// ShowMonthRing toggles the month band.
func ShowMonthRing(show bool) Option {
	return func(o *Options) {
		o.ShowMonthRing = show
	}
}

// ShowRingNames toggles the ring name bands.
func ShowRingNames(show bool) Option {
	return func(o *Options) {
		o.ShowRingNames = show
	}
}

// RotationOffset sets the calendar rotation in degrees.
func RotationOffset(deg float64) Option {
	return func(o *Options) {
		o.RotationOffset = deg
	}
}

// Cache shares a text measurement cache between wheels.
func Cache(c *cache.LRU[string, float64]) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

// Logger sets the diagnostics logger.
func Logger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Measurer measures text with m.
func Measurer(m graphics.TextMeasurer) Option {
	return func(o *Options) {
		o.Measurer = m
	}
}

// NewOptions creates options from functional options.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	o.Apply(opts...)
	return o
}

// Apply applies functional options to existing options.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// layoutOptions returns the band toggles for the layout calculator.
func (o *Options) layoutOptions() layout.Options {
	return layout.Options{ShowWeekRing: o.ShowWeekRing, ShowMonthRing: o.ShowMonthRing}
}
