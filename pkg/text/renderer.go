// Package text fits and paints wheel labels: curved text along arcs,
// radial text across ring segments, and the font-size search shared by
// the layout and draw passes.
package text

import (
	"math"
	"strings"
	"unicode"

	"yearwheel/pkg/cache"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
)

const (
	// DefaultWeight is the weight of fitted item labels.
	DefaultWeight = "500"
	// Ellipsis ends truncated labels.
	Ellipsis = "…"
	// LineHeight is the line pitch as a multiple of the font size.
	LineHeight = 1.2
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithCache shares a measurement cache. Without it each Renderer owns a
// cache of cache.DefaultMaxSize entries.
func WithCache(c *cache.LRU[string, float64]) Option {
	return func(r *Renderer) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithZoom sets the zoom percentage; 100 is unscaled.
func WithZoom(percent float64) Option {
	return func(r *Renderer) {
		r.SetZoomLevel(percent)
	}
}

// WithMeasurer measures text with m instead of the drawing surface. The
// surface then sees no save/font/restore calls for measuring.
func WithMeasurer(m graphics.TextMeasurer) Option {
	return func(r *Renderer) {
		if m != nil {
			r.measurer = m
		}
	}
}

// Renderer paints text onto one surface for a wheel of a given size. It is
// not safe for concurrent use; the cache it holds may be shared.
type Renderer struct {
	ctx      graphics.Context
	size     float64
	center   graphics.Point
	zoom     float64
	cache    *cache.LRU[string, float64]
	measurer graphics.TextMeasurer
}

// New creates a renderer drawing on ctx around center.
func New(ctx graphics.Context, size float64, center graphics.Point, opts ...Option) *Renderer {
	r := &Renderer{
		ctx:    ctx,
		size:   size,
		center: center,
		zoom:   100,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.New[string, float64](cache.DefaultMaxSize)
	}
	if r.measurer == nil {
		r.measurer = contextMeasurer{ctx: ctx}
	}
	return r
}

// SetZoomLevel updates the zoom percentage. Non-positive values reset it
// to 100.
func (r *Renderer) SetZoomLevel(percent float64) {
	if !(percent > 0) {
		percent = 100
	}
	r.zoom = percent
}

// ZoomLevel returns the zoom percentage.
func (r *Renderer) ZoomLevel() float64 { return r.zoom }

// Size returns the wheel size in pixels.
func (r *Renderer) Size() float64 { return r.size }

// Cache returns the measurement cache.
func (r *Renderer) Cache() *cache.LRU[string, float64] { return r.cache }

func (r *Renderer) font(weight string, size float64) graphics.Font {
	return graphics.NewFont(weight, size)
}

func (r *Renderer) polar(radius, a float64) graphics.Point {
	return layout.PolarToCartesian(r.center.X, r.center.Y, radius, a)
}

type contextMeasurer struct {
	ctx graphics.Context
}

func (m contextMeasurer) MeasureText(text string, f graphics.Font) float64 {
	m.ctx.Save()
	m.ctx.SetFont(f)
	w := m.ctx.MeasureText(text)
	m.ctx.Restore()
	return w
}

// MeasureText returns the width of text in f. Results are cached under
// "<font>:<text>".
func (r *Renderer) MeasureText(text string, f graphics.Font) float64 {
	key := f.String() + ":" + text
	if w, ok := r.cache.Get(key); ok {
		return w
	}
	w := r.measurer.MeasureText(text, f)
	r.cache.Set(key, w)
	return w
}

// TruncateText shortens text until it fits maxWidth with an ellipsis
// appended. It keeps at least one character.
func (r *Renderer) TruncateText(text string, maxWidth float64, f graphics.Font) string {
	return truncate(text, maxWidth, Ellipsis, 1, func(s string) float64 { return r.MeasureText(s, f) })
}

// TruncateWith is TruncateText with a custom suffix. It may drop every
// character, leaving only the suffix.
func (r *Renderer) TruncateWith(text string, maxWidth float64, f graphics.Font, suffix string) string {
	return truncate(text, maxWidth, suffix, 0, func(s string) float64 { return r.MeasureText(s, f) })
}

func truncate(text string, maxWidth float64, suffix string, keep int, measure func(string) float64) string {
	if measure(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > keep && measure(string(runes)+suffix) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + suffix
}

// SplitForWrapping splits text on whitespace and then once more after the
// first inner hyphen of each word, so "Verksamhets-planering" can break
// as "Verksamhets-" / "planering". Words ending in a hyphen stay whole.
func SplitForWrapping(text string) []string {
	var parts []string
	for _, word := range strings.Fields(text) {
		i := strings.IndexByte(word, '-')
		if i < 0 || strings.HasSuffix(word, "-") {
			parts = append(parts, word)
			continue
		}
		parts = append(parts, word[:i+1])
		if rest := word[i+1:]; rest != "" {
			parts = append(parts, rest)
		}
	}
	return parts
}

// Wrap greedily joins words with spaces into lines no wider than
// maxWidth. A single word wider than maxWidth gets a line of its own.
func Wrap(words []string, maxWidth float64, measure func(string) float64) []string {
	var (
		lines   []string
		current string
	)
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func hasSpace(text string) bool {
	return strings.IndexFunc(text, unicode.IsSpace) >= 0
}

const searchTolerance = 0.5

// searchFontSize bisects [lo, hi] for the largest size at which text fits
// limit. With iterations > 0 it runs exactly that many steps and returns
// the lower bound; otherwise it stops once the interval is within
// searchTolerance and returns the best size that fit, or lo.
func (r *Renderer) searchFontSize(text, weight string, limit, lo, hi float64, iterations int) float64 {
	fits := func(size float64) bool {
		return r.MeasureText(text, r.font(weight, size)) <= limit
	}
	if iterations > 0 {
		for i := 0; i < iterations; i++ {
			mid := (lo + hi) / 2
			if fits(mid) {
				lo = mid
			} else {
				hi = mid
			}
		}
		return lo
	}

	best := lo
	for hi-lo > searchTolerance {
		mid := (lo + hi) / 2
		if fits(mid) {
			best = mid
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}

// CalculateOptimalFontSize returns the largest size in [minSize, maxSize]
// at which text fits availableWidth, within half a pixel. It returns
// maxSize when that fits and minSize when even minSize does not.
func (r *Renderer) CalculateOptimalFontSize(text string, availableWidth, minSize, maxSize float64, weight string) float64 {
	if weight == "" {
		weight = DefaultWeight
	}
	fits := func(size float64) bool {
		return r.MeasureText(text, r.font(weight, size)) <= availableWidth
	}
	if fits(maxSize) {
		return maxSize
	}
	if !fits(minSize) {
		return minSize
	}
	return r.searchFontSize(text, weight, availableWidth, minSize, maxSize, 0)
}

// Bounds are the zoom-aware font size limits of fitted labels.
type Bounds struct {
	AbsoluteMin   float64
	MinDisplay    float64
	ReasonableMax float64
	MaxDisplay    float64
}

// BoundsFor derives font limits from the on-screen wheel size. Each limit
// scales with the effective size but stays within fixed pixel limits, so
// MinDisplay never exceeds ReasonableMax.
func BoundsFor(size, zoomPercent float64) Bounds {
	eff := size * zoomPercent / 100
	return Bounds{
		AbsoluteMin:   math.Max(12, math.Min(eff/200, 16)),
		MinDisplay:    math.Max(14, math.Min(eff/180, 18)),
		ReasonableMax: math.Min(35, math.Max(18, eff/60)),
		MaxDisplay:    math.Min(50, math.Max(20, eff/45)),
	}
}

// Bounds returns the limits at the current zoom.
func (r *Renderer) Bounds() Bounds {
	return BoundsFor(r.size, r.zoom)
}

// clamp raises size to MinDisplay, caps it at MaxDisplay and finally
// enforces AbsoluteMin.
func (b Bounds) clamp(size float64) float64 {
	size = math.Max(size, b.MinDisplay)
	size = math.Min(size, b.MaxDisplay)
	if size < b.AbsoluteMin {
		size = b.AbsoluteMin
	}
	return size
}
