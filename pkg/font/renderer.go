package font

import (
	"yearwheel/pkg/graphics"
)

// Metrics are vertical font metrics in pixels. Descent is positive.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
	XHeight    float64
	CapHeight  float64
}

// Measurer measures text for layout and supplies line metrics.
type Measurer interface {
	graphics.TextMeasurer
	Metrics(f graphics.Font) Metrics
}

// Renderer converts text set in a graphics.Font to outlines, picking the
// face of a Family by the font's weight. The family name of the font is
// ignored.
type Renderer struct {
	family *Family
}

// NewRenderer creates a renderer over family.
func NewRenderer(family *Family) *Renderer {
	return &Renderer{family: family}
}

// Default returns a renderer over the bundled Go fonts.
func Default() (*Renderer, error) {
	fam, err := GoFamily()
	if err != nil {
		return nil, err
	}
	return NewRenderer(fam), nil
}

func (r *Renderer) face(f graphics.Font) *Face {
	return r.family.Face(f.NumericWeight())
}

// MeasureText returns the advance width of text in f, kerning included.
func (r *Renderer) MeasureText(text string, f graphics.Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	return r.face(f).advance(text, f.Size)
}

// TextPath returns the outline of text with its alphabetic baseline origin
// at (x, y), in y-down coordinates.
func (r *Renderer) TextPath(text string, f graphics.Font, x, y float64) *graphics.Path {
	p := graphics.NewPath()
	if text == "" || f.Size <= 0 {
		return p
	}
	r.face(f).outline(p, text, f.Size, x, y)
	return p
}

// Metrics returns the line metrics of f.
func (r *Renderer) Metrics(f graphics.Font) Metrics {
	m, err := r.face(f).metrics(f.Size)
	if err != nil {
		return Fixed{}.Metrics(f)
	}
	return Metrics{
		Ascent:     fromFixed(m.Ascent),
		Descent:    fromFixed(m.Descent),
		LineHeight: fromFixed(m.Height),
		XHeight:    fromFixed(m.XHeight),
		CapHeight:  fromFixed(m.CapHeight),
	}
}

// DefaultAdvance approximates the average advance of proportional UI fonts
// as a fraction of the em.
const DefaultAdvance = 0.55

// Fixed is a Measurer giving every rune the same advance, Advance ems wide.
// It needs no font data and yields reproducible layouts.
type Fixed struct {
	Advance float64
}

// MeasureText returns runes * size * Advance. A zero Advance uses
// DefaultAdvance.
func (m Fixed) MeasureText(text string, f graphics.Font) float64 {
	adv := m.Advance
	if adv == 0 {
		adv = DefaultAdvance
	}
	return float64(len([]rune(text))) * f.Size * adv
}

// Metrics uses the usual 0.8/0.2 em split and a 1.2 line height.
func (Fixed) Metrics(f graphics.Font) Metrics {
	return Metrics{
		Ascent:     f.Size * 0.8,
		Descent:    f.Size * 0.2,
		LineHeight: f.Size * 1.2,
		XHeight:    f.Size * 0.5,
		CapHeight:  f.Size * 0.7,
	}
}
