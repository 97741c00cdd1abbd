package text

import (
	"math"
	"strings"
	"unicode/utf8"

	"yearwheel/pkg/angle"
	"yearwheel/pkg/graphics"
)

// CurveMode selects how DrawCurvedText spaces characters.
type CurveMode int

const (
	// CurveAdaptive measures every character, adds letter spacing of a
	// tenth of the average width and centres the run in the arc.
	CurveAdaptive CurveMode = iota
	// CurveSimple gives every character an equal share of the arc and
	// draws text of three characters or fewer as one run at the middle.
	CurveSimple
)

// Style overrides the defaults of a draw call. Zero fields keep the
// defaults.
type Style struct {
	FontSize float64
	Weight   string
	Color    string
}

func (s Style) or(size float64, weight, color string) Style {
	if s.FontSize <= 0 {
		s.FontSize = size
	}
	if s.Weight == "" {
		s.Weight = weight
	}
	if s.Color == "" {
		s.Color = color
	}
	return s
}

// CurveStyle styles curved text.
type CurveStyle struct {
	Style
	Mode CurveMode
}

func (r *Renderer) begin(f graphics.Font, color string) {
	r.ctx.Save()
	r.ctx.SetFont(f)
	r.ctx.SetFillStyle(color)
	r.ctx.SetTextAlign(graphics.AlignCenter)
	r.ctx.SetTextBaseline(graphics.BaselineMiddle)
}

// glyphAt draws s centred at radius and angle a, rotated tangent to the
// circle.
func (r *Renderer) glyphAt(s string, radius, a float64) {
	pos := r.polar(radius, a)
	r.ctx.Save()
	r.ctx.Translate(pos.X, pos.Y)
	r.ctx.Rotate(a + angle.QuarterCircle)
	r.ctx.FillText(s, 0, 0)
	r.ctx.Restore()
}

// DrawCurvedText draws text along the circle of radius between startAngle
// and endAngle (radians). Adaptive mode defaults to size/50, weight 600,
// white; simple mode to size/70, normal weight, slate grey. Text wider than
// the arc is not clipped.
func (r *Renderer) DrawCurvedText(text string, radius, startAngle, endAngle float64, style CurveStyle) {
	if text == "" || radius <= 0 {
		return
	}
	if style.Mode == CurveSimple {
		s := style.or(r.size/70, "normal", "#374151")
		r.drawSimpleArc(text, radius, startAngle, endAngle, s)
		return
	}
	s := style.or(r.size/50, "600", graphics.LightText)
	r.drawAdaptiveArc(text, radius, startAngle, endAngle, s)
}

// DrawTextAlongArc draws item text along an arc at a given size with the
// label weight.
func (r *Renderer) DrawTextAlongArc(text string, radius, startAngle, endAngle, fontSize float64, color string) {
	if text == "" || radius <= 0 {
		return
	}
	r.drawAdaptiveArc(text, radius, startAngle, endAngle, Style{FontSize: fontSize, Weight: DefaultWeight, Color: color}.or(r.size/50, DefaultWeight, graphics.LightText))
}

func (r *Renderer) drawAdaptiveArc(text string, radius, startAngle, endAngle float64, s Style) {
	f := r.font(s.Weight, s.FontSize)
	chars := strings.Split(text, "")
	widths := make([]float64, len(chars))
	total := 0.0
	for i, c := range chars {
		widths[i] = r.MeasureText(c, f)
		total += widths[i]
	}
	spacing := total / float64(len(chars)) * 0.1
	span := (total + spacing*float64(len(chars)-1)) / radius

	r.begin(f, s.Color)
	cur := startAngle + (endAngle-startAngle-span)/2
	for i, c := range chars {
		step := widths[i] / radius
		r.glyphAt(c, radius, cur+step/2)
		cur += step + spacing/radius
	}
	r.ctx.Restore()
}

func (r *Renderer) drawSimpleArc(text string, radius, startAngle, endAngle float64, s Style) {
	r.begin(r.font(s.Weight, s.FontSize), s.Color)
	span := endAngle - startAngle
	n := utf8.RuneCountInString(text)
	if n <= 3 {
		r.glyphAt(text, radius, startAngle+span/2)
	} else {
		step := span / float64(n)
		for i, c := range strings.Split(text, "") {
			r.glyphAt(c, radius, startAngle+(float64(i)+0.5)*step)
		}
	}
	r.ctx.Restore()
}

// DrawTextOnCircle draws text as one run centred at radius and angle a
// (radians), rotated tangent to the circle. Defaults are size/50, weight
// 600, white.
func (r *Renderer) DrawTextOnCircle(text string, radius, a float64, style Style) {
	if text == "" {
		return
	}
	s := style.or(r.size/50, "600", graphics.LightText)
	r.begin(r.font(s.Weight, s.FontSize), s.Color)
	pos := r.polar(radius, a)
	r.ctx.Translate(pos.X, pos.Y)
	r.ctx.Rotate(a + angle.QuarterCircle)
	r.ctx.FillText(text, 0, 0)
	r.ctx.Restore()
}

// PerpendicularStyle configures DrawPerpendicularText.
type PerpendicularStyle struct {
	// Background picks a contrasting text color; empty means white text.
	Background string
	// Decision, when it allows wrapping, supplies the font size for
	// multi-line text. Single lines are always sized by the width search.
	Decision *Decision
}

// Minimum segment extents, as fractions of the wheel size at 100% zoom,
// below which labels are skipped.
const (
	minArcFraction    = 0.003
	minRadialFraction = 0.002
	perpIterations    = 10
)

// DrawPerpendicularText draws text radially across the ring segment that
// starts at startRadius, is width deep and spans startAngle to endAngle
// (radians). Text is centred in the segment, rotated to its centre angle
// and flipped on the left half of the wheel so it never reads upside
// down. Segments too small to hold readable text are skipped.
func (r *Renderer) DrawPerpendicularText(text string, startRadius, width, startAngle, endAngle float64, style PerpendicularStyle) {
	if text == "" {
		return
	}
	span := math.Abs(endAngle - startAngle)
	center := (startAngle + endAngle) / 2
	middle := startRadius + width/2
	arc := middle * span

	zoom := r.zoom / 100
	if arc < r.size*minArcFraction/zoom || width < r.size*minRadialFraction/zoom {
		return
	}

	color := graphics.LightText
	if style.Background != "" {
		if c, err := graphics.ContrastColor(style.Background); err == nil {
			color = c
		}
	}

	b := r.Bounds()
	maxWidth := width * 0.85
	maxHeight := arc * 0.85

	size := r.searchFontSize(text, DefaultWeight, maxWidth*0.95, b.MinDisplay, b.ReasonableMax, perpIterations)
	if utf8.RuneCountInString(text) > 15 {
		size *= 0.95
	}
	size = math.Min(math.Max(size, b.AbsoluteMin), b.MaxDisplay)

	f := r.font(DefaultWeight, size)
	display := text
	if r.MeasureText(text, f) > maxWidth {
		display = r.TruncateText(text, maxWidth*0.9, f)
	}

	lines := []string{display}
	if d := style.Decision; d != nil && d.AllowWrapping && d.LineCount > 1 {
		df := r.font(DefaultWeight, d.FontSize)
		wrapped := Wrap(SplitForWrapping(text), maxWidth*0.85, func(s string) float64 { return r.MeasureText(s, df) })
		if float64(len(wrapped))*d.FontSize*LineHeight <= maxHeight*0.95 {
			lines = wrapped
			size = d.FontSize
			f = df
		}
	} else if d == nil && hasSpace(text) && size >= 14 {
		wrapped := Wrap(strings.Fields(text), maxWidth, func(s string) float64 { return r.MeasureText(s, f) })
		if float64(len(wrapped))*size*LineHeight <= maxHeight {
			lines = wrapped
		}
	}

	r.begin(f, color)
	pos := r.polar(middle, center)
	r.ctx.Translate(pos.X, pos.Y)

	rotation := center
	if a := angle.NormalizeRadians(center); a > angle.QuarterCircle && a < 3*angle.QuarterCircle {
		rotation += math.Pi
	}
	r.ctx.Rotate(rotation)

	if len(lines) == 1 {
		r.ctx.FillText(lines[0], 0, 0)
	} else {
		lh := size * LineHeight
		y := -float64(len(lines))*lh/2 + lh/2
		for _, line := range lines {
			r.ctx.FillText(line, 0, y)
			y += lh
		}
	}
	r.ctx.Restore()
}
