// Package render holds the simple drawing primitives of a wheel: ring
// backgrounds, arc segments, rounded badges and the linked-wheel icon.
// Angles passed to Engine methods are in degrees unless noted.
package render

import (
	"math"

	"yearwheel/pkg/angle"
	"yearwheel/pkg/cache"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
	"yearwheel/pkg/model"
	"yearwheel/pkg/text"
)

const (
	// DefaultBadgeColor fills badges of labels without a color.
	DefaultBadgeColor = "#94A3B8"
	// LinkColor strokes the linked-wheel icon.
	LinkColor = "#3B82F6"
	// TruncationSuffix ends perpendicular text cut to fit.
	TruncationSuffix = "..."
)

// Engine draws primitives around a wheel center on one surface.
type Engine struct {
	ctx    graphics.Context
	size   float64
	center graphics.Point
	text   *text.Renderer
}

// New creates an engine. Options are passed to the text renderer it
// shares measurement with.
func New(ctx graphics.Context, size float64, center graphics.Point, opts ...text.Option) *Engine {
	return &Engine{
		ctx:    ctx,
		size:   size,
		center: center,
		text:   text.New(ctx, size, center, opts...),
	}
}

// Text returns the text renderer used for labels.
func (e *Engine) Text() *text.Renderer { return e.text }

// Context returns the drawing surface.
func (e *Engine) Context() graphics.Context { return e.ctx }

// Size returns the wheel size in pixels.
func (e *Engine) Size() float64 { return e.size }

// Center returns the wheel center.
func (e *Engine) Center() graphics.Point { return e.center }

func (e *Engine) polar(radius, a float64) graphics.Point {
	return layout.PolarToCartesian(e.center.X, e.center.Y, radius, a)
}

// ContrastColor returns the text color for a background, white when the
// background does not parse.
func (e *Engine) ContrastColor(background string) string {
	c, err := graphics.ContrastColor(background)
	if err != nil {
		return graphics.LightText
	}
	return c
}

// HoverColor returns the hover shade of c, or c itself when it does not
// parse.
func (e *Engine) HoverColor(c string) string {
	h, err := graphics.HoverColor(c)
	if err != nil {
		return c
	}
	return h
}

// DrawRingBackground fills the annulus between innerRadius and outerRadius
// from startAngle to endAngle, in radians.
func (e *Engine) DrawRingBackground(innerRadius, outerRadius float64, color string, startAngle, endAngle float64) {
	c := e.ctx
	c.Save()
	c.BeginPath()
	c.Arc(e.center.X, e.center.Y, outerRadius, startAngle, endAngle, false)
	p := e.polar(innerRadius, endAngle)
	c.LineTo(p.X, p.Y)
	c.Arc(e.center.X, e.center.Y, innerRadius, endAngle, startAngle, true)
	c.ClosePath()
	c.SetFillStyle(color)
	c.Fill()
	c.Restore()
}

// DrawFullRing fills a whole annulus.
func (e *Engine) DrawFullRing(innerRadius, outerRadius float64, color string) {
	e.DrawRingBackground(innerRadius, outerRadius, color, 0, angle.FullCircle)
}

// DrawArcSegment fills the ring segment between the radii and angles.
// An empty stroke color skips the outline.
func (e *Engine) DrawArcSegment(innerRadius, outerRadius, startAngle, endAngle float64, fill, stroke string, strokeWidth float64) {
	start := angle.DegreesToRadians(startAngle)
	end := angle.DegreesToRadians(endAngle)

	c := e.ctx
	c.Save()
	c.BeginPath()
	c.Arc(e.center.X, e.center.Y, outerRadius, start, end, false)
	c.Arc(e.center.X, e.center.Y, innerRadius, end, start, true)
	c.ClosePath()
	c.SetFillStyle(fill)
	c.Fill()
	if stroke != "" {
		if strokeWidth <= 0 {
			strokeWidth = 1
		}
		c.SetStrokeStyle(stroke)
		c.SetLineWidth(strokeWidth)
		c.Stroke()
	}
	c.Restore()
}

// RoundRect adds a rounded rectangle as a new path. It does not fill or
// stroke.
func (e *Engine) RoundRect(x, y, width, height, radius float64) {
	radius = math.Max(0, math.Min(radius, math.Min(width, height)/2))
	c := e.ctx
	c.BeginPath()
	c.MoveTo(x+radius, y)
	c.LineTo(x+width-radius, y)
	c.QuadraticCurveTo(x+width, y, x+width, y+radius)
	c.LineTo(x+width, y+height-radius)
	c.QuadraticCurveTo(x+width, y+height, x+width-radius, y+height)
	c.LineTo(x+radius, y+height)
	c.QuadraticCurveTo(x, y+height, x, y+height-radius)
	c.LineTo(x, y+radius)
	c.QuadraticCurveTo(x, y, x+radius, y)
	c.ClosePath()
}

// DrawCurvedText spreads text over the arc in equal slots. Text of three
// characters or fewer is drawn whole at the middle.
func (e *Engine) DrawCurvedText(s string, radius, startAngle, endAngle float64, style TextStyle) {
	e.text.DrawCurvedText(s, radius, angle.DegreesToRadians(startAngle), angle.DegreesToRadians(endAngle), textCurve(style))
}

// TextStyle overrides the defaults of the text primitives.
type TextStyle = text.Style

func textCurve(s TextStyle) text.CurveStyle {
	return text.CurveStyle{Style: s, Mode: text.CurveSimple}
}

// DrawPerpendicularText draws text radially at radius and midAngle. It
// defaults to size/80, weight 600, white, and truncates with "..." past a
// tenth of the wheel size.
func (e *Engine) DrawPerpendicularText(s string, radius, midAngle float64, style TextStyle) {
	if s == "" {
		return
	}
	if style.FontSize <= 0 {
		style.FontSize = e.size / 80
	}
	if style.Weight == "" {
		style.Weight = "600"
	}
	if style.Color == "" {
		style.Color = graphics.LightText
	}
	f := graphics.NewFont(style.Weight, style.FontSize)

	c := e.ctx
	c.Save()
	c.SetFont(f)
	c.SetFillStyle(style.Color)
	c.SetTextAlign(graphics.AlignCenter)
	c.SetTextBaseline(graphics.BaselineMiddle)

	a := angle.DegreesToRadians(midAngle)
	p := e.polar(radius, a)
	c.Translate(p.X, p.Y)
	c.Rotate(a + angle.QuarterCircle)

	maxWidth := e.size / 10
	if e.text.MeasureText(s, f) > maxWidth {
		s = e.text.TruncateWith(s, maxWidth, f, TruncationSuffix)
	}
	c.FillText(s, 0, 0)
	c.Restore()
}

// DrawLabelBadge draws a rounded badge with the label name at radius and
// angle: a white border, the label color and contrasting text.
func (e *Engine) DrawLabelBadge(label model.Label, radius, angleDeg float64) {
	fontSize := math.Max(e.size/120, 8)
	padding := fontSize * 0.4
	height := fontSize + padding*2
	f := graphics.NewFont("600", fontSize)
	width := e.text.MeasureText(label.Name, f) + padding*2

	bg := label.Color
	if bg == "" {
		bg = DefaultBadgeColor
	}

	c := e.ctx
	c.Save()
	c.SetFont(f)
	a := angle.DegreesToRadians(angleDeg)
	p := e.polar(radius, a)
	c.Translate(p.X, p.Y)
	c.Rotate(a + angle.QuarterCircle)

	c.SetFillStyle(graphics.LightText)
	c.SetStrokeStyle(graphics.LightText)
	c.SetLineWidth(2)
	e.RoundRect(-width/2-1, -height/2-1, width+2, height+2, fontSize*0.3)
	c.Fill()

	c.SetFillStyle(bg)
	e.RoundRect(-width/2, -height/2, width, height, fontSize*0.3)
	c.Fill()

	c.SetFillStyle(e.ContrastColor(bg))
	c.SetTextAlign(graphics.AlignCenter)
	c.SetTextBaseline(graphics.BaselineMiddle)
	c.FillText(label.Name, 0, 0)
	c.Restore()
}

// LinkIconSize returns the diameter scale of the linked-wheel icon.
func (e *Engine) LinkIconSize() float64 {
	return math.Max(e.size/140, 10)
}

// DrawLinkedWheelIcon draws a chain-link marker in a white disc at radius
// and angle.
func (e *Engine) DrawLinkedWheelIcon(radius, angleDeg float64) {
	size := e.LinkIconSize()
	a := angle.DegreesToRadians(angleDeg)
	p := e.polar(radius, a)

	c := e.ctx
	c.Save()
	c.Translate(p.X, p.Y)
	c.Rotate(a + angle.QuarterCircle)

	c.SetFillStyle(graphics.LightText)
	c.BeginPath()
	c.Arc(0, 0, size*0.7, 0, angle.FullCircle, false)
	c.Fill()
	c.SetStrokeStyle(LinkColor)
	c.SetLineWidth(1.5)
	c.Stroke()

	c.SetLineCap(graphics.LineCapRound)
	link := size * 0.4
	for _, o := range []graphics.Point{{X: -0.4, Y: -0.2}, {X: 0.4, Y: 0.2}} {
		c.BeginPath()
		c.Arc(link*o.X, link*o.Y, link*0.25, 0, angle.FullCircle, false)
		c.Stroke()
	}
	for _, dy := range []float64{0, 0.3} {
		c.BeginPath()
		c.MoveTo(-link*0.25, link*(dy-0.35))
		c.LineTo(link*0.25, link*(dy+0.05))
		c.Stroke()
	}
	c.Restore()
}

// Clear erases the whole wheel square.
func (e *Engine) Clear() {
	e.ctx.ClearRect(0, 0, e.size, e.size)
}

// ClearCache empties the measurement cache.
func (e *Engine) ClearCache() {
	e.text.Cache().Clear()
}

// MeasureText returns the cached width of s in f.
func (e *Engine) MeasureText(s string, f graphics.Font) float64 {
	return e.text.MeasureText(s, f)
}

// Cache returns the measurement cache.
func (e *Engine) Cache() *cache.LRU[string, float64] {
	return e.text.Cache()
}
