// Package raster draws wheels into RGBA images. Canvas implements
// graphics.Context with anti-aliased fills from golang.org/x/image/vector
// and text outlined from the bundled Go fonts.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"yearwheel/pkg/font"
	"yearwheel/pkg/graphics"
	pathpkg "yearwheel/pkg/path"

	"golang.org/x/image/vector"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackground sets the color Clear and ClearRect paint with.
func WithBackground(c color.Color) Option {
	return func(cv *Canvas) {
		if c != nil {
			cv.background = c
		}
	}
}

// WithFonts sets the glyph source for FillText and MeasureText.
func WithFonts(r *font.Renderer) Option {
	return func(cv *Canvas) {
		cv.fonts = r
	}
}

// Canvas is a drawing surface backed by an *image.RGBA. Paths are kept in
// device space: every point is mapped through the transform in effect
// when it is added. A Canvas is not safe for concurrent use.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	background color.Color

	stack *graphics.StateStack
	path  *graphics.Path
	fonts *font.Renderer
	err   error
}

// NewCanvas creates a canvas of the given pixel size, cleared to the
// background (white unless WithBackground says otherwise).
func NewCanvas(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: color.White,
		stack:      graphics.NewStateStack(),
		path:       graphics.NewPath(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Clear()
	return c
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Clear paints the whole canvas with the background and resets the
// current path.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
	c.path.Clear()
}

// EncodePNG writes the image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Err returns the first problem met while drawing.
func (c *Canvas) Err() error {
	return c.err
}

func (c *Canvas) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Canvas) state() *graphics.State {
	return c.stack.Current()
}

func (c *Canvas) Save()    { c.stack.Push() }
func (c *Canvas) Restore() { c.stack.Pop() }

func (c *Canvas) Translate(x, y float64) {
	c.state().CTM.Concat(graphics.Translate(x, y))
}

func (c *Canvas) Rotate(angle float64) {
	c.state().CTM.Concat(graphics.Rotate(angle))
}

func (c *Canvas) device(x, y float64) (float64, float64) {
	return c.state().CTM.Transform(x, y)
}

func (c *Canvas) BeginPath() {
	c.path.Clear()
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path.MoveTo(c.device(x, y))
}

func (c *Canvas) LineTo(x, y float64) {
	c.path.LineTo(c.device(x, y))
}

// QuadraticCurveTo maps both points; affine maps keep curves quadratic.
func (c *Canvas) QuadraticCurveTo(cpx, cpy, x, y float64) {
	dcx, dcy := c.device(cpx, cpy)
	dx, dy := c.device(x, y)
	c.path.QuadTo(dcx, dcy, dx, dy)
}

func (c *Canvas) Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool) {
	arc := graphics.NewPath()
	arc.Arc(cx, cy, r, startAngle, endAngle, anticlockwise)
	c.path.Append(arc.Transform(c.state().CTM))
}

func (c *Canvas) ClosePath() {
	c.path.Close()
}

func (c *Canvas) paint(style string) (color.RGBA, bool) {
	col, err := parseStyle(style)
	if err != nil {
		c.fail(err)
		return color.RGBA{}, false
	}
	return col, true
}

// Fill fills the current path with the fill style.
func (c *Canvas) Fill() {
	if col, ok := c.paint(c.state().FillStyle); ok {
		c.fillPath(c.path, col)
	}
}

// Stroke outlines the current path with the stroke style, line width and
// cap. Widths scale with the transform.
func (c *Canvas) Stroke() {
	s := c.state()
	col, ok := c.paint(s.StrokeStyle)
	if !ok {
		return
	}
	width := s.LineWidth * s.CTM.ScaleFactor()
	if width <= 0 {
		return
	}
	c.fillPath(strokeOutline(c.path, width, s.LineCap), col)
}

func (c *Canvas) fillPath(p *graphics.Path, col color.Color) {
	if p.IsEmpty() {
		return
	}
	r := vector.NewRasterizer(c.width, c.height)
	pathpkg.ToVector(p, r)
	r.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{})
}

func (c *Canvas) glyphs() *font.Renderer {
	if c.fonts == nil {
		r, err := font.Default()
		if err != nil {
			c.fail(fmt.Errorf("load fonts: %w", err))
			return nil
		}
		c.fonts = r
	}
	return c.fonts
}

// FillText fills the outline of text anchored at (x, y) by the current
// alignment and baseline.
func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	fonts := c.glyphs()
	if fonts == nil {
		return
	}
	s := c.state()
	col, ok := c.paint(s.FillStyle)
	if !ok {
		return
	}
	m := fonts.Metrics(s.Font)
	x += graphics.AlignOffset(s.TextAlign, fonts.MeasureText(text, s.Font))
	y += graphics.BaselineOffset(s.TextBaseline, m.Ascent, m.Descent)
	c.fillPath(fonts.TextPath(text, s.Font, x, y).Transform(s.CTM), col)
}

// MeasureText returns the advance of text in the current font, in user
// space units.
func (c *Canvas) MeasureText(text string) float64 {
	fonts := c.glyphs()
	if fonts == nil {
		return 0
	}
	return fonts.MeasureText(text, c.state().Font)
}

// ClearRect paints the device-space bounding box of the rectangle with the
// background.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	rect := graphics.NewPath()
	rect.Rect(x, y, w, h)
	b := rect.Transform(c.state().CTM).Bounds()
	area := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width+0.5), int(b.Y+b.Height+0.5)).Intersect(c.img.Bounds())
	draw.Draw(c.img, area, &image.Uniform{c.background}, image.Point{}, draw.Src)
}

func (c *Canvas) setStyle(dst *string, style string) {
	if _, err := parseStyle(style); err != nil {
		c.fail(err)
		return
	}
	*dst = style
}

func (c *Canvas) SetFillStyle(style string)   { c.setStyle(&c.state().FillStyle, style) }
func (c *Canvas) SetStrokeStyle(style string) { c.setStyle(&c.state().StrokeStyle, style) }

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.state().LineWidth = w
	}
}

func (c *Canvas) SetLineCap(lc graphics.LineCap)          { c.state().LineCap = lc }
func (c *Canvas) SetFont(f graphics.Font)                 { c.state().Font = f }
func (c *Canvas) SetTextAlign(a graphics.TextAlign)       { c.state().TextAlign = a }
func (c *Canvas) SetTextBaseline(b graphics.TextBaseline) { c.state().TextBaseline = b }

// Depth returns the save stack depth.
func (c *Canvas) Depth() int                 { return c.stack.Depth() }
func (c *Canvas) Font() graphics.Font        { return c.state().Font }
func (c *Canvas) Transform() graphics.Matrix { return c.state().CTM }

// At, Bounds and ColorModel let a Canvas be used as an image.Image.
func (c *Canvas) At(x, y int) color.Color { return c.img.At(x, y) }
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }
func (c *Canvas) ColorModel() color.Model { return c.img.ColorModel() }

var (
	_ graphics.Context = (*Canvas)(nil)
	_ image.Image      = (*Canvas)(nil)
)
