// Package svg draws wheels as SVG documents. Canvas implements
// graphics.Context on top of github.com/ajstarks/svgo: paths become
// <path> elements in device coordinates and text becomes <text> elements
// placed with a transform matrix.
package svg

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"yearwheel/pkg/font"
	"yearwheel/pkg/graphics"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackground paints the document background with a hex color.
// "transparent" leaves it empty.
func WithBackground(style string) Option {
	return func(c *Canvas) {
		c.background = style
	}
}

// WithMeasurer measures text with m. Without it the Go fonts are used.
func WithMeasurer(m graphics.TextMeasurer) Option {
	return func(c *Canvas) {
		c.measurer = m
	}
}

// WithTitle adds a <title> element.
func WithTitle(title string) Option {
	return func(c *Canvas) {
		c.title = title
	}
}

// Canvas writes drawing calls as SVG elements. Call End once drawing is
// done to close the document.
type Canvas struct {
	doc    *svgo.SVG
	width  int
	height int

	background string
	title      string
	measurer   graphics.TextMeasurer

	stack *graphics.StateStack
	path  *graphics.Path
	ended bool
	err   error
}

// New starts an SVG document of the given size on w.
func New(w io.Writer, width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		doc:        svgo.New(w),
		width:      width,
		height:     height,
		background: "#FFFFFF",
		stack:      graphics.NewStateStack(),
		path:       graphics.NewPath(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.measurer == nil {
		if r, err := font.Default(); err == nil {
			c.measurer = r
		} else {
			c.measurer = font.Fixed{}
		}
	}

	c.doc.Startview(width, height, 0, 0, width, height)
	if c.title != "" {
		c.doc.Title(c.title)
	}
	c.ClearRect(0, 0, float64(width), float64(height))
	return c
}

// End closes the document. Further calls are ignored.
func (c *Canvas) End() error {
	if !c.ended {
		c.doc.End()
		c.ended = true
	}
	return c.err
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

func (c *Canvas) BeginPath()          { c.path.Clear() }
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(c.device(x, y)) }
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(c.device(x, y)) }
func (c *Canvas) ClosePath()          { c.path.Close() }

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

func (c *Canvas) Fill() {
	if c.ended || c.path.IsEmpty() {
		return
	}
	c.doc.Path(pathData(c.path), "fill:"+c.state().FillStyle+";stroke:none")
}

func (c *Canvas) Stroke() {
	if c.ended || c.path.IsEmpty() {
		return
	}
	s := c.state()
	width := s.LineWidth * s.CTM.ScaleFactor()
	c.doc.Path(pathData(c.path), fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linecap:%s",
		s.StrokeStyle, num(width), lineCap(s.LineCap)))
}

func (c *Canvas) FillText(text string, x, y float64) {
	if c.ended || text == "" {
		return
	}
	s := c.state()
	m := graphics.Translate(x, y).Multiply(s.CTM)
	c.doc.Gtransform(fmt.Sprintf("matrix(%s %s %s %s %s %s)", num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5])))
	c.doc.Text(0, 0, text, textStyle(s))
	c.doc.Gend()
}

func (c *Canvas) MeasureText(text string) float64 {
	return c.measurer.MeasureText(text, c.state().Font)
}

// ClearRect paints the rectangle with the background color.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if c.ended || c.background == "" || strings.EqualFold(c.background, "transparent") {
		return
	}
	rect := graphics.NewPath()
	rect.Rect(x, y, w, h)
	c.doc.Path(pathData(rect.Transform(c.state().CTM)), "fill:"+c.background+";stroke:none")
}

func (c *Canvas) setStyle(dst *string, style string) {
	col, err := graphics.ParseHex(style)
	if err != nil {
		c.fail(err)
		return
	}
	*dst = col.Hex()
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

var _ graphics.Context = (*Canvas)(nil)

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// pathData renders p as SVG path data.
func pathData(p *graphics.Path) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch seg.Op {
		case graphics.PathOpMoveTo:
			fmt.Fprintf(&b, "M%s %s", num(seg.Points[0].X), num(seg.Points[0].Y))
		case graphics.PathOpLineTo:
			fmt.Fprintf(&b, "L%s %s", num(seg.Points[0].X), num(seg.Points[0].Y))
		case graphics.PathOpCurveTo:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s",
				num(seg.Points[0].X), num(seg.Points[0].Y),
				num(seg.Points[1].X), num(seg.Points[1].Y),
				num(seg.Points[2].X), num(seg.Points[2].Y))
		case graphics.PathOpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func lineCap(lc graphics.LineCap) string {
	if lc == "" {
		return string(graphics.LineCapButt)
	}
	return string(lc)
}

func textStyle(s *graphics.State) string {
	anchor := "start"
	switch s.TextAlign {
	case graphics.AlignCenter:
		anchor = "middle"
	case graphics.AlignRight:
		anchor = "end"
	}
	baseline := "alphabetic"
	switch s.TextBaseline {
	case graphics.BaselineMiddle:
		baseline = "central"
	case graphics.BaselineTop:
		baseline = "hanging"
	case graphics.BaselineBottom:
		baseline = "text-after-edge"
	}
	f := s.Font
	family := f.Family
	if family == "" {
		family = graphics.DefaultFamily
	}
	return fmt.Sprintf("fill:%s;font-family:%s;font-size:%spx;font-weight:%d;text-anchor:%s;dominant-baseline:%s",
		s.FillStyle, family, num(f.Size), f.NumericWeight(), anchor, baseline)
}
