package graphics

// Context is the canvas-like 2D surface the wheel draws on. Styles are
// "#RRGGBB" strings. Implementations never panic on bad input; the first
// problem is kept and reported by Err.
type Context interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool)
	ClosePath()
	Fill()
	Stroke()

	FillText(text string, x, y float64)
	MeasureText(text string) float64
	ClearRect(x, y, w, h float64)

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(w float64)
	SetLineCap(lc LineCap)
	SetFont(f Font)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)

	Err() error
}

// TextMeasurer returns the advance width of text set in f.
type TextMeasurer interface {
	MeasureText(text string, f Font) float64
}

// AlignOffset returns the x shift that applies align to a run of the
// given width drawn at x = 0.
func AlignOffset(align TextAlign, width float64) float64 {
	switch align {
	case AlignCenter:
		return -width / 2
	case AlignRight:
		return -width
	}
	return 0
}

// BaselineOffset returns the y shift that applies baseline to a line set
// in a font with the given ascent and descent (both positive).
func BaselineOffset(baseline TextBaseline, ascent, descent float64) float64 {
	switch baseline {
	case BaselineMiddle:
		return (ascent - descent) / 2
	case BaselineTop:
		return ascent
	case BaselineBottom:
		return -descent
	}
	return 0
}
