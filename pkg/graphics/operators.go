package graphics

import (
	"fmt"
	"strings"
)

// Operator is one recorded drawing call. Name is the canvas method or
// property name; Operands hold its arguments in call order.
type Operator struct {
	Name     string
	Operands []interface{}
}

// String formats the operator for listings, e.g. "arc 500 500 120 0 3.14 false".
func (op Operator) String() string {
	if len(op.Operands) == 0 {
		return op.Name
	}
	parts := make([]string, 0, len(op.Operands)+1)
	parts = append(parts, op.Name)
	for _, v := range op.Operands {
		switch x := v.(type) {
		case float64:
			parts = append(parts, fmt.Sprintf("%.4g", x))
		case string:
			parts = append(parts, fmt.Sprintf("%q", x))
		default:
			parts = append(parts, fmt.Sprint(x))
		}
	}
	return strings.Join(parts, " ")
}

// Recorder is a Context that records every call as an Operator. It keeps
// a state stack so MeasureText uses the font in effect at the call.
type Recorder struct {
	ops      []Operator
	stack    *StateStack
	measurer TextMeasurer
}

// NewRecorder creates a recorder measuring text with m. A nil m measures
// every string as zero width.
func NewRecorder(m TextMeasurer) *Recorder {
	return &Recorder{
		stack:    NewStateStack(),
		measurer: m,
	}
}

// Ops returns the recorded operators.
func (r *Recorder) Ops() []Operator {
	return r.ops
}

// Count returns how many operators named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset drops all recorded operators and state.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.stack = NewStateStack()
}

// State returns the state in effect after the last call.
func (r *Recorder) State() *State {
	return r.stack.Current()
}

func (r *Recorder) record(name string, operands ...interface{}) {
	r.ops = append(r.ops, Operator{Name: name, Operands: operands})
}

func (r *Recorder) Save() {
	r.stack.Push()
	r.record("save")
}

func (r *Recorder) Restore() {
	r.stack.Pop()
	r.record("restore")
}

func (r *Recorder) Translate(x, y float64) {
	r.stack.Current().CTM.Concat(Translate(x, y))
	r.record("translate", x, y)
}

func (r *Recorder) Rotate(angle float64) {
	r.stack.Current().CTM.Concat(Rotate(angle))
	r.record("rotate", angle)
}

func (r *Recorder) BeginPath()          { r.record("beginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.record("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.record("lineTo", x, y) }

func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.record("quadraticCurveTo", cpx, cpy, x, y)
}

func (r *Recorder) Arc(cx, cy, radius, startAngle, endAngle float64, anticlockwise bool) {
	r.record("arc", cx, cy, radius, startAngle, endAngle, anticlockwise)
}

func (r *Recorder) ClosePath() { r.record("closePath") }
func (r *Recorder) Fill()      { r.record("fill") }
func (r *Recorder) Stroke()    { r.record("stroke") }

func (r *Recorder) FillText(text string, x, y float64) {
	r.record("fillText", text, x, y)
}

// MeasureText is not recorded; it has no visible effect.
func (r *Recorder) MeasureText(text string) float64 {
	if r.measurer == nil {
		return 0
	}
	return r.measurer.MeasureText(text, r.stack.Current().Font)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record("clearRect", x, y, w, h)
}

func (r *Recorder) SetFillStyle(style string) {
	r.stack.Current().FillStyle = style
	r.record("fillStyle", style)
}

func (r *Recorder) SetStrokeStyle(style string) {
	r.stack.Current().StrokeStyle = style
	r.record("strokeStyle", style)
}

func (r *Recorder) SetLineWidth(w float64) {
	r.stack.Current().LineWidth = w
	r.record("lineWidth", w)
}

func (r *Recorder) SetLineCap(lc LineCap) {
	r.stack.Current().LineCap = lc
	r.record("lineCap", string(lc))
}

func (r *Recorder) SetFont(f Font) {
	r.stack.Current().Font = f
	r.record("font", f.String())
}

func (r *Recorder) SetTextAlign(a TextAlign) {
	r.stack.Current().TextAlign = a
	r.record("textAlign", string(a))
}

func (r *Recorder) SetTextBaseline(b TextBaseline) {
	r.stack.Current().TextBaseline = b
	r.record("textBaseline", string(b))
}

// Err always returns nil; the recorder accepts anything.
func (r *Recorder) Err() error { return nil }

// Replay issues the recorded operators against dst in order.
func (r *Recorder) Replay(dst Context) error {
	for i, op := range r.ops {
		if err := replayOp(dst, op); err != nil {
			return fmt.Errorf("operator %d (%s): %w", i, op.Name, err)
		}
	}
	return dst.Err()
}

func replayOp(dst Context, op Operator) error {
	f := func(i int) float64 { return op.Operands[i].(float64) }
	s := func(i int) string { return op.Operands[i].(string) }

	switch op.Name {
	case "save":
		dst.Save()
	case "restore":
		dst.Restore()
	case "translate":
		dst.Translate(f(0), f(1))
	case "rotate":
		dst.Rotate(f(0))
	case "beginPath":
		dst.BeginPath()
	case "moveTo":
		dst.MoveTo(f(0), f(1))
	case "lineTo":
		dst.LineTo(f(0), f(1))
	case "quadraticCurveTo":
		dst.QuadraticCurveTo(f(0), f(1), f(2), f(3))
	case "arc":
		dst.Arc(f(0), f(1), f(2), f(3), f(4), op.Operands[5].(bool))
	case "closePath":
		dst.ClosePath()
	case "fill":
		dst.Fill()
	case "stroke":
		dst.Stroke()
	case "fillText":
		dst.FillText(s(0), f(1), f(2))
	case "clearRect":
		dst.ClearRect(f(0), f(1), f(2), f(3))
	case "fillStyle":
		dst.SetFillStyle(s(0))
	case "strokeStyle":
		dst.SetStrokeStyle(s(0))
	case "lineWidth":
		dst.SetLineWidth(f(0))
	case "lineCap":
		dst.SetLineCap(LineCap(s(0)))
	case "font":
		font, err := ParseFont(s(0))
		if err != nil {
			return err
		}
		dst.SetFont(font)
	case "textAlign":
		dst.SetTextAlign(TextAlign(s(0)))
	case "textBaseline":
		dst.SetTextBaseline(TextBaseline(s(0)))
	default:
		return fmt.Errorf("unknown operator")
	}
	return nil
}
