package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runeMeasurer struct{ advance float64 }

func (m runeMeasurer) MeasureText(text string, f Font) float64 {
	return float64(len([]rune(text))) * f.Size * m.advance
}

func TestFontString(t *testing.T) {
	assert.Equal(t, "500 16px Arial, sans-serif", NewFont("500", 16).String())
	assert.Equal(t, "600 12.5px Arial, sans-serif", NewFont("600", 12.5).String())
	assert.Equal(t, "normal 10px Arial, sans-serif", Font{Size: 10}.String())
}

func TestParseFont(t *testing.T) {
	f, err := ParseFont("600 16px Arial, sans-serif")
	require.NoError(t, err)
	assert.Equal(t, NewFont("600", 16), f)
	assert.Equal(t, 600, f.NumericWeight())

	f, err = ParseFont("14px Arial")
	require.NoError(t, err)
	assert.Equal(t, "normal", f.Weight)
	assert.Equal(t, 400, f.NumericWeight())

	_, err = ParseFont("bold huge Arial")
	assert.Error(t, err)
	_, err = ParseFont("")
	assert.Error(t, err)
}

func TestRecorderMeasuresWithCurrentFont(t *testing.T) {
	r := NewRecorder(runeMeasurer{advance: 0.5})
	r.SetFont(NewFont("500", 20))
	assert.Equal(t, 30.0, r.MeasureText("abc"))

	r.Save()
	r.SetFont(NewFont("500", 10))
	assert.Equal(t, 15.0, r.MeasureText("abc"))
	r.Restore()
	assert.Equal(t, 30.0, r.MeasureText("abc"))

	assert.Equal(t, 0.0, NewRecorder(nil).MeasureText("abc"))
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder(nil)
	src.Save()
	src.Translate(10, 20)
	src.Rotate(0.5)
	src.SetFillStyle("#ff0000")
	src.SetFont(NewFont("600", 12))
	src.SetTextAlign(AlignCenter)
	src.SetTextBaseline(BaselineMiddle)
	src.BeginPath()
	src.Arc(0, 0, 5, 0, 1, false)
	src.LineTo(1, 1)
	src.QuadraticCurveTo(2, 2, 3, 3)
	src.ClosePath()
	src.Fill()
	src.SetStrokeStyle("#00ff00")
	src.SetLineWidth(2)
	src.SetLineCap(LineCapRound)
	src.Stroke()
	src.FillText("Jan", 0, 0)
	src.ClearRect(0, 0, 1, 1)
	src.Restore()

	dst := NewRecorder(nil)
	require.NoError(t, src.Replay(dst))
	require.Equal(t, len(src.Ops()), len(dst.Ops()))
	for i := range src.Ops() {
		assert.Equal(t, src.Ops()[i].Name, dst.Ops()[i].Name)
		assert.Equal(t, src.Ops()[i].Operands, dst.Ops()[i].Operands)
	}
	assert.Equal(t, 1, dst.Count("fillText"))
}

func TestRecorderReplayUnknownOperator(t *testing.T) {
	src := NewRecorder(nil)
	src.ops = append(src.ops, Operator{Name: "shadowBlur"})
	err := src.Replay(NewRecorder(nil))
	assert.ErrorContains(t, err, "shadowBlur")
}

func TestOperatorString(t *testing.T) {
	op := Operator{Name: "fillText", Operands: []interface{}{"Mars", 1.5, 2.0}}
	assert.Equal(t, `fillText "Mars" 1.5 2`, op.String())
	assert.Equal(t, "fill", Operator{Name: "fill"}.String())
}
