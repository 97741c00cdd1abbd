package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yearwheel/pkg/font"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/model"
	"yearwheel/pkg/text"
)

func newEngine() (*Engine, *graphics.Recorder) {
	m := font.Fixed{Advance: 0.5}
	rec := graphics.NewRecorder(m)
	return New(rec, 1000, graphics.Point{X: 500, Y: 500}, text.WithMeasurer(m)), rec
}

func names(rec *graphics.Recorder) []string {
	out := make([]string, 0, len(rec.Ops()))
	for _, op := range rec.Ops() {
		out = append(out, op.Name)
	}
	return out
}

func find(rec *graphics.Recorder, name string) []graphics.Operator {
	var out []graphics.Operator
	for _, op := range rec.Ops() {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

func TestDrawRingBackground(t *testing.T) {
	e, rec := newEngine()
	e.DrawRingBackground(100, 200, "#334155", 0, 1)

	assert.Equal(t, []string{"save", "beginPath", "arc", "lineTo", "arc", "closePath", "fillStyle", "fill", "restore"}, names(rec))
	arcs := find(rec, "arc")
	assert.Equal(t, []interface{}{500.0, 500.0, 200.0, 0.0, 1.0, false}, arcs[0].Operands)
	assert.Equal(t, []interface{}{500.0, 500.0, 100.0, 1.0, 0.0, true}, arcs[1].Operands)

	line := find(rec, "lineTo")[0]
	assert.InDelta(t, 500+100*math.Cos(1), line.Operands[0].(float64), 1e-9)
	assert.InDelta(t, 500+100*math.Sin(1), line.Operands[1].(float64), 1e-9)
	assert.Equal(t, "#334155", find(rec, "fillStyle")[0].Operands[0])
}

func TestDrawArcSegment(t *testing.T) {
	e, rec := newEngine()
	e.DrawArcSegment(100, 200, 0, 90, "#FF0000", "", 0)
	assert.Zero(t, rec.Count("stroke"))
	arcs := find(rec, "arc")
	require.Len(t, arcs, 2)
	assert.InDelta(t, math.Pi/2, arcs[0].Operands[4].(float64), 1e-12)
	assert.Equal(t, true, arcs[1].Operands[5])

	rec.Reset()
	e.DrawArcSegment(100, 200, 0, 90, "#FF0000", "#FFFFFF", 0)
	assert.Equal(t, 1, rec.Count("stroke"))
	assert.Equal(t, 1.0, find(rec, "lineWidth")[0].Operands[0])
}

func TestRoundRect(t *testing.T) {
	e, rec := newEngine()
	e.RoundRect(10, 20, 100, 40, 5)

	assert.Equal(t, 4, rec.Count("quadraticCurveTo"))
	assert.Equal(t, 4, rec.Count("lineTo"))
	assert.Equal(t, []interface{}{15.0, 20.0}, find(rec, "moveTo")[0].Operands)
	assert.Equal(t, "closePath", names(rec)[len(rec.Ops())-1])
	assert.Zero(t, rec.Count("fill"))

	rec.Reset()
	e.RoundRect(0, 0, 10, 4, 50)
	assert.Equal(t, []interface{}{2.0, 0.0}, find(rec, "moveTo")[0].Operands, "radius clamps to half the short side")
}

func TestDrawPerpendicularTextTruncates(t *testing.T) {
	e, rec := newEngine()
	e.DrawPerpendicularText("Verksamhetsplanering", 300, 90, TextStyle{})

	assert.Equal(t, "600 12.5px Arial, sans-serif", find(rec, "font")[0].Operands[0])
	assert.Equal(t, "Verksamhetspl...", find(rec, "fillText")[0].Operands[0])
	assert.InDelta(t, math.Pi, find(rec, "rotate")[0].Operands[0].(float64), 1e-12)
	assert.Equal(t, rec.Count("save"), rec.Count("restore"))

	rec.Reset()
	e.DrawPerpendicularText("Jul", 300, 0, TextStyle{Color: "#000000"})
	assert.Equal(t, "Jul", find(rec, "fillText")[0].Operands[0])
	assert.Equal(t, "#000000", find(rec, "fillStyle")[0].Operands[0])

	rec.Reset()
	e.DrawPerpendicularText("", 300, 0, TextStyle{})
	assert.Empty(t, rec.Ops())
}

func TestDrawCurvedTextUsesDegrees(t *testing.T) {
	e, rec := newEngine()
	e.DrawCurvedText("ABCD", 300, 0, 90, TextStyle{})

	rot := find(rec, "rotate")
	require.Len(t, rot, 4)
	for i, deg := range []float64{11.25, 33.75, 56.25, 78.75} {
		assert.InDelta(t, deg*math.Pi/180+math.Pi/2, rot[i].Operands[0].(float64), 1e-9)
	}
	assert.Equal(t, "#374151", find(rec, "fillStyle")[0].Operands[0])
}

func TestDrawLabelBadge(t *testing.T) {
	e, rec := newEngine()
	e.DrawLabelBadge(model.Label{Name: "Viktig", Color: "#FFFFFF"}, 300, 45)

	var fills []interface{}
	for _, op := range find(rec, "fillStyle") {
		fills = append(fills, op.Operands[0])
	}
	assert.Equal(t, []interface{}{graphics.LightText, "#FFFFFF", graphics.DarkText}, fills)
	assert.Equal(t, 2, rec.Count("fill"))
	assert.Equal(t, 8, rec.Count("quadraticCurveTo"))
	assert.Equal(t, "Viktig", find(rec, "fillText")[0].Operands[0])

	rec.Reset()
	e.DrawLabelBadge(model.Label{Name: "Grå"}, 300, 45)
	fill := find(rec, "fillStyle")
	assert.Equal(t, DefaultBadgeColor, fill[1].Operands[0])
	assert.Equal(t, graphics.DarkText, fill[2].Operands[0])
}

func TestDrawLinkedWheelIcon(t *testing.T) {
	e, rec := newEngine()
	e.DrawLinkedWheelIcon(300, 0)

	assert.Equal(t, 3, rec.Count("arc"))
	assert.Equal(t, 5, rec.Count("stroke"))
	assert.Equal(t, 1, rec.Count("fill"))
	assert.Equal(t, "round", find(rec, "lineCap")[0].Operands[0])
	assert.Equal(t, LinkColor, find(rec, "strokeStyle")[0].Operands[0])
	assert.Equal(t, 10.0, e.LinkIconSize())
}

func TestClearAndCache(t *testing.T) {
	e, rec := newEngine()
	e.Clear()
	assert.Equal(t, []interface{}{0.0, 0.0, 1000.0, 1000.0}, find(rec, "clearRect")[0].Operands)

	assert.Equal(t, 30.0, e.MeasureText("abc", graphics.NewFont("600", 20)))
	assert.Equal(t, 1, e.Cache().Len())
	e.ClearCache()
	assert.Zero(t, e.Cache().Len())
}

func TestColorHelpers(t *testing.T) {
	e, _ := newEngine()
	assert.Equal(t, graphics.DarkText, e.ContrastColor("#FFFFFF"))
	assert.Equal(t, graphics.LightText, e.ContrastColor("not a color"))
	assert.Equal(t, "#cccccc", e.HoverColor("#FFFFFF"))
	assert.Equal(t, "bogus", e.HoverColor("bogus"))
}
