package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yearwheel/pkg/graphics"
)

func isRed(c color.RGBA) bool   { return c.R > 250 && c.G < 5 && c.B < 5 }
func isWhite(c color.RGBA) bool { return c.R == 255 && c.G == 255 && c.B == 255 }

func rect(c graphics.Context, x, y, w, h float64) {
	c.BeginPath()
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

func TestFillRect(t *testing.T) {
	c := NewCanvas(20, 20)
	c.SetFillStyle("#FF0000")
	rect(c, 5, 5, 10, 10)
	c.Fill()

	img := c.Image()
	assert.True(t, isRed(img.RGBAAt(10, 10)))
	assert.True(t, isWhite(img.RGBAAt(2, 2)))
	assert.True(t, isWhite(img.RGBAAt(17, 17)))
	require.NoError(t, c.Err())
}

func TestTransformAppliesToPaths(t *testing.T) {
	c := NewCanvas(40, 40)
	c.SetFillStyle("#FF0000")
	c.Save()
	c.Translate(20, 20)
	c.Rotate(math.Pi / 2)
	rect(c, 0, 0, 10, 4)
	c.Fill()
	c.Restore()

	img := c.Image()
	// A quarter turn maps +x to +y on screen.
	assert.True(t, isRed(img.RGBAAt(18, 25)))
	assert.True(t, isWhite(img.RGBAAt(25, 18)))
	assert.Equal(t, graphics.Identity(), c.Transform())
	assert.Equal(t, 1, c.Depth())
}

func TestArcFill(t *testing.T) {
	c := NewCanvas(40, 40)
	c.SetFillStyle("#FF0000")
	c.BeginPath()
	c.Arc(20, 20, 10, 0, 2*math.Pi, false)
	c.Fill()

	img := c.Image()
	assert.True(t, isRed(img.RGBAAt(20, 20)))
	assert.True(t, isRed(img.RGBAAt(27, 20)))
	assert.True(t, isWhite(img.RGBAAt(33, 20)))
	assert.True(t, isWhite(img.RGBAAt(2, 2)))
}

func TestRingFillLeavesHole(t *testing.T) {
	c := NewCanvas(60, 60)
	c.SetFillStyle("#FF0000")
	c.BeginPath()
	c.Arc(30, 30, 25, 0, 2*math.Pi, false)
	c.LineTo(30+10, 30)
	c.Arc(30, 30, 10, 2*math.Pi, 0, true)
	c.ClosePath()
	c.Fill()

	img := c.Image()
	assert.True(t, isWhite(img.RGBAAt(30, 30)))
	assert.True(t, isRed(img.RGBAAt(30, 12)))
}

func TestStrokeCaps(t *testing.T) {
	draw := func(lc graphics.LineCap) *Canvas {
		c := NewCanvas(20, 20)
		c.SetStrokeStyle("#FF0000")
		c.SetLineWidth(4)
		c.SetLineCap(lc)
		c.BeginPath()
		c.MoveTo(4, 10)
		c.LineTo(16, 10)
		c.Stroke()
		return c
	}

	butt := draw(graphics.LineCapButt).Image()
	assert.True(t, isRed(butt.RGBAAt(10, 9)))
	assert.True(t, isRed(butt.RGBAAt(10, 10)))
	assert.True(t, isWhite(butt.RGBAAt(10, 4)))
	assert.True(t, isWhite(butt.RGBAAt(2, 10)))

	round := draw(graphics.LineCapRound).Image()
	assert.False(t, isWhite(round.RGBAAt(2, 9)))

	square := draw(graphics.LineCapSquare).Image()
	assert.True(t, isRed(square.RGBAAt(2, 9)))
}

func TestStrokeArc(t *testing.T) {
	c := NewCanvas(40, 40)
	c.SetStrokeStyle("#FF0000")
	c.SetLineWidth(1)
	c.BeginPath()
	c.Arc(20, 20, 12, 0, 2*math.Pi, false)
	c.Stroke()

	img := c.Image()
	assert.False(t, isWhite(img.RGBAAt(32, 20)))
	assert.True(t, isWhite(img.RGBAAt(20, 20)))
}

func TestInvalidStyleIsRecorded(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetFillStyle("#00FF00")
	c.SetFillStyle("red")
	rect(c, 0, 0, 10, 10)
	c.Fill()

	err := c.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, graphics.ErrInvalidColorFormat)
	assert.Equal(t, uint8(255), c.Image().RGBAAt(5, 5).G, "the previous style stays in effect")
}

func TestFillTextDrawsGlyphs(t *testing.T) {
	c := NewCanvas(60, 40)
	c.SetFont(graphics.NewFont("600", 24))
	c.SetFillStyle("#000000")
	c.SetTextAlign(graphics.AlignCenter)
	c.SetTextBaseline(graphics.BaselineMiddle)
	c.FillText("HH", 30, 20)
	require.NoError(t, c.Err())

	w := c.MeasureText("HH")
	assert.Greater(t, w, 20.0)
	assert.Less(t, w, 48.0)

	dark := 0
	img := c.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y).R < 128 {
				dark++
				assert.InDelta(t, 30, x, w/2+2)
				assert.InDelta(t, 20, y, 14)
			}
		}
	}
	assert.Greater(t, dark, 20)
}

func TestClearRectAndTransparentBackground(t *testing.T) {
	c := NewCanvas(10, 10, WithBackground(color.RGBA{}))
	assert.Equal(t, uint8(0), c.Image().RGBAAt(5, 5).A)

	c.SetFillStyle("#FF0000")
	rect(c, 0, 0, 10, 10)
	c.Fill()
	c.ClearRect(0, 0, 5, 10)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(2, 5).A)
	assert.True(t, isRed(c.Image().RGBAAt(7, 5)))
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(8, 6)
	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestRendererReplaysRecording(t *testing.T) {
	rec := graphics.NewRecorder(nil)
	rec.SetFillStyle("#FF0000")
	rect(rec, 0, 0, 4, 4)
	rec.Fill()

	r := NewRenderer(8, 8)
	img, err := r.Render(rec)
	require.NoError(t, err)
	assert.True(t, isRed(img.RGBAAt(2, 2)))
	assert.True(t, isWhite(img.RGBAAt(6, 6)))

	imgs, err := r.RenderAll([]*graphics.Recorder{rec, rec})
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
}

func TestParseBackground(t *testing.T) {
	c, err := ParseBackground("")
	require.NoError(t, err)
	assert.Equal(t, color.White, c)

	c, err = ParseBackground("transparent")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, c)

	_, err = ParseBackground("#12")
	assert.ErrorIs(t, err, graphics.ErrInvalidColorFormat)
}
