package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yearwheel/pkg/font"
	"yearwheel/pkg/graphics"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestDocumentStructure(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 200, 100, WithTitle("Årshjul 2025"), WithMeasurer(font.Fixed{}))
	require.NoError(t, c.End())
	require.NoError(t, c.End())

	out := buf.String()
	wellFormed(t, out)
	assert.Contains(t, out, `viewBox="0 0 200 100"`)
	assert.Contains(t, out, "<title>Årshjul 2025</title>")
	assert.Contains(t, out, `d="M0 0 L200 0 L200 100 L0 100 Z"`)
	assert.Equal(t, 1, strings.Count(out, "</svg>"))
}

func TestTransparentBackgroundOmitsRect(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 10, 10, WithBackground("transparent"), WithMeasurer(font.Fixed{}))
	require.NoError(t, c.End())
	assert.NotContains(t, buf.String(), "<path")
}

func TestFillAndStroke(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 100, 100, WithBackground("transparent"), WithMeasurer(font.Fixed{}))

	c.Save()
	c.Translate(10, 20)
	c.SetFillStyle("#FF0000")
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(5, 0)
	c.QuadraticCurveTo(10, 0, 10, 5)
	c.ClosePath()
	c.Fill()

	c.SetStrokeStyle("#0000ff")
	c.SetLineWidth(2)
	c.SetLineCap(graphics.LineCapRound)
	c.Stroke()
	c.Restore()
	require.NoError(t, c.End())

	out := buf.String()
	wellFormed(t, out)
	assert.Contains(t, out, `d="M10 20 L15 20 C18.333 20 20 21.667 20 25 Z"`)
	assert.Contains(t, out, "fill:#ff0000;stroke:none")
	assert.Contains(t, out, "fill:none;stroke:#0000ff;stroke-width:2;stroke-linecap:round")
}

func TestArcIsTransformed(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 100, 100, WithBackground("transparent"), WithMeasurer(font.Fixed{}))
	c.Translate(50, 50)
	c.BeginPath()
	c.Arc(0, 0, 10, 0, math.Pi, false)
	c.Fill()
	require.NoError(t, c.End())

	out := buf.String()
	assert.Contains(t, out, `d="M60 50 C`)
	assert.Contains(t, out, ` 40 50"`)
}

func TestFillText(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 100, 100, WithMeasurer(font.Fixed{Advance: 0.5}))
	c.SetFont(graphics.NewFont("600", 12))
	c.SetFillStyle("#FFFFFF")
	c.SetTextAlign(graphics.AlignCenter)
	c.SetTextBaseline(graphics.BaselineMiddle)
	c.Translate(50, 50)
	c.Rotate(math.Pi / 2)
	c.FillText("Q1 & Q2", 0, 0)
	assert.Equal(t, 42.0, c.MeasureText("Q1 & Q2"))
	require.NoError(t, c.End())

	out := buf.String()
	wellFormed(t, out)
	assert.Contains(t, out, `transform="matrix(0 1 -1 0 50 50)"`)
	assert.Contains(t, out, "Q1 &amp; Q2")
	assert.Contains(t, out, "font-size:12px;font-weight:600;text-anchor:middle;dominant-baseline:central")
}

func TestBadStyleIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 10, 10, WithMeasurer(font.Fixed{}))
	c.SetStrokeStyle("blue")
	assert.ErrorIs(t, c.Err(), graphics.ErrInvalidColorFormat)
	assert.ErrorIs(t, c.End(), graphics.ErrInvalidColorFormat)
}

func TestReplayOntoSVG(t *testing.T) {
	rec := graphics.NewRecorder(nil)
	rec.SetFillStyle("#334155")
	rec.BeginPath()
	rec.Arc(50, 50, 40, 0, 2*math.Pi, false)
	rec.Fill()

	var buf bytes.Buffer
	c := New(&buf, 100, 100, WithMeasurer(font.Fixed{}))
	require.NoError(t, rec.Replay(c))
	require.NoError(t, c.End())
	assert.Contains(t, buf.String(), "fill:#334155")
}
