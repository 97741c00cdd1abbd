package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitShortVerticalLabel(t *testing.T) {
	r, rec := newRecorded(1000)
	d := r.EvaluateRenderingSolution("Jul", Vertical, 200, 100, 250, false)

	assert.Equal(t, Decision{
		Orientation:   Vertical,
		FontSize:      18,
		LineCount:     1,
		Lines:         []string{"Jul"},
		Score:         1,
		AllowWrapping: false,
	}, d)
	assert.Empty(t, rec.Ops(), "fitting never draws")
}

func TestFitTruncatedVerticalLabel(t *testing.T) {
	r, _ := newRecorded(1000)
	d := r.EvaluateRenderingSolution("Verksamhetsplanering", Vertical, 200, 40, 250, false)

	assert.Equal(t, 14.0, d.FontSize)
	assert.True(t, d.NeedsTruncation)
	assert.Equal(t, 85.0, d.TruncationPercent)
	assert.InDelta(t, 0.54, d.Score, 1e-9)
}

func TestFitWrapsVerticalLabel(t *testing.T) {
	r, _ := newRecorded(1000)
	d := r.EvaluateRenderingSolution("Planering av kvartal ett", Vertical, 300, 120, 250, true)

	assert.InDelta(t, 16.2, d.FontSize, 1e-9)
	assert.Equal(t, 3, d.LineCount)
	assert.Equal(t, []string{"Planering", "av kvartal", "ett"}, d.Lines)
	assert.False(t, d.NeedsTruncation)
	assert.True(t, d.AllowWrapping)
	assert.Equal(t, 1.0, d.Score)
}

func TestFitHorizontalIgnoresWrapping(t *testing.T) {
	r, _ := newRecorded(1000)
	d := r.EvaluateRenderingSolution("Jul", Horizontal, 200, 100, 250, true)
	assert.Equal(t, Horizontal, d.Orientation)
	assert.Equal(t, 17.0, d.FontSize)
	assert.Equal(t, 1, d.LineCount)
	assert.False(t, d.AllowWrapping)
}

func TestFitFontStaysWithinBounds(t *testing.T) {
	texts := []string{"Q1", "Midsommar", "Planering av kvartal ett", "Verksamhetsplaneringsdokument"}
	for _, zoom := range []float64{50, 100, 300} {
		r, _ := newRecorded(1200, WithZoom(zoom))
		b := r.Bounds()
		for _, text := range texts {
			for _, o := range []Orientation{Vertical, Horizontal} {
				for _, arc := range []float64{5, 80, 600} {
					d := r.EvaluateRenderingSolution(text, o, arc, 60, 300, true)
					assert.GreaterOrEqual(t, d.FontSize, b.AbsoluteMin)
					assert.LessOrEqual(t, d.FontSize, b.MaxDisplay)
					assert.GreaterOrEqual(t, d.LineCount, 1)
					assert.GreaterOrEqual(t, d.Score, 0.0)
					assert.LessOrEqual(t, d.Score, 1.0)
				}
			}
		}
	}
}

func TestChooseOrientation(t *testing.T) {
	r, _ := newRecorded(1000)

	d := r.ChooseOrientation("Midsommar", 400, 30, 250, true, Vertical)
	assert.Equal(t, Horizontal, d.Orientation)
	assert.InDelta(t, 0.88, d.Score, 1e-9)

	d = r.ChooseOrientation("Jul", 200, 100, 250, false, Vertical)
	assert.Equal(t, Vertical, d.Orientation)
	d = r.ChooseOrientation("Jul", 200, 100, 250, false, Horizontal)
	assert.Equal(t, Horizontal, d.Orientation)

	d = r.ChooseOrientation("Planering av kvartal ett", 300, 120, 250, true, Vertical)
	require.Equal(t, Vertical, d.Orientation)
	assert.Equal(t, 1.0, d.Score)
}
