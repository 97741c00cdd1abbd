package path

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/vector"

	"yearwheel/pkg/graphics"
)

func points(p *graphics.Path) []graphics.Point {
	var out []graphics.Point
	for _, seg := range p.Segments {
		if seg.Op == graphics.PathOpMoveTo || seg.Op == graphics.PathOpLineTo {
			out = append(out, seg.Points[0])
		}
	}
	return out
}

func TestPolygonWindsClockwise(t *testing.T) {
	ccw := []graphics.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	require.Negative(t, signedArea(ccw))

	p := NewBuilder().Polygon(ccw...).Build()
	assert.Positive(t, signedArea(points(p)))
	assert.Equal(t, graphics.PathOpClose, p.Segments[len(p.Segments)-1].Op)
}

func TestPolygonDropsDegenerate(t *testing.T) {
	b := NewBuilder()
	b.Polygon(graphics.Point{}, graphics.Point{X: 1})
	b.Polygon(graphics.Point{}, graphics.Point{X: 1}, graphics.Point{X: 2})
	b.Quad(graphics.Point{X: 1, Y: 1}, graphics.Point{X: 1, Y: 1}, 3)
	b.Circle(0, 0, 0)
	assert.True(t, b.Build().IsEmpty())
}

func TestQuad(t *testing.T) {
	p := NewBuilder().Quad(graphics.Point{X: 0, Y: 5}, graphics.Point{X: 10, Y: 5}, 2).Build()
	b := p.Bounds()
	assert.InDelta(t, 0, b.X, 1e-12)
	assert.InDelta(t, 3, b.Y, 1e-12)
	assert.InDelta(t, 10, b.Width, 1e-12)
	assert.InDelta(t, 4, b.Height, 1e-12)
}

func TestCircleBounds(t *testing.T) {
	b := NewBuilder().Circle(50, 40, 10).Build().Bounds()
	assert.InDelta(t, 40, b.X, 1e-9)
	assert.InDelta(t, 30, b.Y, 1e-9)
	assert.InDelta(t, 20, b.Width, 1e-9)
	assert.InDelta(t, 20, b.Height, 1e-9)
}

func TestToVectorCoversShape(t *testing.T) {
	p := graphics.NewPath()
	p.Rect(2, 2, 6, 6)

	r := vector.NewRasterizer(10, 10)
	ToVector(p, r)
	mask := image.NewAlpha(image.Rect(0, 0, 10, 10))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	assert.Equal(t, uint8(255), mask.AlphaAt(5, 5).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(0, 0).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(9, 9).A)
}

func TestOverlappingShapesDoNotCancel(t *testing.T) {
	b := NewBuilder()
	b.Polygon(graphics.Point{X: 0, Y: 0}, graphics.Point{X: 0, Y: 10}, graphics.Point{X: 10, Y: 10}, graphics.Point{X: 10, Y: 0})
	b.Circle(5, 5, 3)

	r := vector.NewRasterizer(10, 10)
	ToVector(b.Build(), r)
	mask := image.NewAlpha(image.Rect(0, 0, 10, 10))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	assert.Equal(t, uint8(255), mask.AlphaAt(5, 5).A)
}
