// Package path builds closed outlines for the rasterizer and hands
// graphics paths to golang.org/x/image/vector.
package path

import (
	"yearwheel/pkg/graphics"

	"golang.org/x/image/vector"
)

// ToVector feeds p to rasterizer. Close on an open subpath is implied by
// the rasterizer when a new subpath starts.
func ToVector(p *graphics.Path, rasterizer *vector.Rasterizer) {
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			if len(seg.Points) >= 1 {
				rasterizer.MoveTo(
					float32(seg.Points[0].X),
					float32(seg.Points[0].Y),
				)
			}
		case graphics.PathOpLineTo:
			if len(seg.Points) >= 1 {
				rasterizer.LineTo(
					float32(seg.Points[0].X),
					float32(seg.Points[0].Y),
				)
			}
		case graphics.PathOpCurveTo:
			if len(seg.Points) >= 3 {
				rasterizer.CubeTo(
					float32(seg.Points[0].X), float32(seg.Points[0].Y),
					float32(seg.Points[1].X), float32(seg.Points[1].Y),
					float32(seg.Points[2].X), float32(seg.Points[2].Y),
				)
			}
		case graphics.PathOpClose:
			rasterizer.ClosePath()
		}
	}
}

// Builder collects closed shapes that all wind the same way, so that
// overlapping shapes add up instead of cancelling when filled together.
type Builder struct {
	path *graphics.Path
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		path: graphics.NewPath(),
	}
}

// signedArea is positive for shapes running clockwise on a y-down screen.
func signedArea(pts []graphics.Point) float64 {
	a := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Polygon adds a closed polygon. Degenerate polygons are dropped.
func (b *Builder) Polygon(pts ...graphics.Point) *Builder {
	if len(pts) < 3 {
		return b
	}
	area := signedArea(pts)
	if area == 0 {
		return b
	}
	if area < 0 {
		rev := make([]graphics.Point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
	}
	b.path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		b.path.LineTo(p.X, p.Y)
	}
	b.path.Close()
	return b
}

// Quad adds the rectangle of half-width hw around the segment a-b.
func (b *Builder) Quad(a, c graphics.Point, hw float64) *Builder {
	d := c.Sub(a)
	l := d.Length()
	if l == 0 {
		return b
	}
	n := graphics.Point{X: -d.Y / l * hw, Y: d.X / l * hw}
	return b.Polygon(a.Add(n), c.Add(n), c.Sub(n), a.Sub(n))
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936

// Circle adds a full circle.
func (b *Builder) Circle(cx, cy, r float64) *Builder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse.
func (b *Builder) Ellipse(cx, cy, rx, ry float64) *Builder {
	if rx <= 0 || ry <= 0 {
		return b
	}
	p := b.path
	p.MoveTo(cx+rx, cy)
	p.CurveTo(cx+rx, cy+ry*kappa, cx+rx*kappa, cy+ry, cx, cy+ry)
	p.CurveTo(cx-rx*kappa, cy+ry, cx-rx, cy+ry*kappa, cx-rx, cy)
	p.CurveTo(cx-rx, cy-ry*kappa, cx-rx*kappa, cy-ry, cx, cy-ry)
	p.CurveTo(cx+rx*kappa, cy-ry, cx+rx, cy-ry*kappa, cx+rx, cy)
	p.Close()
	return b
}

// Build returns the collected path.
func (b *Builder) Build() *graphics.Path {
	return b.path
}

// Clear resets the builder for reuse.
func (b *Builder) Clear() *Builder {
	b.path.Clear()
	return b
}
