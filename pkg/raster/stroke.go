package raster

import (
	"math"

	"yearwheel/pkg/graphics"
	pathpkg "yearwheel/pkg/path"
)

// flattenTolerance is the maximum chord error, in pixels, when curves are
// split into line segments before stroking.
const flattenTolerance = 0.2

// minJoinTurn is the smallest direction change, in radians, that gets a
// round join. Flattened arcs turn less than this at almost every vertex.
const minJoinTurn = 0.05

type strokeSegment struct {
	start, end graphics.Point
}

func (s strokeSegment) direction() graphics.Point {
	d := s.end.Sub(s.start)
	l := d.Length()
	if l == 0 {
		return graphics.Point{}
	}
	return d.Scale(1 / l)
}

// strokeOutline converts the stroke of p to fillable shapes: a rectangle
// per flattened segment, round joins where the direction turns and caps
// on open ends. All shapes wind the same way, so their union is filled.
func strokeOutline(p *graphics.Path, width float64, lc graphics.LineCap) *graphics.Path {
	half := width / 2
	b := pathpkg.NewBuilder()

	lines, closed := p.Flatten(flattenTolerance)
	for i, pts := range lines {
		segs := segments(pts, closed[i])
		if len(segs) == 0 {
			continue
		}
		for j, seg := range segs {
			b.Quad(seg.start, seg.end, half)
			if j > 0 || closed[i] {
				prev := segs[(j+len(segs)-1)%len(segs)]
				if turn(prev, seg) > minJoinTurn {
					b.Circle(seg.start.X, seg.start.Y, half)
				}
			}
		}
		if !closed[i] {
			addCap(b, segs[0], half, lc, true)
			addCap(b, segs[len(segs)-1], half, lc, false)
		}
	}
	return b.Build()
}

// segments drops zero-length steps and closes the polyline when asked.
func segments(pts []graphics.Point, closed bool) []strokeSegment {
	var segs []strokeSegment
	for j := 1; j < len(pts); j++ {
		if pts[j] != pts[j-1] {
			segs = append(segs, strokeSegment{start: pts[j-1], end: pts[j]})
		}
	}
	if closed && len(segs) > 0 {
		first, last := segs[0].start, segs[len(segs)-1].end
		if first != last {
			segs = append(segs, strokeSegment{start: last, end: first})
		}
	}
	return segs
}

func turn(a, b strokeSegment) float64 {
	da, db := a.direction(), b.direction()
	cross := da.X*db.Y - da.Y*db.X
	dot := da.X*db.X + da.Y*db.Y
	return math.Abs(math.Atan2(cross, dot))
}

func addCap(b *pathpkg.Builder, seg strokeSegment, half float64, lc graphics.LineCap, isStart bool) {
	pt := seg.end
	if isStart {
		pt = seg.start
	}
	switch lc {
	case graphics.LineCapRound:
		b.Circle(pt.X, pt.Y, half)
	case graphics.LineCapSquare:
		d := seg.direction().Scale(half)
		if isStart {
			b.Quad(pt.Sub(d), pt, half)
		} else {
			b.Quad(pt, pt.Add(d), half)
		}
	case graphics.LineCapButt:
	}
}
