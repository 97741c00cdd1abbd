package graphics

import (
	"math"
)

// PathOp is a path segment kind.
type PathOp int

const (
	PathOpMoveTo PathOp = iota
	PathOpLineTo
	PathOpCurveTo // cubic bezier
	PathOpClose
)

// PathSegment is a single segment in a path.
type PathSegment struct {
	Op     PathOp
	Points []Point
}

// Path is a sequence of subpaths made of lines and cubic curves.
type Path struct {
	Segments   []PathSegment
	current    Point
	start      Point // start of the current subpath
	hasCurrent bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	clone := &Path{
		Segments:   make([]PathSegment, len(p.Segments)),
		current:    p.current,
		start:      p.start,
		hasCurrent: p.hasCurrent,
	}
	for i, seg := range p.Segments {
		clone.Segments[i] = PathSegment{Op: seg.Op, Points: append([]Point(nil), seg.Points...)}
	}
	return clone
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{Op: PathOpMoveTo, Points: []Point{pt}})
	p.current = pt
	p.start = pt
	p.hasCurrent = true
}

// LineTo adds a straight line. Without a current point it behaves as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{Op: PathOpLineTo, Points: []Point{pt}})
	p.current = pt
}

// CurveTo adds a cubic bezier from the current point.
func (p *Path) CurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(cp1x, cp1y)
	}
	p.Segments = append(p.Segments, PathSegment{
		Op:     PathOpCurveTo,
		Points: []Point{{cp1x, cp1y}, {cp2x, cp2y}, {x, y}},
	})
	p.current = Point{x, y}
}

// QuadTo adds a quadratic bezier, stored as the equivalent cubic.
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(cpx, cpy)
	}
	cur := p.current
	p.CurveTo(
		cur.X+2.0/3.0*(cpx-cur.X), cur.Y+2.0/3.0*(cpy-cur.Y),
		x+2.0/3.0*(cpx-x), y+2.0/3.0*(cpy-y),
		x, y,
	)
}

// Arc adds a circular arc with canvas semantics: a line joins the current
// point to the arc start, and the sweep runs clockwise on screen unless
// anticlockwise is set. Sweeps of a full turn or more draw a full circle.
func (p *Path) Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool) {
	if r < 0 {
		r = 0
	}
	sweep := arcSweep(startAngle, endAngle, anticlockwise)

	x := cx + r*math.Cos(startAngle)
	y := cy + r*math.Sin(startAngle)
	if p.hasCurrent {
		p.LineTo(x, y)
	} else {
		p.MoveTo(x, y)
	}
	if sweep == 0 || r == 0 {
		return
	}

	// Quarter turns keep the bezier error well under a pixel at wheel sizes.
	segments := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(segments)
	k := 4.0 / 3.0 * math.Tan(step/4)

	a1 := startAngle
	for i := 0; i < segments; i++ {
		a2 := a1 + step
		x2 := cx + r*math.Cos(a2)
		y2 := cy + r*math.Sin(a2)
		p.CurveTo(
			x-k*r*math.Sin(a1), y+k*r*math.Cos(a1),
			x2+k*r*math.Sin(a2), y2-k*r*math.Cos(a2),
			x2, y2,
		)
		x, y, a1 = x2, y2, a2
	}
}

func arcSweep(start, end float64, anticlockwise bool) float64 {
	const full = 2 * math.Pi
	if !anticlockwise {
		if end-start >= full {
			return full
		}
		s := math.Mod(end-start, full)
		if s < 0 {
			s += full
		}
		return s
	}
	if start-end >= full {
		return -full
	}
	s := math.Mod(start-end, full)
	if s < 0 {
		s += full
	}
	return -s
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	p.Segments = append(p.Segments, PathSegment{Op: PathOpClose})
	p.current = p.start
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.Close()
}

// Append adds the segments of q. When p already has a current point, a
// leading MoveTo of q becomes a connecting LineTo.
func (p *Path) Append(q *Path) {
	for i, seg := range q.Segments {
		switch seg.Op {
		case PathOpMoveTo:
			if i == 0 && p.hasCurrent {
				p.LineTo(seg.Points[0].X, seg.Points[0].Y)
			} else {
				p.MoveTo(seg.Points[0].X, seg.Points[0].Y)
			}
		case PathOpLineTo:
			p.LineTo(seg.Points[0].X, seg.Points[0].Y)
		case PathOpCurveTo:
			p.CurveTo(seg.Points[0].X, seg.Points[0].Y,
				seg.Points[1].X, seg.Points[1].Y,
				seg.Points[2].X, seg.Points[2].Y)
		case PathOpClose:
			p.Close()
		}
	}
}

// Clear removes all segments.
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.current = Point{}
	p.start = Point{}
	p.hasCurrent = false
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.hasCurrent
}

// Bounds returns the bounding box of all points, control points included.
func (p *Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if minX == math.MaxFloat64 {
		return Rect{}
	}
	return NewRect(minX, minY, maxX, maxY)
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, seg := range p.Segments {
		newSeg := PathSegment{Op: seg.Op, Points: make([]Point, len(seg.Points))}
		for i, pt := range seg.Points {
			newSeg.Points[i] = m.TransformPoint(pt)
		}
		result.Segments = append(result.Segments, newSeg)
	}
	result.current = m.TransformPoint(p.current)
	result.start = m.TransformPoint(p.start)
	result.hasCurrent = p.hasCurrent
	return result
}

// Flatten returns the path as polylines, one per subpath, with curves
// subdivided until each chord deviates less than tolerance. The second
// return value marks closed subpaths.
func (p *Path) Flatten(tolerance float64) ([][]Point, []bool) {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	var (
		lines  [][]Point
		closed []bool
		cur    []Point
	)
	flush := func(isClosed bool) {
		if len(cur) > 1 {
			lines = append(lines, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}

	for _, seg := range p.Segments {
		switch seg.Op {
		case PathOpMoveTo:
			flush(false)
			cur = []Point{seg.Points[0]}
		case PathOpLineTo:
			cur = append(cur, seg.Points[0])
		case PathOpCurveTo:
			if len(cur) == 0 {
				cur = []Point{seg.Points[0]}
			}
			cur = flattenCubic(cur, cur[len(cur)-1], seg.Points[0], seg.Points[1], seg.Points[2], tolerance)
		case PathOpClose:
			start := Point{}
			if len(cur) > 0 {
				start = cur[0]
			}
			flush(true)
			cur = []Point{start}
		}
	}
	flush(false)
	return lines, closed
}

func flattenCubic(out []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	// Control polygon length over chord length bounds the subdivision count.
	poly := p1.Sub(p0).Length() + p2.Sub(p1).Length() + p3.Sub(p2).Length()
	n := int(math.Ceil(math.Sqrt(poly / tolerance)))
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		out = append(out, Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return out
}
