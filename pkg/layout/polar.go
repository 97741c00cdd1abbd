package layout

import (
	"math"
	"strconv"
	"strings"

	"yearwheel/pkg/graphics"
)

// PolarToCartesian returns the point at radius r and angle a (radians)
// around (cx, cy).
func PolarToCartesian(cx, cy, r, a float64) graphics.Point {
	return graphics.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
}

// CartesianToPolar is the inverse of PolarToCartesian. The angle is in
// (-pi, pi].
func CartesianToPolar(cx, cy, x, y float64) (radius, a float64) {
	dx, dy := x-cx, y-cy
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CreateArcPath returns SVG path data for the annular sector between
// innerRadius and outerRadius from startAngle to endAngle (radians).
func CreateArcPath(cx, cy, innerRadius, outerRadius, startAngle, endAngle float64) string {
	largeArc := "0"
	if endAngle-startAngle > math.Pi {
		largeArc = "1"
	}
	is := PolarToCartesian(cx, cy, innerRadius, startAngle)
	ie := PolarToCartesian(cx, cy, innerRadius, endAngle)
	os := PolarToCartesian(cx, cy, outerRadius, startAngle)
	oe := PolarToCartesian(cx, cy, outerRadius, endAngle)

	var b strings.Builder
	b.WriteString("M " + num(os.X) + " " + num(os.Y))
	b.WriteString(" A " + num(outerRadius) + " " + num(outerRadius) + " 0 " + largeArc + " 1 " + num(oe.X) + " " + num(oe.Y))
	b.WriteString(" L " + num(ie.X) + " " + num(ie.Y))
	b.WriteString(" A " + num(innerRadius) + " " + num(innerRadius) + " 0 " + largeArc + " 0 " + num(is.X) + " " + num(is.Y))
	b.WriteString(" Z")
	return b.String()
}
