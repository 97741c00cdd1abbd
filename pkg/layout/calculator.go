// Package layout turns a wheel's rings and a target year into radial and
// angular coordinates: ring bands, date angles, ISO weeks and month
// segments. Everything here is a pure function of its inputs.
package layout

import (
	"errors"
	"fmt"
	"math"

	"yearwheel/pkg/model"
)

var (
	// ErrInvalidSize is returned for a non-positive canvas size.
	ErrInvalidSize = errors.New("layout: size must be positive")
	// ErrInvalidRadius is returned when the radii are not finite or leave
	// no room for rings.
	ErrInvalidRadius = errors.New("layout: radii leave no room for rings")
)

// Proportions of the canvas size.
const (
	gapRatio        = 1.0 / 150
	monthBandRatio  = 1.0 / 25
	weekBandRatio   = 1.0 / 35
	outerRingRatio  = 1.0 / 23
	minRadiusRatio  = 1.0 / 12
	edgeMarginRatio = 1.0 / 50
	outerPadRatio   = 1.0 / 60
	outerShrink     = 0.6
)

// DefaultViewBoxPadding is the padding used by CalculateCenter callers
// that have no preference.
const DefaultViewBoxPadding = 20

// Options toggles the calendar bands.
type Options struct {
	ShowWeekRing  bool
	ShowMonthRing bool
}

// DefaultOptions shows both bands.
func DefaultOptions() Options {
	return Options{ShowWeekRing: true, ShowMonthRing: true}
}

// Band is a radial interval.
type Band struct {
	StartRadius float64
	EndRadius   float64
}

// Width returns EndRadius - StartRadius.
func (b Band) Width() float64 { return b.EndRadius - b.StartRadius }

// Center returns the radial midpoint.
func (b Band) Center() float64 { return (b.StartRadius + b.EndRadius) / 2 }

// Contains reports whether r lies within the band.
func (b Band) Contains(r float64) bool { return r >= b.StartRadius && r <= b.EndRadius }

// RingBoundary places one visible ring.
type RingBoundary struct {
	Ring        model.Ring
	StartRadius float64
	EndRadius   float64
	Center      float64
	Index       int
}

// Band returns the boundary's radial interval.
func (b RingBoundary) Band() Band {
	return Band{StartRadius: b.StartRadius, EndRadius: b.EndRadius}
}

// Boundaries is the result of one ring layout pass. MonthRing and WeekRing
// are nil when the band is hidden.
type Boundaries struct {
	Inner       []RingBoundary
	Outer       []RingBoundary
	MonthRing   *Band
	WeekRing    *Band
	StandardGap float64
	// InnerEnd is the outer limit of the inner ring area.
	InnerEnd float64
}

// All returns inner then outer boundaries.
func (b Boundaries) All() []RingBoundary {
	out := make([]RingBoundary, 0, len(b.Inner)+len(b.Outer))
	out = append(out, b.Inner...)
	return append(out, b.Outer...)
}

// Find returns the boundary of the ring with id.
func (b Boundaries) Find(id string) (RingBoundary, bool) {
	for _, rb := range b.All() {
		if rb.Ring.ID == id {
			return rb, true
		}
	}
	return RingBoundary{}, false
}

// MinRadius is the radius of the empty centre circle.
func MinRadius(size float64) float64 {
	return size * minRadiusRatio
}

// StandardGap is the spacing between every pair of bands.
func StandardGap(size float64) float64 {
	return size * gapRatio
}

// OuterRingWidth is the fixed width of each outer ring.
func OuterRingWidth(size float64) float64 {
	return size * outerRingRatio
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 1)
}

func visible(rings []model.Ring, t model.RingType) []model.Ring {
	var out []model.Ring
	for _, r := range rings {
		if r.Visible && r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// CalculateMaxRadius returns the radius available to inner content. With
// no visible outer rings it spans nearly half the canvas; otherwise it
// shrinks by part of the outer rings' footprint.
func CalculateMaxRadius(size float64, rings []model.Ring) (float64, error) {
	if !validSize(size) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	outer := visible(rings, model.RingOuter)
	if len(outer) == 0 {
		return size/2 - size*edgeMarginRatio, nil
	}
	footprint := float64(len(outer)) * OuterRingWidth(size)
	return size/2 - size*outerPadRatio - footprint*outerShrink, nil
}

// CalculateRingBoundaries lays out the month and week bands just inside
// maxRadius, divides the space between minRadius and the week band among
// the visible inner rings, and stacks the visible outer rings beyond
// maxRadius. Ring order follows the input slice.
func CalculateRingBoundaries(rings []model.Ring, minRadius, maxRadius, size float64, opts Options) (Boundaries, error) {
	if !validSize(size) {
		return Boundaries{}, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	if !finite(minRadius) || !finite(maxRadius) {
		return Boundaries{}, fmt.Errorf("%w: min %v, max %v", ErrInvalidRadius, minRadius, maxRadius)
	}
	gap := StandardGap(size)

	var monthWidth, weekWidth float64
	if opts.ShowMonthRing {
		monthWidth = size * monthBandRatio
	}
	if opts.ShowWeekRing {
		weekWidth = size * weekBandRatio
	}

	monthStart := maxRadius - monthWidth - gap
	weekStart := monthStart - weekWidth - gap
	innerEnd := weekStart - gap

	if minRadius < 0 || minRadius >= innerEnd {
		return Boundaries{}, fmt.Errorf("%w: min %.2f, inner end %.2f", ErrInvalidRadius, minRadius, innerEnd)
	}

	b := Boundaries{StandardGap: gap, InnerEnd: innerEnd}
	if opts.ShowMonthRing {
		b.MonthRing = &Band{StartRadius: monthStart, EndRadius: maxRadius - gap}
	}
	if opts.ShowWeekRing {
		b.WeekRing = &Band{StartRadius: weekStart, EndRadius: monthStart - gap}
	}

	inner := visible(rings, model.RingInner)
	if n := len(inner); n > 0 {
		slot := (innerEnd - minRadius) / float64(n)
		if slot <= gap {
			return Boundaries{}, fmt.Errorf("%w: %d inner rings need more than %.2f", ErrInvalidRadius, n, innerEnd-minRadius)
		}
		for i, r := range inner {
			start := minRadius + float64(i)*slot
			end := minRadius + float64(i+1)*slot - gap
			b.Inner = append(b.Inner, RingBoundary{
				Ring:        r,
				StartRadius: start,
				EndRadius:   end,
				Center:      (start + end) / 2,
				Index:       i,
			})
		}
	}

	width := OuterRingWidth(size)
	for i, r := range visible(rings, model.RingOuter) {
		start := maxRadius + gap + float64(i)*(width+gap)
		end := start + width
		b.Outer = append(b.Outer, RingBoundary{
			Ring:        r,
			StartRadius: start,
			EndRadius:   end,
			Center:      (start + end) / 2,
			Index:       i,
		})
	}
	return b, nil
}

// Center is the drawing centre of a view box sized to fit outerRadius.
type Center struct {
	CX, CY      float64
	ViewBoxSize float64
}

// CalculateCenter sizes a square view box around outerRadius plus padding.
func CalculateCenter(outerRadius, padding float64) Center {
	side := (outerRadius + padding) * 2
	return Center{CX: side / 2, CY: side / 2, ViewBoxSize: side}
}
