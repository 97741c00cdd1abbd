// Package wheel lays out and draws one year of a wheel structure: ring
// backgrounds and names, item segments with their labels, the month and
// week bands and the year caption in the middle.
package wheel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"yearwheel/internal/log"
	"yearwheel/pkg/angle"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
	"yearwheel/pkg/model"
)

// MinItemAngle is the narrowest item segment, one week in degrees.
// Shorter items are widened from their start.
const MinItemAngle = 7.0 / 365 * 360

// Proportions of the wheel size.
const (
	ringNameBandRatio = 1.0 / 70
	monthFontRatio    = 1.0 / 40
	weekFontRatio     = 1.0 / 70
	yearFontRatio     = 1.0 / 30
	titleFontRatio    = 1.0 / 35
	smallFontRatio    = 1.0 / 80

	minFontDisplay = 8
	maxFontDisplay = 50
)

// MonthColors alternate around the month band.
var MonthColors = [2]string{"#334155", "#3B4252"}

// Colors of the week band, captions and ring names.
const (
	WeekColor          = "#94A3B8"
	TextColor          = "#374151"
	RingNameBackground = "#FFFFFF"
	RingNameText       = "#0F172A"
	DefaultItemColor   = "#64748B"
	ringTint           = 0.85
)

// Placement is an item positioned on the wheel. Overlapping items of one
// ring are stacked on tracks that split the ring radially.
type Placement struct {
	Item model.Item
	Ring layout.RingBoundary
	// StartAngle and EndAngle are in degrees, rotation included.
	StartAngle float64
	EndAngle   float64
	// InnerRadius and OuterRadius bound the item's track.
	InnerRadius float64
	OuterRadius float64
	Track       int
	Tracks      int
	Color       string
	Label       *model.Label
}

// Span returns the angular extent in degrees.
func (p Placement) Span() float64 { return p.EndAngle - p.StartAngle }

// MidAngle returns the centre angle in degrees.
func (p Placement) MidAngle() float64 { return (p.StartAngle + p.EndAngle) / 2 }

// Contains reports whether the polar point (radius, deg) is on the item.
func (p Placement) Contains(radius, deg float64) bool {
	if radius < p.InnerRadius || radius > p.OuterRadius {
		return false
	}
	return angle.NormalizeDegrees(deg-p.StartAngle) <= p.Span()
}

// Wheel is one year of a structure laid out for drawing.
type Wheel struct {
	structure *model.Structure
	year      int
	opts      Options
	log       *log.Logger

	center     graphics.Point
	maxRadius  float64
	bounds     layout.Boundaries
	placements []Placement
	skipped    int
}

// New lays out year of s. It fails when the size leaves no room for the
// rings.
func New(s *model.Structure, year int, opts ...Option) (*Wheel, error) {
	o := NewOptions(opts...)
	if !(o.Zoom > 0) {
		o.Zoom = 100
	}
	w := &Wheel{
		structure: s,
		year:      year,
		opts:      o,
		log:       o.Logger,
		center:    graphics.Point{X: o.Size / 2, Y: o.Size / 2},
	}
	if w.log == nil {
		w.log = log.Default()
	}
	if err := w.layout(); err != nil {
		return nil, err
	}
	return w, nil
}

// Year returns the drawn year.
func (w *Wheel) Year() int { return w.year }

// Options returns the effective options.
func (w *Wheel) Options() Options { return w.opts }

// Center returns the wheel centre in pixels.
func (w *Wheel) Center() graphics.Point { return w.center }

// Boundaries returns the ring layout.
func (w *Wheel) Boundaries() layout.Boundaries { return w.bounds }

// Placements returns the positioned items in drawing order.
func (w *Wheel) Placements() []Placement { return w.placements }

// Skipped returns how many renderable items had no visible ring.
func (w *Wheel) Skipped() int { return w.skipped }

// rings returns the visible rings in ring order.
func (w *Wheel) rings() []model.Ring {
	return w.structure.VisibleRings("")
}

func (w *Wheel) nameBand() float64 {
	if !w.opts.ShowRingNames {
		return 0
	}
	return w.opts.Size * ringNameBandRatio
}

// itemBand is the part of a ring left for items.
func (w *Wheel) itemBand(rb layout.RingBoundary) layout.Band {
	end := rb.EndRadius - w.nameBand()
	if end <= rb.StartRadius {
		end = rb.EndRadius
	}
	return layout.Band{StartRadius: rb.StartRadius, EndRadius: end}
}

func (w *Wheel) layout() error {
	size := w.opts.Size
	rings := w.rings()
	maxRadius, err := layout.CalculateMaxRadius(size, rings)
	if err != nil {
		return fmt.Errorf("wheel %d: %w", w.year, err)
	}
	bounds, err := layout.CalculateRingBoundaries(rings, layout.MinRadius(size), maxRadius, size, w.opts.layoutOptions())
	if err != nil {
		return fmt.Errorf("wheel %d: %w", w.year, err)
	}
	w.maxRadius = maxRadius
	w.bounds = bounds

	byRing := make(map[string][]Placement)
	for _, it := range w.structure.Renderable(w.year) {
		rb, ok := bounds.Find(it.RingID)
		if !ok {
			w.skipped++
			continue
		}
		start, end, ok := layout.ItemAngles(it, w.year, w.opts.RotationOffset)
		if !ok {
			w.skipped++
			continue
		}
		if end-start < MinItemAngle {
			end = start + MinItemAngle
		}
		p := Placement{
			Item:       it,
			Ring:       rb,
			StartAngle: start,
			EndAngle:   end,
			Color:      w.itemColor(it, rb.Ring),
		}
		if it.LabelID != "" {
			if l, ok := w.structure.Label(it.LabelID); ok {
				p.Label = &l
			}
		}
		byRing[it.RingID] = append(byRing[it.RingID], p)
	}

	w.placements = w.placements[:0]
	for _, rb := range bounds.All() {
		ps := byRing[rb.Ring.ID]
		if len(ps) == 0 {
			continue
		}
		assignTracks(ps, w.itemBand(rb))
		w.placements = append(w.placements, ps...)
	}
	return nil
}

func (w *Wheel) itemColor(it model.Item, ring model.Ring) string {
	if g, ok := w.structure.ActivityGroup(it.ActivityID); ok && g.Color != "" {
		return g.Color
	}
	if ring.Color != "" {
		return ring.Color
	}
	return DefaultItemColor
}

// assignTracks puts each item on the first track whose previous item has
// ended, then splits band evenly between the tracks.
func assignTracks(ps []Placement, band layout.Band) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].StartAngle < ps[j].StartAngle })
	var ends []float64
	for i := range ps {
		track := -1
		for t, end := range ends {
			if end <= ps[i].StartAngle {
				track = t
				break
			}
		}
		if track < 0 {
			track = len(ends)
			ends = append(ends, 0)
		}
		ends[track] = ps[i].EndAngle
		ps[i].Track = track
	}

	n := len(ends)
	width := band.Width() / float64(n)
	for i := range ps {
		ps[i].Tracks = n
		ps[i].InnerRadius = band.StartRadius + float64(ps[i].Track)*width
		ps[i].OuterRadius = ps[i].InnerRadius + width
	}
}

// ItemAt returns the topmost item under the pixel (x, y).
func (w *Wheel) ItemAt(x, y float64) (Placement, bool) {
	radius, a := layout.CartesianToPolar(w.center.X, w.center.Y, x, y)
	deg := angle.RadiansToDegrees(a)
	for i := len(w.placements) - 1; i >= 0; i-- {
		if w.placements[i].Contains(radius, deg) {
			return w.placements[i], true
		}
	}
	return Placement{}, false
}

// DateAt returns the day under the pixel (x, y). Points in the empty
// centre or beyond the outermost band have no date.
func (w *Wheel) DateAt(x, y float64) (time.Time, bool) {
	radius, a := layout.CartesianToPolar(w.center.X, w.center.Y, x, y)
	if radius < layout.MinRadius(w.opts.Size) || radius > w.outerRadius() {
		return time.Time{}, false
	}
	return layout.AngleToDate(angle.RadiansToDegrees(a), w.year, w.opts.RotationOffset), true
}

func (w *Wheel) outerRadius() float64 {
	if n := len(w.bounds.Outer); n > 0 {
		return w.bounds.Outer[n-1].EndRadius
	}
	return w.maxRadius
}

// fontSize scales a size ratio by zoom and clamps it to the readable
// range.
func (w *Wheel) fontSize(ratio float64) float64 {
	v := w.opts.Size * ratio * 100 / w.opts.Zoom
	return math.Min(math.Max(v, minFontDisplay), maxFontDisplay)
}
