package wheel

import (
	"fmt"
	"math"
	"strconv"

	"yearwheel/pkg/angle"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
	"yearwheel/pkg/model"
	"yearwheel/pkg/render"
	"yearwheel/pkg/text"
)

// Draw paints the whole wheel on ctx and returns the first error the
// surface reported.
func (w *Wheel) Draw(ctx graphics.Context) error {
	topts := []text.Option{text.WithZoom(w.opts.Zoom), text.WithCache(w.opts.Cache)}
	if w.opts.Measurer != nil {
		topts = append(topts, text.WithMeasurer(w.opts.Measurer))
	}
	e := render.New(ctx, w.opts.Size, w.center, topts...)

	e.Clear()
	w.drawRings(e)
	for _, p := range w.placements {
		w.drawItem(e, p)
	}
	if w.bounds.MonthRing != nil {
		w.drawMonths(e, *w.bounds.MonthRing)
	}
	if w.bounds.WeekRing != nil {
		w.drawWeeks(e, *w.bounds.WeekRing)
	}
	w.drawCaption(e)

	w.log.Debug("wheel drawn",
		"year", w.year,
		"rings", len(w.bounds.All()),
		"items", len(w.placements),
		"skipped", w.skipped,
		"cache", e.Cache().Len())

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("draw wheel %d: %w", w.year, err)
	}
	return nil
}

func rad(deg float64) float64 { return angle.DegreesToRadians(deg) }

// ringBackground tints the ring color toward white.
func ringBackground(c string) string {
	col, err := graphics.ParseHex(c)
	if err != nil {
		return "#F8FAFC"
	}
	return col.Mix(graphics.MustParseHex(graphics.LightText), ringTint).Hex()
}

func (w *Wheel) drawRings(e *render.Engine) {
	band := w.nameBand()
	for _, rb := range w.bounds.All() {
		e.DrawFullRing(rb.StartRadius, rb.EndRadius, ringBackground(rb.Ring.Color))
		if band == 0 || rb.Band().Width() <= band {
			continue
		}
		nameStart := rb.EndRadius - band
		e.DrawFullRing(nameStart, rb.EndRadius, RingNameBackground)

		size := math.Min(w.fontSize(smallFontRatio), band*0.75)
		style := text.CurveStyle{
			Style: text.Style{FontSize: size, Weight: "600", Color: RingNameText},
			Mode:  text.CurveAdaptive,
		}
		for q := 0; q < layout.QuartersPerYear; q++ {
			start := w.opts.RotationOffset + float64(q)*90
			e.Text().DrawCurvedText(rb.Ring.Name, nameStart+band/2, rad(start), rad(start+90), style)
		}
	}
}

func (w *Wheel) drawItem(e *render.Engine, p Placement) {
	e.DrawArcSegment(p.InnerRadius, p.OuterRadius, p.StartAngle, p.EndAngle, p.Color, graphics.LightText, 1)

	tr := e.Text()
	start, end := rad(p.StartAngle), rad(p.EndAngle)
	radial := p.OuterRadius - p.InnerRadius
	middle := p.InnerRadius + radial/2
	arc := middle * (end - start)

	preferred := text.Vertical
	if p.Ring.Ring.Orientation == model.Horizontal {
		preferred = text.Horizontal
	}
	d := tr.ChooseOrientation(p.Item.Name, arc, radial, middle, true, preferred)
	if d.Orientation == text.Vertical {
		tr.DrawPerpendicularText(p.Item.Name, p.InnerRadius, radial, start, end, text.PerpendicularStyle{
			Background: p.Color,
			Decision:   &d,
		})
	} else {
		name := p.Item.Name
		f := graphics.NewFont(text.DefaultWeight, d.FontSize)
		if d.NeedsTruncation {
			name = tr.TruncateText(name, arc*0.85, f)
		}
		tr.DrawTextAlongArc(name, middle, start, end, d.FontSize, e.ContrastColor(p.Color))
	}

	if p.Label != nil && p.Label.Visible {
		badge := math.Max(w.opts.Size/120, 8)
		e.DrawLabelBadge(*p.Label, p.OuterRadius-badge, p.StartAngle+p.Span()*0.25)
	}
	if p.Item.LinkedWheelID != "" {
		icon := e.LinkIconSize()
		step := angle.RadiansToDegrees(icon / math.Max(middle, 1))
		e.DrawLinkedWheelIcon(p.InnerRadius+icon, p.EndAngle-step)
	}
}

func (w *Wheel) drawMonths(e *render.Engine, band layout.Band) {
	size := math.Min(w.fontSize(monthFontRatio), band.Width()*0.6)
	style := text.CurveStyle{
		Style: text.Style{FontSize: size, Weight: "600", Color: graphics.LightText},
		Mode:  text.CurveAdaptive,
	}
	for _, m := range layout.MonthSegments(w.year, w.opts.Locale) {
		start := w.opts.RotationOffset + float64(m.Month)*layout.DegreesPerMonth
		end := start + layout.DegreesPerMonth
		e.DrawArcSegment(band.StartRadius, band.EndRadius, start, end, MonthColors[m.Month%2], "", 0)
		e.Text().DrawCurvedText(m.Name, band.Center(), rad(start), rad(end), style)
	}
}

func (w *Wheel) drawWeeks(e *render.Engine, band layout.Band) {
	e.DrawFullRing(band.StartRadius, band.EndRadius, WeekColor)
	style := text.Style{
		FontSize: math.Min(w.fontSize(weekFontRatio), band.Width()*0.6),
		Weight:   "600",
		Color:    graphics.LightText,
	}
	for _, seg := range layout.WeekSegments(w.year) {
		// Thursday always falls inside the week's own year.
		thursday := layout.WeekStart(w.year, seg.Week).AddDate(0, 0, 3)
		dim := float64(layout.DaysInMonth(thursday.Year(), int(thursday.Month())-1))
		a := layout.DateToAngle(thursday, w.opts.RotationOffset) + layout.DegreesPerMonth/dim/2
		e.Text().DrawTextOnCircle(strconv.Itoa(seg.Week), band.Center(), rad(a), style)
	}
}

func (w *Wheel) drawCaption(e *render.Engine) {
	ctx := e.Context()
	yearSize := w.fontSize(yearFontRatio)

	ctx.Save()
	ctx.SetTextAlign(graphics.AlignCenter)
	ctx.SetTextBaseline(graphics.BaselineMiddle)
	ctx.SetFillStyle(TextColor)

	y := w.center.Y
	if title := w.structure.Title; title != "" {
		f := graphics.NewFont("600", w.fontSize(titleFontRatio))
		maxWidth := layout.MinRadius(w.opts.Size) * 1.6
		if e.MeasureText(title, f) > maxWidth {
			title = e.Text().TruncateText(title, maxWidth, f)
		}
		ctx.SetFont(f)
		ctx.FillText(title, w.center.X, y-f.Size*0.7)
		y += yearSize * 0.6
	}
	ctx.SetFont(graphics.NewFont("700", yearSize))
	ctx.FillText(strconv.Itoa(w.year), w.center.X, y)
	ctx.Restore()
}
