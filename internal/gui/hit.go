package gui

import (
	"fmt"
	"time"

	"yearwheel/pkg/model"
	"yearwheel/pkg/wheel"
)

// Hit is what lies under a point of the wheel image.
type Hit struct {
	Placement *wheel.Placement
	Date      time.Time
}

// HasDate reports whether the point is on the calendar part of the wheel.
func (h Hit) HasDate() bool {
	return !h.Date.IsZero()
}

func hitTest(w *wheel.Wheel, x, y float64) Hit {
	var h Hit
	if p, ok := w.ItemAt(x, y); ok {
		h.Placement = &p
	}
	if d, ok := w.DateAt(x, y); ok {
		h.Date = d
	}
	return h
}

// describe formats a hit for the status bar.
func describe(h Hit) string {
	switch {
	case h.Placement != nil:
		return describeItem(h.Placement)
	case h.HasDate():
		return model.FormatDate(h.Date)
	}
	return ""
}

func describeItem(p *wheel.Placement) string {
	it := p.Item
	s := fmt.Sprintf("%s  %s → %s  (%s)", it.Name, it.StartDate, it.EndDate, p.Ring.Ring.Name)
	if p.Label != nil {
		s += "  [" + p.Label.Name + "]"
	}
	return s
}
