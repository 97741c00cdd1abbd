// Package model holds the wheel structure records consumed by the layout
// and rendering packages: rings, activity groups, labels and items.
package model

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the calendar date format used by item records.
const DateLayout = "2006-01-02"

// RingType places a ring inside or outside the month band.
type RingType string

const (
	RingInner RingType = "inner"
	RingOuter RingType = "outer"
)

// Orientation is the preferred text direction of a ring's items.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Ring is one concentric band of the wheel.
type Ring struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Type        RingType    `yaml:"type" json:"type"`
	Visible     bool        `yaml:"visible" json:"visible"`
	Orientation Orientation `yaml:"orientation" json:"orientation"`
	Color       string      `yaml:"color,omitempty" json:"color,omitempty"`
	Order       int         `yaml:"ring_order" json:"ring_order"`
}

// UnmarshalYAML applies the record defaults: visible, vertical.
func (r *Ring) UnmarshalYAML(value *yaml.Node) error {
	type plain Ring
	out := plain{Visible: true, Orientation: Vertical}
	if err := value.Decode(&out); err != nil {
		return err
	}
	*r = Ring(out)
	return nil
}

// ActivityGroup colors the items assigned to it.
type ActivityGroup struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Color   string `yaml:"color" json:"color"`
	Visible bool   `yaml:"visible" json:"visible"`
}

// UnmarshalYAML defaults Visible to true.
func (g *ActivityGroup) UnmarshalYAML(value *yaml.Node) error {
	type plain ActivityGroup
	out := plain{Visible: true}
	if err := value.Decode(&out); err != nil {
		return err
	}
	*g = ActivityGroup(out)
	return nil
}

// Label is an optional tag drawn as a badge on an item.
type Label struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Color   string `yaml:"color" json:"color"`
	Visible bool   `yaml:"visible" json:"visible"`
}

// UnmarshalYAML defaults Visible to true.
func (l *Label) UnmarshalYAML(value *yaml.Node) error {
	type plain Label
	out := plain{Visible: true}
	if err := value.Decode(&out); err != nil {
		return err
	}
	*l = Label(out)
	return nil
}

// Item is a dated activity placed on a ring.
type Item struct {
	ID            string `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	StartDate     string `yaml:"startDate" json:"startDate"`
	EndDate       string `yaml:"endDate" json:"endDate"`
	RingID        string `yaml:"ringId" json:"ringId"`
	ActivityID    string `yaml:"activityId" json:"activityId"`
	LabelID       string `yaml:"labelId,omitempty" json:"labelId,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	LinkedWheelID string `yaml:"linkedWheelId,omitempty" json:"linkedWheelId,omitempty"`
}

// Start parses StartDate.
func (it Item) Start() (time.Time, error) {
	return ParseDate(it.StartDate)
}

// End parses EndDate.
func (it Item) End() (time.Time, error) {
	return ParseDate(it.EndDate)
}

// Span returns both dates, failing if either is malformed.
func (it Item) Span() (start, end time.Time, err error) {
	if start, err = it.Start(); err != nil {
		return
	}
	end, err = it.End()
	return
}

// Overlaps reports whether the item touches any day of year.
func (it Item) Overlaps(year int) bool {
	start, end, err := it.Span()
	if err != nil {
		return false
	}
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return !end.Before(first) && !start.After(last)
}

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
