// Package ics imports iCalendar events as wheel items. Recurring events
// are expanded over the target year before they are mapped.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"yearwheel/internal/log"
)

// Event is a VEVENT reduced to the fields an item needs.
type Event struct {
	UID         string
	Summary     string
	Description string
	Categories  []string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule string
	ExDates  []time.Time

	// Recurrence is the RECURRENCE-ID of an overriding instance.
	Recurrence *time.Time
}

// IsOverride reports whether the event replaces one instance of a series.
func (e Event) IsOverride() bool {
	return e.Recurrence != nil
}

// Parse reads a calendar from r. Floating times and dates are read in
// loc (UTC when nil). Events that cannot be read are logged and skipped;
// a calendar that cannot be parsed at all is an error.
func Parse(r io.Reader, loc *time.Location, logger *log.Logger) ([]Event, error) {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = log.Default()
	}
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, err := parseEvent(ve, loc)
		if err != nil {
			logger.Warn("skipping event", "error", err.Error())
			continue
		}
		events = append(events, ev)
	}
	logger.Debug("calendar parsed", "events", len(events), "location", loc.String())
	return events, nil
}

func parseEvent(ve *ical.VEvent, loc *time.Location) (Event, error) {
	var ev Event

	p := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if p == nil || p.Value == "" {
		return ev, errors.New("missing UID")
	}
	ev.UID = p.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = strings.TrimSpace(p.Value)
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, c := range strings.Split(p.Value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				ev.Categories = append(ev.Categories, c)
			}
		}
	}

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return ev, fmt.Errorf("event %s: missing DTSTART", ev.UID)
	}
	ev.AllDay = isDate(start)

	var err error
	if ev.AllDay {
		if ev.Start, err = parseTime(start.Value, loc); err != nil {
			return ev, fmt.Errorf("event %s: DTSTART: %w", ev.UID, err)
		}
		ev.End = ev.Start.AddDate(0, 0, 1)
		if end := ve.GetProperty(ical.ComponentPropertyDtEnd); end != nil {
			if t, err := parseTime(end.Value, loc); err == nil && t.After(ev.Start) {
				ev.End = t
			}
		}
	} else {
		if ev.Start, err = ve.GetStartAt(); err != nil {
			return ev, fmt.Errorf("event %s: DTSTART: %w", ev.UID, err)
		}
		if ev.End, err = ve.GetEndAt(); err != nil || ev.End.Before(ev.Start) {
			ev.End = ev.Start
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RawRRule = p.Value
	}
	// EXDATE and RECURRENCE-ID without a zone of their own share the
	// series start's zone.
	zone := propLocation(start, loc)
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		exLoc := propLocation(p, zone)
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseTime(part, exLoc); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}
	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		if t, err := parseTime(p.Value, propLocation(p, zone)); err == nil {
			ev.Recurrence = &t
		}
	}
	return ev, nil
}

// propLocation resolves the TZID parameter of p. Properties without one,
// or naming a zone that cannot be loaded, use fallback.
func propLocation(p *ical.IANAProperty, fallback *time.Location) *time.Location {
	tz, ok := p.ICalParameters["TZID"]
	if !ok || len(tz) == 0 {
		return fallback
	}
	loc, err := time.LoadLocation(strings.Trim(tz[0], `"`))
	if err != nil {
		return fallback
	}
	return loc
}

func isDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseTime reads the basic DATE and DATE-TIME forms.
func parseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}
