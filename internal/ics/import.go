package ics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"yearwheel/internal/log"
	"yearwheel/pkg/model"
)

// DefaultMaxOccurrences caps the expansion of one recurring event when
// Options leaves it unset.
const DefaultMaxOccurrences = 500

// Options controls how events become items.
type Options struct {
	// RingID and ActivityID are assigned to every imported item.
	RingID     string
	ActivityID string
	// Year limits the import to items touching that year. Zero imports
	// single events as they are and expands series over their first year.
	Year int
	// MaxOccurrences caps the expansion of one series.
	MaxOccurrences int
	// Location converts event times to calendar dates.
	Location *time.Location
	Logger   *log.Logger
}

// Result is the outcome of an import.
type Result struct {
	Items []model.Item
	// Truncated lists the UIDs of series that hit MaxOccurrences.
	Truncated []string
	// Skipped counts events dropped for an invalid RRULE.
	Skipped int
}

type occurrence struct {
	ev         Event
	start, end time.Time
}

// instance identifies one occurrence of a series.
type instance struct {
	uid string
	at  int64
}

func instanceOf(ev Event) instance {
	return instance{uid: ev.UID, at: ev.Recurrence.UnixNano()}
}

// Import maps events to items. Series are expanded, EXDATEs removed and
// RECURRENCE-ID overrides substituted for the instance they replace.
// Overrides that replace no expanded instance are imported on their own.
func Import(events []Event, opts Options) (Result, error) {
	var res Result
	if opts.RingID == "" || opts.ActivityID == "" {
		return res, errors.New("import: ring and activity ids are required")
	}
	if opts.Year < 0 || opts.Year > 9999 {
		return res, fmt.Errorf("import: year %d out of range", opts.Year)
	}
	if opts.MaxOccurrences <= 0 {
		opts.MaxOccurrences = DefaultMaxOccurrences
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	overrides := make(map[string][]Event)
	var bases []Event
	for _, ev := range events {
		if ev.IsOverride() {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
		} else {
			bases = append(bases, ev)
		}
	}

	var occs []occurrence
	replaced := make(map[instance]bool)
	for _, ev := range bases {
		if ev.RawRRule == "" {
			occs = append(occs, occurrence{ev: ev, start: ev.Start, end: ev.End})
			continue
		}
		expanded, capped, err := expand(ev, overrides[ev.UID], replaced, opts)
		if err != nil {
			opts.Logger.Error("invalid recurrence rule", err, "uid", ev.UID, "rrule", ev.RawRRule)
			res.Skipped++
			continue
		}
		if capped {
			res.Truncated = append(res.Truncated, ev.UID)
			opts.Logger.Warn("recurrence truncated", "uid", ev.UID, "cap", opts.MaxOccurrences)
		}
		occs = append(occs, expanded...)
	}
	for _, ev := range events {
		if ev.IsOverride() && !replaced[instanceOf(ev)] {
			occs = append(occs, occurrence{ev: ev, start: ev.Start, end: ev.End})
		}
	}

	seen := make(map[string]int)
	for _, o := range occs {
		it := toItem(o, opts)
		if opts.Year != 0 && !it.Overlaps(opts.Year) {
			continue
		}
		if n := seen[it.ID]; n > 0 {
			it.ID = fmt.Sprintf("%s-%d", it.ID, n)
		}
		seen[it.ID]++
		res.Items = append(res.Items, it)
	}
	sort.SliceStable(res.Items, func(i, j int) bool {
		if res.Items[i].StartDate != res.Items[j].StartDate {
			return res.Items[i].StartDate < res.Items[j].StartDate
		}
		if res.Items[i].Name != res.Items[j].Name {
			return res.Items[i].Name < res.Items[j].Name
		}
		return res.Items[i].ID < res.Items[j].ID
	})

	opts.Logger.Info("calendar imported",
		"events", len(events),
		"items", len(res.Items),
		"truncated", len(res.Truncated),
		"skipped", res.Skipped)
	return res, nil
}

func expand(ev Event, overrides []Event, replaced map[instance]bool, opts Options) ([]occurrence, bool, error) {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil, false, err
	}
	zone := ev.Start.Location()
	r.DTStart(ev.Start)

	set := &rrule.Set{}
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(zone))
	}

	from, to := expandRange(ev, opts)
	// Series running into the window from the year before still count.
	dur := ev.End.Sub(ev.Start)
	starts := set.Between(from.Add(-dur).In(zone), to.In(zone), true)

	capped := false
	if len(starts) > opts.MaxOccurrences {
		starts = starts[:opts.MaxOccurrences]
		capped = true
	}

	out := make([]occurrence, 0, len(starts))
	for _, s := range starts {
		o := occurrence{ev: ev, start: s, end: s.Add(dur)}
		for _, ov := range overrides {
			if ov.Recurrence.In(zone).Equal(s) {
				o = occurrence{ev: ov, start: ov.Start, end: ov.End}
				replaced[instanceOf(ov)] = true
				break
			}
		}
		out = append(out, o)
	}
	return out, capped, nil
}

func expandRange(ev Event, opts Options) (time.Time, time.Time) {
	year := opts.Year
	if year == 0 {
		year = ev.Start.In(opts.Location).Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, opts.Location)
	return from, from.AddDate(1, 0, 0).Add(-time.Nanosecond)
}

func toItem(o occurrence, opts Options) model.Item {
	start := o.start.In(opts.Location)
	end := o.end.In(opts.Location)
	switch {
	case o.ev.AllDay:
		// DTEND is exclusive for dates.
		end = end.AddDate(0, 0, -1)
	case end.After(start) && isMidnight(end):
		end = end.Add(-time.Nanosecond)
	}
	if end.Before(start) {
		end = start
	}

	id := o.ev.UID
	if o.ev.RawRRule != "" || o.ev.IsOverride() {
		id = fmt.Sprintf("%s-%s", id, start.Format("20060102"))
	}
	name := o.ev.Summary
	if name == "" {
		name = o.ev.UID
	}
	return model.Item{
		ID:          id,
		Name:        name,
		StartDate:   model.FormatDate(start),
		EndDate:     model.FormatDate(end),
		RingID:      opts.RingID,
		ActivityID:  opts.ActivityID,
		Description: o.ev.Description,
	}
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// ImportReader parses r and imports its events.
func ImportReader(r io.Reader, opts Options) (Result, error) {
	events, err := Parse(r, opts.Location, opts.Logger)
	if err != nil {
		return Result{}, err
	}
	return Import(events, opts)
}

// ImportFile parses and imports the calendar at path.
func ImportFile(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return ImportReader(f, opts)
}

// Merge adds items to s, replacing items with the same id. The result is
// validated so unknown ring or activity ids are reported.
func Merge(s *model.Structure, items []model.Item) error {
	if s == nil {
		return fmt.Errorf("%w: nil structure", model.ErrInvalidStructure)
	}
	index := make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		index[it.ID] = i
	}
	for _, it := range items {
		if i, ok := index[it.ID]; ok {
			s.Items[i] = it
			continue
		}
		index[it.ID] = len(s.Items)
		s.Items = append(s.Items, it)
	}
	return s.Validate()
}

// ParseLocation resolves an IANA zone name; empty and "UTC" give UTC.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}
