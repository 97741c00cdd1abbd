package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"yearwheel/pkg/graphics"
)

var (
	// ErrInvalidStructure wraps every validation problem.
	ErrInvalidStructure = errors.New("invalid wheel structure")
	// ErrUnknownRing is returned when looking up a ring that does not exist.
	ErrUnknownRing = errors.New("unknown ring")
)

// Structure is the full record set of one wheel.
type Structure struct {
	Title          string          `yaml:"title,omitempty" json:"title,omitempty"`
	Year           int             `yaml:"year,omitempty" json:"year,omitempty"`
	Rings          []Ring          `yaml:"rings" json:"rings"`
	ActivityGroups []ActivityGroup `yaml:"activityGroups" json:"activityGroups"`
	Labels         []Label         `yaml:"labels" json:"labels"`
	Items          []Item          `yaml:"items" json:"items"`

	// Activities is the legacy name of ActivityGroups; Load merges it.
	Activities []ActivityGroup `yaml:"activities,omitempty" json:"activities,omitempty"`
}

// Load decodes a structure from YAML or JSON and validates it.
func Load(r io.Reader) (*Structure, error) {
	var s Structure
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode structure: %w", err)
	}
	if len(s.ActivityGroups) == 0 && len(s.Activities) > 0 {
		s.ActivityGroups = s.Activities
	}
	s.Activities = nil

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and validates a structure file.
func LoadFile(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open structure: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Encode writes the structure as YAML.
func (s *Structure) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode structure: %w", err)
	}
	return enc.Close()
}

// ValidationError is one problem found by Validate.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Path + ": " + e.Message
}

// Unwrap ties every validation problem to ErrInvalidStructure.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidStructure
}

// Validate checks every record and all cross references. All problems
// are returned together.
func (s *Structure) Validate() error {
	var errs []error
	add := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}
	checkColor := func(path, color string, required bool) {
		if color == "" {
			if required {
				add(path, "color is required")
			}
			return
		}
		if _, err := graphics.ParseHex(color); err != nil || color[0] != '#' {
			add(path, "color %q must be #RRGGBB", color)
		}
	}

	ringIDs := make(map[string]bool, len(s.Rings))
	for i, r := range s.Rings {
		path := fmt.Sprintf("rings.%d", i)
		if r.ID == "" {
			add(path+".id", "ring id cannot be empty")
		} else if ringIDs[r.ID] {
			add(path+".id", "duplicate ring id %q", r.ID)
		}
		ringIDs[r.ID] = true
		if r.Name == "" {
			add(path+".name", "ring name cannot be empty")
		}
		if r.Type != RingInner && r.Type != RingOuter {
			add(path+".type", "ring type must be either %q or %q", RingInner, RingOuter)
		}
		if r.Orientation != Vertical && r.Orientation != Horizontal {
			add(path+".orientation", "orientation must be either %q or %q", Vertical, Horizontal)
		}
		if r.Order < 0 {
			add(path+".ring_order", "ring order cannot be negative")
		}
		checkColor(path+".color", r.Color, false)
	}

	groupIDs := make(map[string]bool, len(s.ActivityGroups))
	for i, g := range s.ActivityGroups {
		path := fmt.Sprintf("activityGroups.%d", i)
		if g.ID == "" {
			add(path+".id", "activity group id cannot be empty")
		}
		groupIDs[g.ID] = true
		if g.Name == "" {
			add(path+".name", "activity group name cannot be empty")
		}
		checkColor(path+".color", g.Color, true)
	}

	labelIDs := make(map[string]bool, len(s.Labels))
	for i, l := range s.Labels {
		path := fmt.Sprintf("labels.%d", i)
		if l.ID == "" {
			add(path+".id", "label id cannot be empty")
		}
		labelIDs[l.ID] = true
		if l.Name == "" {
			add(path+".name", "label name cannot be empty")
		}
		checkColor(path+".color", l.Color, true)
	}

	for i, it := range s.Items {
		path := fmt.Sprintf("items.%d", i)
		if it.ID == "" {
			add(path+".id", "item id cannot be empty")
		}
		if it.Name == "" {
			add(path+".name", "item name cannot be empty")
		}
		start, serr := it.Start()
		if serr != nil {
			add(path+".startDate", "start date must be in YYYY-MM-DD format")
		}
		end, eerr := it.End()
		if eerr != nil {
			add(path+".endDate", "end date must be in YYYY-MM-DD format")
		}
		if serr == nil && eerr == nil && end.Before(start) {
			add(path+".endDate", "end date must be on or after start date")
		}
		if !ringIDs[it.RingID] {
			add(path+".ringId", "item %q references non-existent ring: %s", it.Name, it.RingID)
		}
		if !groupIDs[it.ActivityID] {
			add(path+".activityId", "item %q references non-existent activity: %s", it.Name, it.ActivityID)
		}
		if it.LabelID != "" && !labelIDs[it.LabelID] {
			add(path+".labelId", "item %q references non-existent label: %s", it.Name, it.LabelID)
		}
	}

	return errors.Join(errs...)
}

// Ring returns the ring with the given id.
func (s *Structure) Ring(id string) (Ring, error) {
	for _, r := range s.Rings {
		if r.ID == id {
			return r, nil
		}
	}
	return Ring{}, fmt.Errorf("%w: %s", ErrUnknownRing, id)
}

// ActivityGroup returns the group with the given id.
func (s *Structure) ActivityGroup(id string) (ActivityGroup, bool) {
	for _, g := range s.ActivityGroups {
		if g.ID == id {
			return g, true
		}
	}
	return ActivityGroup{}, false
}

// Label returns the label with the given id.
func (s *Structure) Label(id string) (Label, bool) {
	for _, l := range s.Labels {
		if l.ID == id {
			return l, true
		}
	}
	return Label{}, false
}

// VisibleRings returns the visible rings of type t ordered by ring_order,
// keeping declaration order for ties. An empty t matches both types.
func (s *Structure) VisibleRings(t RingType) []Ring {
	var out []Ring
	for _, r := range s.Rings {
		if r.Visible && (t == "" || r.Type == t) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Renderable returns the items of year whose ring and activity group are
// visible, and whose label, when set, is visible too. Items are ordered by
// start date.
func (s *Structure) Renderable(year int) []Item {
	rings := make(map[string]bool)
	for _, r := range s.Rings {
		if r.Visible {
			rings[r.ID] = true
		}
	}
	groups := make(map[string]bool)
	for _, g := range s.ActivityGroups {
		if g.Visible {
			groups[g.ID] = true
		}
	}
	labels := make(map[string]bool)
	for _, l := range s.Labels {
		if l.Visible {
			labels[l.ID] = true
		}
	}

	var out []Item
	for _, it := range s.Items {
		if !rings[it.RingID] || !groups[it.ActivityID] {
			continue
		}
		if it.LabelID != "" && !labels[it.LabelID] {
			continue
		}
		if !it.Overlaps(year) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out
}

// ItemsForRing returns the renderable items of year placed on ringID.
func (s *Structure) ItemsForRing(ringID string, year int) []Item {
	var out []Item
	for _, it := range s.Renderable(year) {
		if it.RingID == ringID {
			out = append(out, it)
		}
	}
	return out
}

// Years lists, ascending, every year touched by an item. A structure
// without items yields its Year, or the current year.
func (s *Structure) Years() []int {
	seen := make(map[int]bool)
	for _, it := range s.Items {
		start, end, err := it.Span()
		if err != nil || end.Before(start) {
			continue
		}
		for y := start.Year(); y <= end.Year(); y++ {
			seen[y] = true
		}
	}
	if len(seen) == 0 {
		y := s.Year
		if y == 0 {
			y = time.Now().Year()
		}
		return []int{y}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
