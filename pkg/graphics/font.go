package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFamily is the family list every wheel label is set in.
const DefaultFamily = "Arial, sans-serif"

// DefaultFont is the initial font of a fresh surface.
var DefaultFont = Font{Weight: "normal", Size: 10, Family: DefaultFamily}

// Font describes a font the way canvas font strings do, e.g.
// "500 16px Arial, sans-serif".
type Font struct {
	Weight string
	Size   float64
	Family string
}

// NewFont builds a font in the default family.
func NewFont(weight string, size float64) Font {
	return Font{Weight: weight, Size: size, Family: DefaultFamily}
}

// String renders the font as a canvas font string. It is also the
// measurement cache key prefix, so equal fonts must format identically.
func (f Font) String() string {
	weight := f.Weight
	if weight == "" {
		weight = "normal"
	}
	family := f.Family
	if family == "" {
		family = DefaultFamily
	}
	return fmt.Sprintf("%s %spx %s", weight, strconv.FormatFloat(f.Size, 'g', -1, 64), family)
}

// WithSize returns a copy of f at another size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// NumericWeight maps CSS weight keywords to their numeric value.
func (f Font) NumericWeight() int {
	switch strings.ToLower(f.Weight) {
	case "", "normal":
		return 400
	case "bold":
		return 700
	case "lighter":
		return 300
	case "bolder":
		return 800
	}
	n, err := strconv.Atoi(f.Weight)
	if err != nil {
		return 400
	}
	return n
}

// ParseFont parses "<weight> <size>px <family>". The weight is optional.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Font{}, fmt.Errorf("parse font %q: empty", s)
	}

	f := Font{Weight: "normal"}
	i := 0
	if !strings.HasSuffix(fields[0], "px") {
		f.Weight = fields[0]
		i = 1
	}
	if i >= len(fields) || !strings.HasSuffix(fields[i], "px") {
		return Font{}, fmt.Errorf("parse font %q: missing px size", s)
	}
	size, err := strconv.ParseFloat(strings.TrimSuffix(fields[i], "px"), 64)
	if err != nil || size <= 0 {
		return Font{}, fmt.Errorf("parse font %q: bad size", s)
	}
	f.Size = size
	f.Family = strings.Join(fields[i+1:], " ")
	if f.Family == "" {
		f.Family = DefaultFamily
	}
	return f, nil
}
