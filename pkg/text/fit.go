package text

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Orientation is the direction a label runs in its segment: Vertical runs
// radially across the ring, Horizontal follows the arc.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Request describes one label in one segment.
type Request struct {
	Text        string
	Orientation Orientation
	// ArcLength is the segment's length along its middle radius, in pixels.
	ArcLength float64
	// RadialHeight is the segment's radial width, in pixels.
	RadialHeight float64
	// MiddleRadius is the radius of the segment's centre line.
	MiddleRadius  float64
	AllowWrapping bool
}

// Decision is the outcome of fitting a label: the size and line count to
// draw it with and how much of it is expected to be lost.
type Decision struct {
	Orientation       Orientation
	FontSize          float64
	LineCount         int
	Lines             []string
	NeedsTruncation   bool
	TruncationPercent float64
	Score             float64
	AllowWrapping     bool
}

func lengthPenalty(n int) float64 {
	switch {
	case n > 15:
		return 0.9
	case n > 10:
		return 0.93
	case n > 6:
		return 0.96
	}
	return 1
}

// sizePenalty shrinks labels in large segments so they do not dominate
// the wheel. Wrapped text is penalized least, long single lines most.
func sizePenalty(areaRatio float64, multiLine, shortSingleWord bool) float64 {
	tiers := [3]float64{0.88, 0.92, 0.96}
	switch {
	case multiLine:
		tiers = [3]float64{0.96, 0.98, 0.99}
	case shortSingleWord:
		tiers = [3]float64{0.94, 0.96, 0.98}
	}
	switch {
	case areaRatio > 0.15:
		return tiers[0]
	case areaRatio > 0.1:
		return tiers[1]
	case areaRatio > 0.06:
		return tiers[2]
	}
	return 1
}

func fontQuality(size float64) float64 {
	switch {
	case size >= 16 && size <= 28:
		return 1
	case size >= 14:
		return 0.8
	}
	return 0.6
}

// Fit sizes req.Text for its segment without drawing anything. The
// decision it returns is what DrawPerpendicularText consumes, so layout
// and drawing agree on the font size and line breaks.
func (r *Renderer) Fit(req Request) Decision {
	b := r.Bounds()
	text := req.Text
	n := utf8.RuneCountInString(text)
	spaced := hasSpace(text)
	words := 1
	if spaced {
		words = len(strings.Fields(text))
	}

	areaRatio := 0.0
	if r.size > 0 {
		areaRatio = req.RadialHeight * req.ArcLength / (r.size * r.size)
	}
	multiLine := req.AllowWrapping && spaced
	penalty := lengthPenalty(n) * sizePenalty(areaRatio, multiLine, n <= 12 && words == 1)

	d := Decision{Orientation: req.Orientation, LineCount: 1}
	measure := func(size float64) func(string) float64 {
		f := r.font(DefaultWeight, size)
		return func(s string) float64 { return r.MeasureText(s, f) }
	}

	var maxWidth, maxHeight float64
	if req.Orientation == Horizontal {
		maxWidth = req.ArcLength * 0.85
		maxHeight = req.RadialHeight * 0.8
		d.FontSize = b.clamp(math.Min(math.Min(maxWidth*0.1, maxHeight*0.5), b.ReasonableMax) * penalty)
	} else {
		d.Orientation = Vertical
		maxWidth = req.RadialHeight * 0.8
		maxHeight = req.ArcLength * 0.85
	}

	switch {
	case d.Orientation == Vertical && multiLine:
		parts := SplitForWrapping(text)
		target := 2.0
		if len(parts) >= 4 {
			target = 3
		}
		lineHeight := maxHeight / (target + 0.5)
		d.FontSize = b.clamp(math.Min(math.Min(maxWidth*0.45, lineHeight*0.8), b.ReasonableMax) * penalty)

		m := measure(d.FontSize)
		d.Lines = Wrap(parts, maxWidth*0.85, m)
		if len(d.Lines) > 0 {
			d.LineCount = len(d.Lines)
		}
		total := float64(d.LineCount) * d.FontSize * LineHeight
		if total > maxHeight {
			d.NeedsTruncation = true
			d.TruncationPercent = (total - maxHeight) / total * 100
		}
		widest := 0.0
		for _, line := range d.Lines {
			widest = math.Max(widest, m(line))
		}
		if widest > maxWidth {
			d.TruncationPercent = math.Max(d.TruncationPercent, (widest-maxWidth)/widest*100)
		}

	default:
		if d.Orientation == Vertical {
			d.FontSize = b.clamp(math.Min(math.Min(maxWidth*0.45, maxHeight*0.25), b.ReasonableMax) * penalty)
		}
		width := measure(d.FontSize)(text)
		d.Lines = []string{text}
		if width > maxWidth {
			d.NeedsTruncation = true
			fit := math.Floor(maxWidth/width*float64(n)) - 1
			d.TruncationPercent = (float64(n) - fit) / float64(n) * 100
		}
	}

	truncQuality := 1.0
	if d.NeedsTruncation {
		truncQuality = math.Max(0, 1-d.TruncationPercent/100)
	}
	d.Score = math.Round((fontQuality(d.FontSize)*0.6+truncQuality*0.4)*100) / 100
	d.TruncationPercent = math.Round(d.TruncationPercent)
	d.AllowWrapping = req.AllowWrapping && d.LineCount > 1
	return d
}

// EvaluateRenderingSolution scores drawing text in a segment with the
// given orientation. Higher scores are better.
func (r *Renderer) EvaluateRenderingSolution(text string, o Orientation, arcLength, radialHeight, middleRadius float64, allowWrapping bool) Decision {
	return r.Fit(Request{
		Text:          text,
		Orientation:   o,
		ArcLength:     arcLength,
		RadialHeight:  radialHeight,
		MiddleRadius:  middleRadius,
		AllowWrapping: allowWrapping,
	})
}

// ChooseOrientation evaluates text in both orientations, wrapped vertical
// text included when allowed, and returns the best decision. Ties go to
// preferred.
func (r *Renderer) ChooseOrientation(text string, arcLength, radialHeight, middleRadius float64, allowWrapping bool, preferred Orientation) Decision {
	other := Horizontal
	if preferred == Horizontal {
		other = Vertical
	} else {
		preferred = Vertical
	}

	var candidates []Decision
	for _, o := range []Orientation{preferred, other} {
		candidates = append(candidates, r.EvaluateRenderingSolution(text, o, arcLength, radialHeight, middleRadius, false))
		if o == Vertical && allowWrapping && hasSpace(text) {
			candidates = append(candidates, r.EvaluateRenderingSolution(text, o, arcLength, radialHeight, middleRadius, true))
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}
