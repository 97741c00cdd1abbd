// Package font provides glyph outlines and text metrics for the wheel's
// drawing surfaces, backed by the Go font family.
package font

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"yearwheel/pkg/graphics"
)

// Face is one parsed outline font. It is safe for concurrent use.
type Face struct {
	name string

	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer
}

// Parse parses TrueType or OpenType data.
func Parse(name string, data []byte) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return &Face{name: name, font: f}, nil
}

// Name returns the name given to Parse.
func (f *Face) Name() string { return f.name }

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size*64 + 0.5)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// advance returns the width of text at size, including pair kerning.
func (f *Face) advance(text string, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	em := ppem(size)
	var (
		width float64
		prev  sfnt.GlyphIndex
	)
	for i, r := range []rune(text) {
		gi, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		// Fonts without a kern table report sfnt.ErrNotFound.
		if i > 0 {
			if kern, err := f.font.Kern(&f.buf, prev, gi, em, font.HintingNone); err == nil {
				width += fromFixed(kern)
			}
		}
		adv, err := f.font.GlyphAdvance(&f.buf, gi, em, font.HintingNone)
		if err == nil {
			width += fromFixed(adv)
		}
		prev = gi
	}
	return width
}

// outline appends the outline of text at size to p with the baseline
// origin at (x, y). Coordinates grow downwards.
func (f *Face) outline(p *graphics.Path, text string, size, x, y float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	em := ppem(size)
	pt := func(q fixed.Point26_6) (float64, float64) {
		return x + fromFixed(q.X), y + fromFixed(q.Y)
	}
	var prev sfnt.GlyphIndex
	for i, r := range []rune(text) {
		gi, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		if i > 0 {
			if kern, err := f.font.Kern(&f.buf, prev, gi, em, font.HintingNone); err == nil {
				x += fromFixed(kern)
			}
		}
		segments, err := f.font.LoadGlyph(&f.buf, gi, em, nil)
		if err == nil {
			open := false
			for _, seg := range segments {
				switch seg.Op {
				case sfnt.SegmentOpMoveTo:
					if open {
						p.Close()
					}
					p.MoveTo(pt(seg.Args[0]))
					open = true
				case sfnt.SegmentOpLineTo:
					p.LineTo(pt(seg.Args[0]))
				case sfnt.SegmentOpQuadTo:
					cx, cy := pt(seg.Args[0])
					ex, ey := pt(seg.Args[1])
					p.QuadTo(cx, cy, ex, ey)
				case sfnt.SegmentOpCubeTo:
					c1x, c1y := pt(seg.Args[0])
					c2x, c2y := pt(seg.Args[1])
					ex, ey := pt(seg.Args[2])
					p.CurveTo(c1x, c1y, c2x, c2y, ex, ey)
				}
			}
			if open {
				p.Close()
			}
		}
		if adv, err := f.font.GlyphAdvance(&f.buf, gi, em, font.HintingNone); err == nil {
			x += fromFixed(adv)
		}
		prev = gi
	}
}

func (f *Face) metrics(size float64) (font.Metrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.font.Metrics(&f.buf, ppem(size), font.HintingNone)
}

// Family groups the faces used for the CSS weights the wheel asks for.
type Family struct {
	Regular *Face
	Medium  *Face
	Bold    *Face
}

// Face picks the face for a numeric weight: 600 and up is bold, 500 is
// medium, anything lighter is regular. Missing faces fall back to Regular.
func (fam *Family) Face(weight int) *Face {
	switch {
	case weight >= 600 && fam.Bold != nil:
		return fam.Bold
	case weight >= 500 && fam.Medium != nil:
		return fam.Medium
	}
	return fam.Regular
}

var (
	goOnce   sync.Once
	goFamily *Family
	goErr    error
)

// GoFamily returns the bundled Go fonts. They are parsed once.
func GoFamily() (*Family, error) {
	goOnce.Do(func() {
		var fam Family
		if fam.Regular, goErr = Parse("Go Regular", goregular.TTF); goErr != nil {
			return
		}
		if fam.Medium, goErr = Parse("Go Medium", gomedium.TTF); goErr != nil {
			return
		}
		if fam.Bold, goErr = Parse("Go Bold", gobold.TTF); goErr != nil {
			return
		}
		goFamily = &fam
	})
	return goFamily, goErr
}
