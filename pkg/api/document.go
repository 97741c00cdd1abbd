// Package api is the public entry point for drawing year wheels: load a
// structure, pick a year and render it as an image, PNG or SVG.
package api

import (
	"errors"
	"fmt"
	"image"
	"io"

	"yearwheel/internal/log"
	"yearwheel/pkg/cache"
	"yearwheel/pkg/font"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/model"
	"yearwheel/pkg/raster"
)

var (
	// ErrInvalidYear is returned for years outside 1..9999.
	ErrInvalidYear = errors.New("year out of range")
	// ErrUnknownFormat is returned for output formats other than PNG and SVG.
	ErrUnknownFormat = errors.New("unknown output format")
)

// Document is a loaded wheel structure. Every year it spans is a page.
type Document struct {
	structure *model.Structure
	cache     *cache.LRU[string, float64]
	fonts     *font.Renderer
	logger    *log.Logger
}

// Open reads and validates a YAML or JSON structure file.
func Open(path string) (*Document, error) {
	s, err := model.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(s)
}

// Load decodes and validates a structure from r.
func Load(r io.Reader) (*Document, error) {
	s, err := model.Load(r)
	if err != nil {
		return nil, err
	}
	return New(s)
}

// New wraps an already decoded structure.
func New(s *model.Structure) (*Document, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil structure", model.ErrInvalidStructure)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	fonts, err := font.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	return &Document{
		structure: s,
		cache:     cache.New[string, float64](cache.DefaultMaxSize),
		fonts:     fonts,
		logger:    log.Default(),
	}, nil
}

// SetLogger replaces the logger used while drawing.
func (d *Document) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Structure returns the underlying records.
func (d *Document) Structure() *model.Structure {
	return d.structure
}

// Title returns the wheel title.
func (d *Document) Title() string {
	return d.structure.Title
}

// Years lists the years the document's items span.
func (d *Document) Years() []int {
	return d.structure.Years()
}

// PageCount returns the number of years.
func (d *Document) PageCount() int {
	return len(d.Years())
}

// Page returns the page for year. Years without items are valid pages.
func (d *Document) Page(year int) (*Page, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return &Page{doc: d, year: year}, nil
}

// Pages returns one page per year in Years.
func (d *Document) Pages() []*Page {
	years := d.Years()
	pages := make([]*Page, len(years))
	for i, y := range years {
		pages[i] = &Page{doc: d, year: y}
	}
	return pages
}

// RenderAll renders every page to an image, in year order.
func (d *Document) RenderAll(opts ...Option) ([]*image.RGBA, error) {
	o := NewRenderOptions(opts...)
	pages := d.Pages()
	recs := make([]*graphics.Recorder, len(pages))
	for i, p := range pages {
		rec, err := p.record(&o)
		if err != nil {
			return nil, fmt.Errorf("failed to draw %d: %w", p.year, err)
		}
		recs[i] = rec
	}
	return d.renderer(&o).RenderAll(recs)
}

func (d *Document) renderer(o *RenderOptions) *raster.Renderer {
	bg, _ := o.background()
	return raster.NewRenderer(o.Size, o.Size, raster.WithBackground(bg), raster.WithFonts(d.fonts))
}

// ClearCache drops cached text measurements.
func (d *Document) ClearCache() {
	d.cache.Clear()
}

// Close releases resources associated with the document.
func (d *Document) Close() error {
	d.cache.Clear()
	return nil
}
