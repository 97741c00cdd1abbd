package api

import (
	"fmt"
	"image"
	"io"

	"yearwheel/pkg/graphics"
	"yearwheel/pkg/model"
	"yearwheel/pkg/raster"
	"yearwheel/pkg/svg"
	"yearwheel/pkg/wheel"
)

// Page is one year of a document.
type Page struct {
	doc  *Document
	year int
}

// Year returns the page's year.
func (p *Page) Year() int {
	return p.year
}

// Items returns the items drawn on the page.
func (p *Page) Items() []model.Item {
	return p.doc.structure.Renderable(p.year)
}

// Wheel lays out the page with the given options.
func (p *Page) Wheel(opts ...Option) (*wheel.Wheel, error) {
	o := NewRenderOptions(opts...)
	return p.wheel(&o)
}

func (p *Page) wheel(o *RenderOptions) (*wheel.Wheel, error) {
	wopts := append(o.wheelOptions(),
		wheel.Cache(p.doc.cache),
		wheel.Measurer(p.doc.fonts),
		wheel.Logger(p.doc.logger.With("year", p.year)),
	)
	return wheel.New(p.doc.structure, p.year, wopts...)
}

// Render draws the page into a new image.
func (p *Page) Render(opts ...Option) (*image.RGBA, error) {
	o := NewRenderOptions(opts...)
	c, err := p.canvas(&o)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

func (p *Page) canvas(o *RenderOptions) (*raster.Canvas, error) {
	rec, err := p.record(o)
	if err != nil {
		return nil, err
	}
	return p.doc.renderer(o).Canvas(rec)
}

// record draws the page once onto a recorder so the operators can be
// replayed onto any surface.
func (p *Page) record(o *RenderOptions) (*graphics.Recorder, error) {
	w, err := p.wheel(o)
	if err != nil {
		return nil, err
	}
	rec := graphics.NewRecorder(p.doc.fonts)
	if err := w.Draw(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RenderTo writes the page to out as PNG or SVG, per the Format option.
func (p *Page) RenderTo(out io.Writer, opts ...Option) error {
	o := NewRenderOptions(opts...)
	switch o.Format {
	case PNG, "":
		c, err := p.canvas(&o)
		if err != nil {
			return err
		}
		return c.EncodePNG(out)

	case SVG:
		w, err := p.wheel(&o)
		if err != nil {
			return err
		}
		_, bg := o.background()
		c := svg.New(out, o.Size, o.Size,
			svg.WithBackground(bg),
			svg.WithMeasurer(p.doc.fonts),
			svg.WithTitle(p.title()))
		if err := w.Draw(c); err != nil {
			_ = c.End()
			return err
		}
		return c.End()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
}

func (p *Page) title() string {
	if t := p.doc.Title(); t != "" {
		return fmt.Sprintf("%s %d", t, p.year)
	}
	return fmt.Sprint(p.year)
}

// Ops records the drawing operators of the page.
func (p *Page) Ops(opts ...Option) ([]graphics.Operator, error) {
	o := NewRenderOptions(opts...)
	rec, err := p.record(&o)
	if err != nil {
		return nil, err
	}
	return rec.Ops(), nil
}
