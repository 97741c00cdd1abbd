package raster

import (
	"fmt"
	"image"

	"yearwheel/pkg/graphics"
)

// Renderer replays recorded drawing operators onto fresh canvases.
type Renderer struct {
	width  int
	height int
	opts   []Option
}

// NewRenderer creates a renderer producing width x height images.
func NewRenderer(width, height int, opts ...Option) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		opts:   opts,
	}
}

// Render replays rec onto a new canvas and returns the image.
func (r *Renderer) Render(rec *graphics.Recorder) (*image.RGBA, error) {
	c, err := r.Canvas(rec)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// Canvas replays rec onto a new canvas and returns it.
func (r *Renderer) Canvas(rec *graphics.Recorder) (*Canvas, error) {
	canvas := NewCanvas(r.width, r.height, r.opts...)
	if err := rec.Replay(canvas); err != nil {
		return canvas, fmt.Errorf("replay: %w", err)
	}
	return canvas, nil
}

// RenderAll renders every recording to its own image.
func (r *Renderer) RenderAll(recs []*graphics.Recorder) ([]*image.RGBA, error) {
	images := make([]*image.RGBA, len(recs))
	for i, rec := range recs {
		img, err := r.Render(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}
