package gui

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"yearwheel/pkg/wheel"
)

const (
	minViewZoom = 0.1
	maxViewZoom = 5.0
)

// WheelViewer shows a rendered wheel with pan and zoom. Taps and hovers
// are mapped back to image pixels and resolved against the wheel layout.
type WheelViewer struct {
	widget.BaseWidget

	image *canvas.Image
	img   image.Image
	wheel *wheel.Wheel

	// View state
	zoom    float64
	offsetX float64
	offsetY float64

	// OnSelect receives the item under a tap, nil for empty space.
	OnSelect func(p *wheel.Placement)
	// OnHover receives the item or date under the pointer.
	OnHover func(h Hit)
}

// NewWheelViewer creates an empty viewer.
func NewWheelViewer() *WheelViewer {
	v := &WheelViewer{zoom: 1.0}
	v.ExtendBaseWidget(v)

	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScaleSmooth
	return v
}

// SetWheel shows img, the rendering of w. The view is kept so year
// changes do not jump.
func (v *WheelViewer) SetWheel(img image.Image, w *wheel.Wheel) {
	v.img = img
	v.wheel = w
	v.image.Image = img
	v.Refresh()
}

func (v *WheelViewer) resetView() {
	v.zoom = 1.0
	v.offsetX = 0
	v.offsetY = 0
}

// CreateRenderer creates the renderer for this widget.
func (v *WheelViewer) CreateRenderer() fyne.WidgetRenderer {
	return &wheelViewerRenderer{viewer: v}
}

// Dragged pans the wheel.
func (v *WheelViewer) Dragged(event *fyne.DragEvent) {
	v.offsetX += float64(event.Dragged.DX)
	v.offsetY += float64(event.Dragged.DY)
	v.Refresh()
}

// DragEnd is part of fyne.Draggable.
func (v *WheelViewer) DragEnd() {}

// Scrolled zooms toward the cursor.
func (v *WheelViewer) Scrolled(event *fyne.ScrollEvent) {
	newZoom := clampZoom(v.zoom * (1 + float64(event.Scrolled.DY)/100))
	if v.img != nil && newZoom != v.zoom {
		size := v.Size()
		factor := newZoom / v.zoom
		// Keep the pixel under the cursor in place.
		cx := float64(event.Position.X) - float64(size.Width)/2
		cy := float64(event.Position.Y) - float64(size.Height)/2
		v.offsetX = cx - (cx-v.offsetX)*factor
		v.offsetY = cy - (cy-v.offsetY)*factor
	}
	v.zoom = newZoom
	v.Refresh()
}

// Tapped selects the item under the pointer.
func (v *WheelViewer) Tapped(event *fyne.PointEvent) {
	if v.OnSelect == nil {
		return
	}
	h := v.hitAt(event.Position)
	v.OnSelect(h.Placement)
}

// MouseIn is part of desktop.Hoverable.
func (v *WheelViewer) MouseIn(*desktop.MouseEvent) {}

// MouseMoved reports what lies under the pointer.
func (v *WheelViewer) MouseMoved(event *desktop.MouseEvent) {
	if v.OnHover != nil {
		v.OnHover(v.hitAt(event.Position))
	}
}

// MouseOut clears the hover report.
func (v *WheelViewer) MouseOut() {
	if v.OnHover != nil {
		v.OnHover(Hit{})
	}
}

func (v *WheelViewer) hitAt(pos fyne.Position) Hit {
	if v.img == nil || v.wheel == nil {
		return Hit{}
	}
	size := v.Size()
	b := v.img.Bounds()
	x, y, ok := toImage(float64(pos.X), float64(pos.Y),
		float64(size.Width), float64(size.Height),
		float64(b.Dx()), float64(b.Dy()),
		v.zoom, v.offsetX, v.offsetY)
	if !ok {
		return Hit{}
	}
	return hitTest(v.wheel, x, y)
}

// ZoomIn enlarges the view.
func (v *WheelViewer) ZoomIn() {
	v.zoom = clampZoom(v.zoom * 1.2)
	v.Refresh()
}

// ZoomOut shrinks the view.
func (v *WheelViewer) ZoomOut() {
	v.zoom = clampZoom(v.zoom / 1.2)
	v.Refresh()
}

// Zoom returns the view scale, 1 = one image pixel per unit.
func (v *WheelViewer) Zoom() float64 {
	return v.zoom
}

// FitWheel scales the wheel to fit the widget.
func (v *WheelViewer) FitWheel() {
	if v.img == nil {
		return
	}
	v.resetView()
	size := v.Size()
	b := v.img.Bounds()
	v.zoom = clampZoom(math.Min(float64(size.Width)/float64(b.Dx()), float64(size.Height)/float64(b.Dy())))
	v.Refresh()
}

func clampZoom(z float64) float64 {
	return math.Max(minViewZoom, math.Min(maxViewZoom, z))
}

// toImage maps a widget position to image pixels for an image of imgW x
// imgH drawn centred at scale zoom and shifted by the pan offset.
func toImage(px, py, viewW, viewH, imgW, imgH, zoom, offX, offY float64) (x, y float64, ok bool) {
	if zoom <= 0 {
		return 0, 0, false
	}
	left := (viewW-imgW*zoom)/2 + offX
	top := (viewH-imgH*zoom)/2 + offY
	x = (px - left) / zoom
	y = (py - top) / zoom
	if x < 0 || y < 0 || x >= imgW || y >= imgH {
		return 0, 0, false
	}
	return x, y, true
}

type wheelViewerRenderer struct {
	viewer *WheelViewer
}

func (r *wheelViewerRenderer) Layout(size fyne.Size) {
	v := r.viewer
	if v.img == nil {
		return
	}
	imgW := float32(float64(v.img.Bounds().Dx()) * v.zoom)
	imgH := float32(float64(v.img.Bounds().Dy()) * v.zoom)

	x := (size.Width-imgW)/2 + float32(v.offsetX)
	y := (size.Height-imgH)/2 + float32(v.offsetY)

	v.image.Move(fyne.NewPos(x, y))
	v.image.Resize(fyne.NewSize(imgW, imgH))
}

func (r *wheelViewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *wheelViewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.image}
}

func (r *wheelViewerRenderer) Refresh() {
	r.Layout(r.viewer.Size())
	r.viewer.image.Refresh()
}

func (r *wheelViewerRenderer) Destroy() {}
