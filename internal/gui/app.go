// Package gui is the desktop year wheel viewer built on Fyne.
package gui

import (
	"errors"
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"yearwheel/internal/log"
	"yearwheel/pkg/api"
	"yearwheel/pkg/wheel"
)

const (
	minYear = 1
	maxYear = 9999

	minLabelZoom  = 50
	maxLabelZoom  = 400
	labelZoomStep = 25
)

// Settings are the initial render settings of the viewer.
type Settings struct {
	Size           int
	Zoom           float64
	Locale         string
	ShowWeekRing   bool
	ShowMonthRing  bool
	ShowRingNames  bool
	RotationOffset float64
	Logger         *log.Logger
}

// DefaultSettings matches the render defaults.
func DefaultSettings() Settings {
	return Settings{
		Size:           1200,
		Zoom:           100,
		Locale:         "sv",
		ShowWeekRing:   true,
		ShowMonthRing:  true,
		ShowRingNames:  true,
		RotationOffset: -105,
	}
}

// App is the viewer application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window

	settings Settings
	logger   *log.Logger
	document *api.Document
	year     int

	viewer  *WheelViewer
	toolbar *Toolbar
	status  *StatusBar
}

// NewApp creates the viewer.
func NewApp(s Settings) *App {
	if s.Size <= 0 {
		s.Size = DefaultSettings().Size
	}
	if s.Zoom <= 0 {
		s.Zoom = 100
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		fyneApp:  app.New(),
		settings: s,
		logger:   logger,
		year:     time.Now().Year(),
	}
	a.fyneApp.Settings().SetTheme(theme.LightTheme())
	a.mainWindow = a.fyneApp.NewWindow("Year Wheel")
	a.mainWindow.Resize(fyne.NewSize(1000, 860))
	return a
}

// Run starts the application.
func (a *App) Run() {
	a.buildUI()
	a.mainWindow.ShowAndRun()
}

// RunWithFile starts the application with a structure loaded.
func (a *App) RunWithFile(path string) {
	a.buildUI()
	go func() {
		if err := a.loadFile(path); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}()
	a.mainWindow.ShowAndRun()
}

func (a *App) buildUI() {
	a.viewer = NewWheelViewer()
	a.viewer.OnHover = func(h Hit) {
		if msg := describe(h); msg != "" {
			a.status.SetStatus(msg)
		}
	}
	a.viewer.OnSelect = a.showItem

	a.status = NewStatusBar()
	a.status.SetZoom(a.settings.Zoom)

	t := NewToolbar(a.settings)
	t.OnOpen = a.openFile
	t.OnExport = a.exportFile
	t.OnPrev = func() { a.goToYear(a.year - 1) }
	t.OnNext = func() { a.goToYear(a.year + 1) }
	t.OnFirst = a.firstYear
	t.OnLast = a.lastYear
	t.OnGoTo = a.goToYear
	t.OnZoomIn = func() { a.setLabelZoom(a.settings.Zoom + labelZoomStep) }
	t.OnZoomOut = func() { a.setLabelZoom(a.settings.Zoom - labelZoomStep) }
	t.OnFit = a.viewer.FitWheel
	t.OnLocale = func(l string) {
		a.settings.Locale = l
		a.rerender()
	}
	t.OnWeekRing = func(b bool) {
		a.settings.ShowWeekRing = b
		a.rerender()
	}
	t.OnMonthRing = func(b bool) {
		a.settings.ShowMonthRing = b
		a.rerender()
	}
	t.OnRingNames = func(b bool) {
		a.settings.ShowRingNames = b
		a.rerender()
	}
	t.Disable()
	a.toolbar = t

	content := container.NewBorder(
		container.NewPadded(t.Container()),
		a.status.Container(),
		nil,
		nil,
		a.viewer,
	)
	a.mainWindow.SetContent(content)
	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyLeft, fyne.KeyPageUp:
		a.goToYear(a.year - 1)
	case fyne.KeyRight, fyne.KeyPageDown:
		a.goToYear(a.year + 1)
	case fyne.KeyHome:
		a.firstYear()
	case fyne.KeyEnd:
		a.lastYear()
	case fyne.KeyPlus, fyne.KeyEqual:
		a.viewer.ZoomIn()
	case fyne.KeyMinus:
		a.viewer.ZoomOut()
	case fyne.Key0:
		a.viewer.FitWheel()
	}
}

func (a *App) openFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		if err := a.loadFile(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}, a.mainWindow)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml", ".json"}))
	d.Show()
}

func (a *App) loadFile(path string) error {
	doc, err := api.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	doc.SetLogger(a.logger)
	if a.document != nil {
		a.document.Close()
	}
	a.document = doc
	a.logger.Info("structure opened", "path", path, "years", len(doc.Years()))

	title := doc.Title()
	if title == "" {
		title = path
	}
	a.mainWindow.SetTitle("Year Wheel - " + title)

	a.year = initialYear(doc.Years(), time.Now().Year())
	if err := a.renderCurrent(); err != nil {
		return err
	}
	a.viewer.FitWheel()
	return nil
}

// initialYear is the current year when the document has items in it,
// else its first year.
func initialYear(years []int, now int) int {
	for _, y := range years {
		if y == now {
			return now
		}
	}
	if len(years) > 0 {
		return years[0]
	}
	return now
}

func (a *App) options() []api.Option {
	s := a.settings
	opts := []api.Option{
		api.Size(s.Size * int(s.Zoom) / 100),
		api.Zoom(s.Zoom),
		api.Locale(s.Locale),
		api.Rotation(s.RotationOffset),
	}
	if !s.ShowWeekRing {
		opts = append(opts, api.NoWeekRing())
	}
	if !s.ShowMonthRing {
		opts = append(opts, api.NoMonthRing())
	}
	if !s.ShowRingNames {
		opts = append(opts, api.NoRingNames())
	}
	return opts
}

func (a *App) renderCurrent() error {
	if a.document == nil {
		return nil
	}
	page, err := a.document.Page(a.year)
	if err != nil {
		return err
	}
	opts := a.options()
	w, err := page.Wheel(opts...)
	if err != nil {
		return fmt.Errorf("failed to lay out %d: %w", a.year, err)
	}
	img, err := page.Render(opts...)
	if err != nil {
		return fmt.Errorf("failed to render %d: %w", a.year, err)
	}
	a.show(img, w)
	return nil
}

func (a *App) show(img image.Image, w *wheel.Wheel) {
	a.viewer.SetWheel(img, w)
	a.toolbar.SetYear(a.year, a.document.Years())
	a.status.SetZoom(a.settings.Zoom)
	msg := fmt.Sprintf("%d items", len(w.Placements()))
	if n := w.Skipped(); n > 0 {
		msg += fmt.Sprintf(", %d skipped", n)
	}
	a.status.SetStatus(msg)
}

func (a *App) rerender() {
	if err := a.renderCurrent(); err != nil {
		dialog.ShowError(err, a.mainWindow)
	}
}

func (a *App) goToYear(year int) {
	if a.document == nil || year < minYear || year > maxYear || year == a.year {
		return
	}
	a.year = year
	a.rerender()
}

func (a *App) firstYear() {
	if a.document == nil {
		return
	}
	if years := a.document.Years(); len(years) > 0 {
		a.goToYear(years[0])
	}
}

func (a *App) lastYear() {
	if a.document == nil {
		return
	}
	if years := a.document.Years(); len(years) > 0 {
		a.goToYear(years[len(years)-1])
	}
}

// setLabelZoom re-renders with labels fitted for percent. The image size
// scales with it.
func (a *App) setLabelZoom(percent float64) {
	percent = clampLabelZoom(percent)
	if percent == a.settings.Zoom {
		return
	}
	a.settings.Zoom = percent
	a.rerender()
}

func clampLabelZoom(p float64) float64 {
	if p < minLabelZoom {
		return minLabelZoom
	}
	if p > maxLabelZoom {
		return maxLabelZoom
	}
	return p
}

func (a *App) showItem(p *wheel.Placement) {
	if p == nil {
		return
	}
	msg := describeItem(p)
	if d := p.Item.Description; d != "" {
		msg += "\n\n" + d
	}
	if id := p.Item.LinkedWheelID; id != "" {
		msg += "\n\nLinked wheel: " + id
	}
	dialog.ShowInformation(p.Item.Name, msg, a.mainWindow)
}

func (a *App) exportFile() {
	if a.document == nil {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if writer == nil {
			return
		}
		if err := a.export(writer); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		a.status.SetStatus("Saved " + writer.URI().Name())
	}, a.mainWindow)
	d.SetFileName(fmt.Sprintf("%d.png", a.year))
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".svg"}))
	d.Show()
}

func (a *App) export(w fyne.URIWriteCloser) error {
	page, err := a.document.Page(a.year)
	if err != nil {
		w.Close()
		return err
	}
	format := api.FormatForFile(w.URI().Name())
	opts := append(a.options(), api.Format(format))
	return errors.Join(page.RenderTo(w, opts...), w.Close())
}
