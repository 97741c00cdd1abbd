package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar provides year navigation, zoom and display toggles.
type Toolbar struct {
	container *fyne.Container

	// Callbacks
	OnOpen      func()
	OnExport    func()
	OnPrev      func()
	OnNext      func()
	OnFirst     func()
	OnLast      func()
	OnGoTo      func(year int)
	OnZoomIn    func()
	OnZoomOut   func()
	OnFit       func()
	OnLocale    func(locale string)
	OnWeekRing  func(show bool)
	OnMonthRing func(show bool)
	OnRingNames func(show bool)

	yearEntry *widget.Entry
	yearLabel *widget.Label
	prevBtn   *widget.Button
	nextBtn   *widget.Button
	exportBtn *widget.Button
	locale    *widget.Select
	weekRing  *widget.Check
	monthRing *widget.Check
	ringNames *widget.Check
}

// NewToolbar creates a toolbar showing s.
func NewToolbar(s Settings) *Toolbar {
	t := &Toolbar{}
	t.build(s)
	return t
}

func call(f func()) func() {
	return func() {
		if f != nil {
			f()
		}
	}
}

func (t *Toolbar) build(s Settings) {
	openBtn := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() { call(t.OnOpen)() })
	t.exportBtn = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() { call(t.OnExport)() })

	firstBtn := widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), func() { call(t.OnFirst)() })
	t.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { call(t.OnPrev)() })
	t.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { call(t.OnNext)() })
	lastBtn := widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() { call(t.OnLast)() })

	t.yearEntry = widget.NewEntry()
	t.yearEntry.SetPlaceHolder("Year")
	t.yearEntry.OnSubmitted = func(s string) {
		if year, err := strconv.Atoi(s); err == nil && t.OnGoTo != nil {
			t.OnGoTo(year)
		}
	}
	t.yearLabel = widget.NewLabel("")

	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { call(t.OnZoomOut)() })
	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { call(t.OnZoomIn)() })
	fitBtn := widget.NewButtonWithIcon("Fit", theme.ViewRestoreIcon(), func() { call(t.OnFit)() })

	t.locale = widget.NewSelect([]string{"sv", "en"}, nil)
	t.locale.SetSelected(s.Locale)
	t.locale.OnChanged = func(l string) {
		if t.OnLocale != nil {
			t.OnLocale(l)
		}
	}

	t.weekRing = t.toggle("Weeks", s.ShowWeekRing, func(b bool) {
		if t.OnWeekRing != nil {
			t.OnWeekRing(b)
		}
	})
	t.monthRing = t.toggle("Months", s.ShowMonthRing, func(b bool) {
		if t.OnMonthRing != nil {
			t.OnMonthRing(b)
		}
	})
	t.ringNames = t.toggle("Names", s.ShowRingNames, func(b bool) {
		if t.OnRingNames != nil {
			t.OnRingNames(b)
		}
	})

	t.container = container.NewHBox(
		openBtn,
		t.exportBtn,
		widget.NewSeparator(),
		firstBtn,
		t.prevBtn,
		container.NewGridWrap(fyne.NewSize(80, t.yearEntry.MinSize().Height), t.yearEntry),
		t.yearLabel,
		t.nextBtn,
		lastBtn,
		widget.NewSeparator(),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		widget.NewSeparator(),
		t.locale,
		t.weekRing,
		t.monthRing,
		t.ringNames,
	)
}

// toggle builds a check whose callback is attached after the initial
// state so it does not fire on construction.
func (t *Toolbar) toggle(label string, on bool, changed func(bool)) *widget.Check {
	c := widget.NewCheck(label, nil)
	c.SetChecked(on)
	c.OnChanged = changed
	return c
}

// Container returns the toolbar container.
func (t *Toolbar) Container() *fyne.Container {
	return t.container
}

// SetYear shows year and its position among the document's years.
func (t *Toolbar) SetYear(year int, years []int) {
	t.yearEntry.SetText(strconv.Itoa(year))
	t.yearLabel.SetText(yearPosition(year, years))
	t.prevBtn.Enable()
	t.nextBtn.Enable()
	t.exportBtn.Enable()
	if year <= minYear {
		t.prevBtn.Disable()
	}
	if year >= maxYear {
		t.nextBtn.Disable()
	}
}

// Disable disables the document controls.
func (t *Toolbar) Disable() {
	t.prevBtn.Disable()
	t.nextBtn.Disable()
	t.exportBtn.Disable()
	t.yearEntry.SetText("")
	t.yearLabel.SetText("")
}

// yearPosition formats "2 of 3" for a year with items, "no items" else.
func yearPosition(year int, years []int) string {
	for i, y := range years {
		if y == year {
			return strconv.Itoa(i+1) + " of " + strconv.Itoa(len(years))
		}
	}
	return "no items"
}

// StatusBar shows the hovered item or date and the zoom levels.
type StatusBar struct {
	container *fyne.Container
	label     *widget.Label
	zoomLabel *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:     widget.NewLabel("Ready"),
		zoomLabel: widget.NewLabel("100%"),
	}
	s.container = container.NewHBox(
		s.label,
		widget.NewSeparator(),
		s.zoomLabel,
	)
	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetZoom shows the label zoom percentage.
func (s *StatusBar) SetZoom(percent float64) {
	s.zoomLabel.SetText(strconv.FormatFloat(percent, 'f', 0, 64) + "%")
}
