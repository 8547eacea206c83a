package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	paneBackground = color.NRGBA{0x10, 0x10, 0x12, 0xFF}
	armedBorder    = color.NRGBA{0xE0, 0x90, 0x20, 0xFF}
)

// PaneView is the visual cell for one wall pane: a dark canvas with an
// optional overlay showing the clip name, a clock line, and a seek scrubber.
// A colored border marks the controlled pane; an amber border marks a pane
// armed for transfer.
type PaneView struct {
	widget.BaseWidget

	Seek *SeekSlider

	OnTapped       func()
	OnDoubleTapped func()

	title       string
	clock       string
	controlled  bool
	armed       bool
	showOverlay bool
}

// NewPaneView creates a pane cell with a hidden overlay.
func NewPaneView() *PaneView {
	v := &PaneView{Seek: NewSeekSlider(0)}
	v.ExtendBaseWidget(v)
	return v
}

// SetTitle updates the clip name shown in the overlay.
func (v *PaneView) SetTitle(title string) {
	v.title = title
	v.Refresh()
}

// SetClock updates the overlay clock line.
func (v *PaneView) SetClock(clock string) {
	v.clock = clock
	v.Refresh()
}

// SetControlled marks or unmarks the pane as the control holder.
func (v *PaneView) SetControlled(on bool) {
	v.controlled = on
	v.Refresh()
}

// SetArmed marks or unmarks the pane as pending a transfer.
func (v *PaneView) SetArmed(on bool) {
	v.armed = on
	v.Refresh()
}

// SetOverlayShown shows or hides the title, clock, and scrubber.
func (v *PaneView) SetOverlayShown(on bool) {
	v.showOverlay = on
	v.Refresh()
}

// OverlayShown reports whether the overlay is visible.
func (v *PaneView) OverlayShown() bool { return v.showOverlay }

// Tapped forwards primary clicks, typically to take control of the pane.
func (v *PaneView) Tapped(*fyne.PointEvent) {
	if v.OnTapped != nil {
		v.OnTapped()
	}
}

// DoubleTapped forwards double clicks, typically to toggle the overlay.
func (v *PaneView) DoubleTapped(*fyne.PointEvent) {
	if v.OnDoubleTapped != nil {
		v.OnDoubleTapped()
	}
}

func (v *PaneView) MinSize() fyne.Size {
	return fyne.NewSize(80, 60)
}

func (v *PaneView) CreateRenderer() fyne.WidgetRenderer {
	r := &paneViewRenderer{
		v:          v,
		background: canvas.NewRectangle(paneBackground),
		border:     canvas.NewRectangle(color.Transparent),
		title:      canvas.NewText("", theme.ForegroundColor()),
		clock:      canvas.NewText("", theme.ForegroundColor()),
	}
	r.border.StrokeWidth = 2
	r.title.TextStyle.Bold = true
	r.clock.TextSize = theme.TextSize() - 2
	r.objs = []fyne.CanvasObject{r.background, r.border, r.title, r.clock, v.Seek}
	return r
}

type paneViewRenderer struct {
	v          *PaneView
	background *canvas.Rectangle
	border     *canvas.Rectangle
	title      *canvas.Text
	clock      *canvas.Text
	objs       []fyne.CanvasObject
}

func (r *paneViewRenderer) Layout(sz fyne.Size) {
	pad := theme.Padding()
	r.background.Move(fyne.NewPos(0, 0))
	r.background.Resize(sz)
	r.border.Move(fyne.NewPos(0, 0))
	r.border.Resize(sz)

	r.title.Move(fyne.NewPos(pad*2, pad*2))

	seekH := r.v.Seek.MinSize().Height
	r.v.Seek.Move(fyne.NewPos(pad*2, sz.Height-seekH-pad))
	r.v.Seek.Resize(fyne.NewSize(sz.Width-pad*4, seekH))

	clockH := r.clock.MinSize().Height
	r.clock.Move(fyne.NewPos(pad*2, sz.Height-seekH-pad*2-clockH))
}

func (r *paneViewRenderer) MinSize() fyne.Size { return r.v.MinSize() }

func (r *paneViewRenderer) Refresh() {
	switch {
	case r.v.armed:
		r.border.StrokeColor = armedBorder
	case r.v.controlled:
		r.border.StrokeColor = theme.PrimaryColor()
	default:
		r.border.StrokeColor = color.Transparent
	}
	r.title.Text = r.v.title
	r.clock.Text = r.v.clock
	if r.v.showOverlay {
		r.title.Show()
		r.clock.Show()
		r.v.Seek.Show()
	} else {
		r.title.Hide()
		r.clock.Hide()
		r.v.Seek.Hide()
	}
	r.Layout(r.v.Size())
	canvas.Refresh(r.background)
	canvas.Refresh(r.border)
	canvas.Refresh(r.title)
	canvas.Refresh(r.clock)
	r.v.Seek.Refresh()
}

func (r *paneViewRenderer) Destroy() {}

func (r *paneViewRenderer) Objects() []fyne.CanvasObject { return r.objs }
