package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// SeekSlider is a thin horizontal scrubber used in the pane overlay. The
// value spans [0, Max] milliseconds; user interaction fires OnSeek with the
// target position, while SetValue (driven by playback progress) repaints
// without firing the callback.
type SeekSlider struct {
	widget.BaseWidget
	Max    float64
	Value  float64
	OnSeek func(float64)
}

// NewSeekSlider creates a scrubber over [0, max].
func NewSeekSlider(max float64) *SeekSlider {
	s := &SeekSlider{Max: max}
	s.ExtendBaseWidget(s)
	return s
}

func (s *SeekSlider) CreateRenderer() fyne.WidgetRenderer {
	r := &seekSliderRenderer{
		s:     s,
		track: canvas.NewRectangle(theme.ShadowColor()),
		fill:  canvas.NewRectangle(theme.PrimaryColor()),
		thumb: canvas.NewCircle(theme.ForegroundColor()),
	}
	r.objs = []fyne.CanvasObject{r.track, r.fill, r.thumb}
	return r
}

// SetMax rescales the slider for new media, resetting the value when it now
// lies out of range.
func (s *SeekSlider) SetMax(max float64) {
	if max < 0 {
		max = 0
	}
	s.Max = max
	if s.Value > max {
		s.Value = max
	}
	s.Refresh()
}

// SetValue repaints the thumb position without firing OnSeek.
func (s *SeekSlider) SetValue(v float64) {
	v = clampFloat64(v, 0, s.Max)
	if v == s.Value {
		return
	}
	s.Value = v
	s.Refresh()
}

// Dragged scrubs to the pointer position.
func (s *SeekSlider) Dragged(e *fyne.DragEvent) {
	s.seekFromPos(e.Position.X, s.Size().Width)
}

func (s *SeekSlider) DragEnd() {}

// Tapped scrubs to the tapped position.
func (s *SeekSlider) Tapped(e *fyne.PointEvent) {
	s.seekFromPos(e.Position.X, s.Size().Width)
}

func (s *SeekSlider) seekFromPos(px, w float32) {
	if w <= 0 || s.Max <= 0 {
		return
	}
	frac := clampFloat64(float64(px/w), 0, 1)
	v := frac * s.Max
	s.Value = v
	s.Refresh()
	if s.OnSeek != nil {
		s.OnSeek(v)
	}
}

func (s *SeekSlider) MinSize() fyne.Size {
	return fyne.NewSize(60, theme.IconInlineSize())
}

type seekSliderRenderer struct {
	s     *SeekSlider
	track *canvas.Rectangle
	fill  *canvas.Rectangle
	thumb *canvas.Circle
	objs  []fyne.CanvasObject
}

func (r *seekSliderRenderer) Layout(sz fyne.Size) {
	trackH := float32(4)
	y := (sz.Height - trackH) / 2
	r.track.Move(fyne.NewPos(0, y))
	r.track.Resize(fyne.NewSize(sz.Width, trackH))

	frac := float32(0)
	if r.s.Max > 0 {
		frac = float32(clampFloat64(r.s.Value/r.s.Max, 0, 1))
	}
	fillW := sz.Width * frac
	r.fill.Move(fyne.NewPos(0, y))
	r.fill.Resize(fyne.NewSize(fillW, trackH))

	thumbR := theme.IconInlineSize() / 4
	cx := fillW
	if cx < thumbR {
		cx = thumbR
	}
	if cx > sz.Width-thumbR {
		cx = sz.Width - thumbR
	}
	cy := sz.Height / 2
	r.thumb.Resize(fyne.NewSize(thumbR*2, thumbR*2))
	r.thumb.Move(fyne.NewPos(cx-thumbR, cy-thumbR))
}

func (r *seekSliderRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *seekSliderRenderer) Refresh() {
	r.Layout(r.s.Size())
	canvas.Refresh(r.track)
	canvas.Refresh(r.fill)
	canvas.Refresh(r.thumb)
}

func (r *seekSliderRenderer) Destroy() {}

func (r *seekSliderRenderer) Objects() []fyne.CanvasObject { return r.objs }
