package wallapp

import (
	"fyne.io/fyne/v2"

	"github.com/edward-ap/videowall/internal/wall"
)

// splitLayout lays a split's children along its axis, each child taking a
// share of the available extent proportional to its size slot. Model sizes
// are kept as persisted integers; rendering only scales them.
type splitLayout struct {
	sp *wall.Split
}

func newSplitLayout(sp *wall.Split) fyne.Layout {
	return &splitLayout{sp: sp}
}

func (l *splitLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		min := o.MinSize()
		if l.sp.Orientation == wall.Horizontal {
			w += min.Width
			if min.Height > h {
				h = min.Height
			}
		} else {
			h += min.Height
			if min.Width > w {
				w = min.Width
			}
		}
	}
	return fyne.NewSize(w, h)
}

func (l *splitLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	total := 0
	for i := range objects {
		if i < len(l.sp.Sizes) {
			total += l.sp.Sizes[i]
		}
	}
	if total <= 0 {
		total = len(objects)
	}

	length := size.Width
	if l.sp.Orientation == wall.Vertical {
		length = size.Height
	}
	var offset float32
	for i, o := range objects {
		share := 1
		if i < len(l.sp.Sizes) {
			share = l.sp.Sizes[i]
		}
		extent := length * float32(share) / float32(total)
		if i == len(objects)-1 {
			extent = length - offset
		}
		if l.sp.Orientation == wall.Horizontal {
			o.Move(fyne.NewPos(offset, 0))
			o.Resize(fyne.NewSize(extent, size.Height))
		} else {
			o.Move(fyne.NewPos(0, offset))
			o.Resize(fyne.NewSize(size.Width, extent))
		}
		offset += extent
	}
}
