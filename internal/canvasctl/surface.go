package canvasctl

import (
	"image/color"

	"github.com/frudas24/webspatium/internal/geom"
)

// Surface is an immediate-mode 2D drawing target shaped like a canvas context.
type Surface interface {
	SetSize(width, height int)
	Size() (width, height int)
	SetGlobalAlpha(alpha float64)
	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetLineWidth(width float64)
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Fill()
	Stroke()
}

// Presenter is implemented by surfaces that need to know when a full frame is drawn.
type Presenter interface {
	Present()
}

// Cursor is the pointer affordance shown over the widget.
type Cursor string

const (
	// CursorDefault is shown when nothing draggable is under the pointer.
	CursorDefault Cursor = "default"
	// CursorPointer is shown while hovering a draggable element.
	CursorPointer Cursor = "pointer"
)

// Host is the environment the widget is embedded in.
type Host interface {
	// BoundingRect returns the widget position in client coordinates.
	BoundingRect() geom.Rect
	// SetCursor updates the pointer affordance.
	SetCursor(c Cursor)
	// SetScrollLocked disables page scrolling while a drag is active.
	SetScrollLocked(locked bool)
}

type nopHost struct{}

func (nopHost) BoundingRect() geom.Rect { return geom.Rect{} }
func (nopHost) SetCursor(Cursor)        {}
func (nopHost) SetScrollLocked(bool)    {}
