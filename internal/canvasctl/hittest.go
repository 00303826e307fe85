package canvasctl

import (
	"math"

	"github.com/frudas24/webspatium/internal/geom"
)

// NoSelection marks a Selection that does not point at any element.
const NoSelection = -1

// Selection is the element under a drag and the pixel offset from the cursor to its centre.
type Selection struct {
	Index   int     `json:"index"`
	XOffset float64 `json:"xOffset"`
	YOffset float64 `json:"yOffset"`
}

// None reports whether no element is selected.
func (s Selection) None() bool {
	return s.Index < 0
}

// PointerEvent is a mouse or touch event in client coordinates.
// Touch events carry their points in Touches; the first one is used.
type PointerEvent struct {
	ClientX float64
	ClientY float64
	Touches []geom.Point
}

// CursorPosition converts a pointer event into widget pixel space relative to rect.
func CursorPosition(ev PointerEvent, rect geom.Rect) geom.Point {
	x, y := ev.ClientX, ev.ClientY
	if len(ev.Touches) > 0 {
		x, y = ev.Touches[0].X, ev.Touches[0].Y
	}
	origin := geom.Origin(rect)
	return geom.Point{X: x - origin.X, Y: y - origin.Y}
}

// NearestElement finds the clickable element closest to cursor by Manhattan distance.
// An element only qualifies when the distance is below twice its pixel radius.
func NearestElement(elements []Element, cursor geom.Point, width, height float64) Selection {
	minDistance := math.MaxFloat64
	sel := Selection{Index: NoSelection}

	for i, el := range elements {
		if !el.Clickable {
			continue
		}
		dx := el.X*width - cursor.X
		dy := el.Y*height - cursor.Y
		distance := geom.Abs(dx) + geom.Abs(dy)
		if distance < minDistance && distance < 2*el.Radius*width {
			minDistance = distance
			sel = Selection{Index: i, XOffset: dx, YOffset: dy}
		}
	}
	return sel
}
