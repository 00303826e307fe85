// Package geom holds the small geometry types shared by the widget and its hosts.
package geom

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Rect describes a rectangle using top-left origin and size, like a DOM bounding rect.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Normalize returns a rectangle with non-negative width/height.
func Normalize(r Rect) Rect {
	if r.Width < 0 {
		r.Left += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Top += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether a point is inside the rectangle (edges inclusive).
func Contains(r Rect, p Point) bool {
	r = Normalize(r)
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return p.X >= r.Left && p.X <= r.Left+r.Width && p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Origin returns the top-left corner of r.
func Origin(r Rect) Point {
	r = Normalize(r)
	return Point{X: r.Left, Y: r.Top}
}

// Clamp01 bounds a float to the [0..1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Abs returns the absolute value of v.
func Abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
