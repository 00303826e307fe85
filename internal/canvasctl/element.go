// Package canvasctl implements the 2D spatial control widget: a listener and a
// draggable source drawn on a small square surface.
package canvasctl

// ElementType selects how an element is drawn and whether it is mapped into room space.
type ElementType string

const (
	// TypeSource is a draggable sound source marker.
	TypeSource ElementType = "source"
	// TypeListener is the listener marker at the room centre.
	TypeListener ElementType = "listener"
)

// Element is one marker on the widget surface. Coordinates are normalized to the surface.
type Element struct {
	Type      ElementType `json:"type" yaml:"type"`
	X         float64     `json:"x" yaml:"x"`
	Y         float64     `json:"y" yaml:"y"`
	Radius    float64     `json:"radius" yaml:"radius"`
	Alpha     float64     `json:"alpha" yaml:"alpha"`
	Clickable bool        `json:"clickable" yaml:"clickable"`
}

// DefaultElements returns the source and listener the page starts with.
func DefaultElements() []Element {
	return []Element{
		{Type: TypeSource, X: 0.25, Y: 0.25, Radius: 0.04, Alpha: 0.75, Clickable: true},
		{Type: TypeListener, X: 0.5, Y: 0.5, Radius: 0.06, Alpha: 0.75, Clickable: false},
	}
}
