// Package control serves the spatial widget to remote viewers.
package control

import (
	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/geom"
	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/frudas24/webspatium/internal/surface"
)

// Touch is a single touch point in client coordinates.
type Touch struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
}

// Message is a control payload sent by the viewer.
type Message struct {
	T       string     `json:"t"`
	ClientX float64    `json:"clientX,omitempty"`
	ClientY float64    `json:"clientY,omitempty"`
	Touches []Touch    `json:"touches,omitempty"`
	Rect    *geom.Rect `json:"rect,omitempty"`
	Enabled *bool      `json:"enabled,omitempty"`
}

// Frame is the widget state pushed to the viewer after an event.
type Frame struct {
	T            string           `json:"t"`
	Seq          int              `json:"seq"`
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	Ops          []surface.Op     `json:"ops"`
	Cursor       canvasctl.Cursor `json:"cursor"`
	ScrollLocked bool             `json:"scrollLocked"`
	Source       spatial.Vec3     `json:"source"`
}

// PointerEvent converts the message into a widget pointer event.
func (m Message) PointerEvent() canvasctl.PointerEvent {
	ev := canvasctl.PointerEvent{ClientX: m.ClientX, ClientY: m.ClientY}
	for _, t := range m.Touches {
		ev.Touches = append(ev.Touches, geom.Point{X: t.ClientX, Y: t.ClientY})
	}
	return ev
}
