// Package spatial maps widget coordinates into room space and fans positions
// out to the audio renderer and other listeners.
package spatial

import (
	"sync"

	"github.com/frudas24/webspatium/internal/canvasctl"
)

// Vec3 is a position in metres relative to the room centre.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Room holds the room dimensions in metres.
type Room struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth" yaml:"depth"`
}

// DefaultRoom returns the demo room.
func DefaultRoom() Room {
	return Room{Width: 3.1, Height: 2.5, Depth: 3.4}
}

// Materials names the acoustic material of each room surface.
type Materials struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
	Down  string `json:"down" yaml:"down"`
	Up    string `json:"up" yaml:"up"`
}

// DefaultMaterials returns the demo room materials.
func DefaultMaterials() Materials {
	return Materials{
		Left:  "brick-bare",
		Right: "curtain-heavy",
		Front: "marble",
		Back:  "glass-thin",
		Down:  "grass",
		Up:    "transparent",
	}
}

// DefaultSourcePosition is where the source plays before the widget reports.
var DefaultSourcePosition = Vec3{X: -0.707, Y: 0, Z: -0.707}

// PositionSink receives source positions in metres.
type PositionSink interface {
	SetPosition(x, y, z float64)
}

// MapSource maps normalized widget coordinates onto the room floor plane.
func MapSource(x, y float64, room Room) Vec3 {
	return Vec3{
		X: (x - 0.5) * room.Width / 2,
		Y: 0,
		Z: (y - 0.5) * room.Depth / 2,
	}
}

// Mapper returns a widget callback forwarding every source element to sink.
// Listener and unknown elements are ignored.
func Mapper(room Room, sink PositionSink) canvasctl.Callback {
	return func(elements []canvasctl.Element) {
		if sink == nil {
			return
		}
		for _, el := range elements {
			if el.Type != canvasctl.TypeSource {
				continue
			}
			p := MapSource(el.X, el.Y, room)
			sink.SetPosition(p.X, p.Y, p.Z)
		}
	}
}

// Fanout forwards positions to several sinks.
type Fanout struct {
	mu    sync.RWMutex
	sinks []PositionSink
}

// NewFanout returns a fan-out over sinks. Nil sinks are skipped.
func NewFanout(sinks ...PositionSink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		f.Add(s)
	}
	return f
}

// Add registers another sink.
func (f *Fanout) Add(s PositionSink) {
	if s == nil {
		return
	}
	f.mu.Lock()
	f.sinks = append(f.sinks, s)
	f.mu.Unlock()
}

// SetPosition forwards the position to every sink in registration order.
func (f *Fanout) SetPosition(x, y, z float64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sinks {
		s.SetPosition(x, y, z)
	}
}

// Context bundles the room and the sink the widget writes to.
type Context struct {
	Room      Room
	Materials Materials
	Sink      PositionSink
}

// NewContext returns a context; a nil sink drops positions.
func NewContext(room Room, materials Materials, sink PositionSink) *Context {
	return &Context{Room: room, Materials: materials, Sink: sink}
}

// Callback returns the widget callback for this context.
func (c *Context) Callback() canvasctl.Callback {
	return Mapper(c.Room, c.Sink)
}
