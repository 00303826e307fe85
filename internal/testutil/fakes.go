package testutil

import (
	"sync"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/geom"
	"github.com/frudas24/webspatium/internal/spatial"
)

// Call records a single host call.
type Call struct {
	Name   string
	Cursor canvasctl.Cursor
	Locked bool
}

// FakeHost implements canvasctl.Host and records calls for tests.
type FakeHost struct {
	Rect  geom.Rect
	Calls []Call
}

// Ensure FakeHost implements the interface.
var _ canvasctl.Host = (*FakeHost)(nil)

// BoundingRect returns the configured rect.
func (f *FakeHost) BoundingRect() geom.Rect {
	return f.Rect
}

// SetCursor records a cursor change.
func (f *FakeHost) SetCursor(c canvasctl.Cursor) {
	f.Calls = append(f.Calls, Call{Name: "SetCursor", Cursor: c})
}

// SetScrollLocked records a scroll lock change.
func (f *FakeHost) SetScrollLocked(locked bool) {
	f.Calls = append(f.Calls, Call{Name: "SetScrollLocked", Locked: locked})
}

// Last returns the last call with the given name.
func (f *FakeHost) Last(name string) (Call, bool) {
	for i := len(f.Calls) - 1; i >= 0; i-- {
		if f.Calls[i].Name == name {
			return f.Calls[i], true
		}
	}
	return Call{}, false
}

// FakeSink implements spatial.PositionSink and records positions for tests.
type FakeSink struct {
	mu        sync.Mutex
	Positions []spatial.Vec3
}

// Ensure FakeSink implements the interface.
var _ spatial.PositionSink = (*FakeSink)(nil)

// SetPosition records a position.
func (f *FakeSink) SetPosition(x, y, z float64) {
	f.mu.Lock()
	f.Positions = append(f.Positions, spatial.Vec3{X: x, Y: y, Z: z})
	f.mu.Unlock()
}

// Last returns the most recent position.
func (f *FakeSink) Last() (spatial.Vec3, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Positions) == 0 {
		return spatial.Vec3{}, false
	}
	return f.Positions[len(f.Positions)-1], true
}

// Count returns the number of recorded positions.
func (f *FakeSink) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Positions)
}
