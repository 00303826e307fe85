// Package session holds runtime state shared by the widget hosts.
package session

import (
	"sync"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/spatial"
)

// TransportWebSocket carries pointer events over /ws/control.
const TransportWebSocket = "websocket"

// TransportWebRTC carries pointer events over a WebRTC data channel.
const TransportWebRTC = "webrtc"

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Elements     []canvasctl.Element `json:"elements"`
	Selection    canvasctl.Selection `json:"selection"`
	Source       spatial.Vec3        `json:"source"`
	Cursor       canvasctl.Cursor    `json:"cursor"`
	ScrollLocked bool                `json:"scrollLocked"`
	InputEnabled bool                `json:"inputEnabled"`
	Viewers      int                 `json:"viewers"`
	Transport    string              `json:"transport"`
	Updates      int                 `json:"updates"`
}

// Session holds runtime state for the active viewer.
type Session struct {
	mu           sync.RWMutex
	elements     []canvasctl.Element
	selection    canvasctl.Selection
	source       spatial.Vec3
	cursor       canvasctl.Cursor
	scrollLocked bool
	inputEnabled bool
	viewers      int
	transport    string
	updates      int
}

var _ spatial.PositionSink = (*Session)(nil)

// New returns an initialized session with the source at its default position.
func New() *Session {
	return &Session{
		selection:    canvasctl.Selection{Index: canvasctl.NoSelection},
		source:       spatial.DefaultSourcePosition,
		cursor:       canvasctl.CursorDefault,
		inputEnabled: true,
	}
}

// SetPosition stores the latest source position.
func (s *Session) SetPosition(x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = spatial.Vec3{X: x, Y: y, Z: z}
	s.updates++
}

// Source returns the latest source position.
func (s *Session) Source() spatial.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetWidget stores the widget elements and selection after an event.
func (s *Session) SetWidget(elements []canvasctl.Element, sel canvasctl.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = append(s.elements[:0], elements...)
	s.selection = sel
}

// SetCursor stores the cursor affordance.
func (s *Session) SetCursor(c canvasctl.Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = c
}

// SetScrollLocked stores whether page scrolling is locked.
func (s *Session) SetScrollLocked(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollLocked = locked
}

// SetInputEnabled toggles whether pointer events reach the widget.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether pointer events reach the widget.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// ViewerConnected records a connected viewer and its transport.
func (s *Session) ViewerConnected(transport string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewers++
	s.transport = transport
}

// ViewerDisconnected records a viewer leaving.
func (s *Session) ViewerDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewers > 0 {
		s.viewers--
	}
	if s.viewers == 0 {
		s.transport = ""
	}
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	elements := make([]canvasctl.Element, len(s.elements))
	copy(elements, s.elements)
	return Snapshot{
		Elements:     elements,
		Selection:    s.selection,
		Source:       s.source,
		Cursor:       s.cursor,
		ScrollLocked: s.scrollLocked,
		InputEnabled: s.inputEnabled,
		Viewers:      s.viewers,
		Transport:    s.transport,
		Updates:      s.updates,
	}
}
