package session

import (
	"testing"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/spatial"
)

// TestNew_DefaultSource verifies the source starts at its default position.
func TestNew_DefaultSource(t *testing.T) {
	s := New()
	if s.Source() != spatial.DefaultSourcePosition {
		t.Fatalf("expected default source, got %+v", s.Source())
	}
	if !s.InputEnabled() {
		t.Fatalf("expected input enabled")
	}
}

// TestSetPosition verifies the sink stores positions and counts updates.
func TestSetPosition(t *testing.T) {
	s := New()
	s.SetPosition(1, 0, -1)
	s.SetPosition(0.5, 0, 0.25)
	snap := s.Snapshot()
	if snap.Source != (spatial.Vec3{X: 0.5, Z: 0.25}) || snap.Updates != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

// TestInputEnabled_Toggle verifies input enabled toggle.
func TestInputEnabled_Toggle(t *testing.T) {
	s := New()
	s.SetInputEnabled(false)
	if s.InputEnabled() {
		t.Fatalf("expected input disabled")
	}
	s.SetInputEnabled(true)
	if !s.InputEnabled() {
		t.Fatalf("expected input enabled")
	}
}

// TestViewers verifies viewer counting and transport reset.
func TestViewers(t *testing.T) {
	s := New()
	s.ViewerConnected(TransportWebSocket)
	s.ViewerConnected(TransportWebRTC)
	if snap := s.Snapshot(); snap.Viewers != 2 || snap.Transport != TransportWebRTC {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	s.ViewerDisconnected()
	s.ViewerDisconnected()
	s.ViewerDisconnected()
	if snap := s.Snapshot(); snap.Viewers != 0 || snap.Transport != "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

// TestSnapshot_CopiesElements verifies snapshots are detached from session state.
func TestSnapshot_CopiesElements(t *testing.T) {
	s := New()
	els := canvasctl.DefaultElements()
	s.SetWidget(els, canvasctl.Selection{Index: 0, XOffset: 1})
	s.SetCursor(canvasctl.CursorPointer)
	s.SetScrollLocked(true)

	snap := s.Snapshot()
	snap.Elements[0].X = 0.9
	els[0].X = 0.8
	again := s.Snapshot()
	if again.Elements[0].X != 0.25 {
		t.Fatalf("expected stored elements untouched, got %v", again.Elements[0].X)
	}
	if again.Selection.Index != 0 || again.Cursor != canvasctl.CursorPointer || !again.ScrollLocked {
		t.Fatalf("unexpected snapshot: %+v", again)
	}
}
