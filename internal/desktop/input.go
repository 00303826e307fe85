package desktop

import (
	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/geom"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSample is the pointer state read once per frame, touch first then mouse.
type pointerSample struct {
	X, Y         int
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	Touch        bool
}

// readPointer samples ebiten input for the current frame.
func readPointer() pointerSample {
	var s pointerSample

	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		s.JustReleased = true
		s.Touch = true
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		s.X, s.Y = ebiten.TouchPosition(ids[0])
		s.Pressed = true
		s.Touch = true
		s.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return s
	}
	if s.Touch {
		return s
	}

	s.X, s.Y = ebiten.CursorPosition()
	s.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return s
}

// pointerTarget receives translated pointer events.
type pointerTarget interface {
	PointerDown(ev canvasctl.PointerEvent)
	PointerMove(ev canvasctl.PointerEvent) (processed, hovering bool)
	PointerUp()
}

// dragInput turns per-frame pointer samples into widget pointer events.
// Presses start only inside the widget; releases end the drag anywhere.
type dragInput struct {
	down         bool
	lastX, lastY int
	seen         bool
}

// apply forwards the sample to target and reports whether anything was sent.
func (d *dragInput) apply(s pointerSample, rect geom.Rect, target pointerTarget) bool {
	sent := false

	if s.JustReleased && d.down {
		d.down = false
		target.PointerUp()
		sent = true
	}

	if s.JustPressed && geom.Contains(rect, geom.Point{X: float64(s.X), Y: float64(s.Y)}) {
		d.down = true
		d.lastX, d.lastY, d.seen = s.X, s.Y, true
		target.PointerDown(eventFor(s))
		return true
	}

	if s.Touch && !s.Pressed {
		return sent
	}
	if d.seen && s.X == d.lastX && s.Y == d.lastY {
		return sent
	}
	d.lastX, d.lastY, d.seen = s.X, s.Y, true
	if !d.down && !geom.Contains(rect, geom.Point{X: float64(s.X), Y: float64(s.Y)}) {
		return sent
	}
	target.PointerMove(eventFor(s))
	return true
}

// eventFor builds the widget event, filling Touches for touch input.
func eventFor(s pointerSample) canvasctl.PointerEvent {
	ev := canvasctl.PointerEvent{ClientX: float64(s.X), ClientY: float64(s.Y)}
	if s.Touch {
		ev.Touches = []geom.Point{{X: float64(s.X), Y: float64(s.Y)}}
	}
	return ev
}

