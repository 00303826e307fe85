package control

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/geom"
	"github.com/frudas24/webspatium/internal/session"
	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/frudas24/webspatium/internal/surface"
)

// debugEvents controls whether every pointer event is logged.
var debugEvents atomic.Bool

// SetDebugLogging enables/disables per-event logs.
func SetDebugLogging(enabled bool) {
	debugEvents.Store(enabled)
}

// viewHost is the remote page the widget is embedded in.
type viewHost struct {
	rect         geom.Rect
	cursor       canvasctl.Cursor
	scrollLocked bool
	session      *session.Session
}

// BoundingRect returns the last rect reported by the viewer.
func (h *viewHost) BoundingRect() geom.Rect {
	return h.rect
}

// SetCursor stores the cursor for the next frame.
func (h *viewHost) SetCursor(c canvasctl.Cursor) {
	h.cursor = c
	h.session.SetCursor(c)
}

// SetScrollLocked stores the scroll lock for the next frame.
func (h *viewHost) SetScrollLocked(locked bool) {
	h.scrollLocked = locked
	h.session.SetScrollLocked(locked)
}

// WidgetOptions configures a shared widget.
type WidgetOptions struct {
	Elements     []canvasctl.Element
	Palette      canvasctl.Palette
	Room         spatial.Room
	Sink         spatial.PositionSink
	MoveInterval time.Duration
	// Extra surfaces drawn alongside the display list, such as a raster preview.
	Extra []canvasctl.Surface
}

// Widget serializes every transport into one widget instance.
type Widget struct {
	mu      sync.Mutex
	ctl     *canvasctl.Control
	list    *surface.DisplayList
	host    *viewHost
	session *session.Session
	seq     int
}

// NewWidget creates the shared widget. The session receives source positions
// alongside opts.Sink.
func NewWidget(sess *session.Session, opts WidgetOptions) (*Widget, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	list := surface.NewDisplayList()
	targets := append([]canvasctl.Surface{list}, opts.Extra...)
	host := &viewHost{rect: geom.Rect{Width: canvasctl.LogicalSize, Height: canvasctl.LogicalSize}, cursor: canvasctl.CursorDefault, session: sess}
	sink := spatial.NewFanout(sess, opts.Sink)

	ctl, err := canvasctl.New(surface.NewMulti(targets...), host, opts.Elements, spatial.Mapper(opts.Room, sink))
	if err != nil {
		return nil, err
	}
	if opts.Palette.Background != nil {
		ctl.SetPalette(opts.Palette)
	}
	if opts.MoveInterval > 0 {
		ctl.SetMoveInterval(opts.MoveInterval)
	}

	w := &Widget{ctl: ctl, list: list, host: host, session: sess}
	sess.SetWidget(ctl.Elements(), ctl.Selection())
	return w, nil
}

// SetNowFunc overrides the widget clock.
func (w *Widget) SetNowFunc(fn func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctl.SetNowFunc(fn)
}

// Handle applies one viewer message and reports whether a frame should be sent.
func (w *Widget) Handle(msg Message) (Frame, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if msg.Rect != nil {
		w.host.rect = geom.Normalize(*msg.Rect)
	}

	send := true
	switch msg.T {
	case "down":
		if !w.session.InputEnabled() {
			return Frame{}, false
		}
		w.ctl.PointerDown(msg.PointerEvent())
	case "move":
		if !w.session.InputEnabled() {
			return Frame{}, false
		}
		send, _ = w.ctl.PointerMove(msg.PointerEvent())
	case "up":
		w.ctl.PointerUp()
	case "resize":
		w.ctl.Resize()
		w.ctl.Draw()
	case "inputEnabled":
		if msg.Enabled != nil {
			w.session.SetInputEnabled(*msg.Enabled)
			if !*msg.Enabled {
				w.ctl.PointerUp()
			}
		}
	case "sync":
	default:
		return Frame{}, false
	}

	if debugEvents.Load() {
		sel := w.ctl.Selection()
		log.Printf("control: %s x=%.1f y=%.1f sel=%d sent=%v", msg.T, msg.ClientX, msg.ClientY, sel.Index, send)
	}
	if !send {
		return Frame{}, false
	}
	w.session.SetWidget(w.ctl.Elements(), w.ctl.Selection())
	return w.frameLocked(), true
}

// HandleJSON decodes a message, applies it and encodes the resulting frame.
func (w *Widget) HandleJSON(data []byte) ([]byte, bool, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, false, fmt.Errorf("decode control message: %w", err)
	}
	frame, ok := w.Handle(msg)
	if !ok {
		return nil, false, nil
	}
	out, err := json.Marshal(frame)
	if err != nil {
		return nil, false, fmt.Errorf("encode frame: %w", err)
	}
	return out, true, nil
}

// Frame returns the current widget frame.
func (w *Widget) Frame() Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frameLocked()
}

// Release ends any drag, used when a viewer disconnects mid-gesture.
func (w *Widget) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctl.PointerUp()
	w.session.SetWidget(w.ctl.Elements(), w.ctl.Selection())
}

// frameLocked builds a frame from the last presented display list.
func (w *Widget) frameLocked() Frame {
	ops, _ := w.list.Frame()
	width, height := w.list.Size()
	w.seq++
	return Frame{
		T:            "frame",
		Seq:          w.seq,
		Width:        width,
		Height:       height,
		Ops:          ops,
		Cursor:       w.host.cursor,
		ScrollLocked: w.host.scrollLocked,
		Source:       w.session.Source(),
	}
}
