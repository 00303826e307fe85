package canvasctl

import (
	"errors"
	"log"
	"time"

	"github.com/frudas24/webspatium/internal/geom"
)

// DefaultMoveInterval is the minimum time between two processed move events.
const DefaultMoveInterval = 16 * time.Millisecond

// ErrMissingSurface is returned when the widget is created without a drawing surface.
var ErrMissingSurface = errors.New("spatial canvas not found")

// Callback receives the full element collection after every state change.
type Callback func(elements []Element)

// Control is the pointer-driven widget. It is not safe for concurrent use;
// hosts serialize calls into it.
type Control struct {
	surface  Surface
	host     Host
	elements []Element
	callback Callback
	palette  Palette

	cursorDown bool
	selected   Selection

	lastMoveAt   time.Time
	moveInterval time.Duration
	now          func() time.Time
}

// New creates the widget, reports the initial positions and draws the first frame.
// The elements slice is updated in place while dragging.
func New(surface Surface, host Host, elements []Element, callback Callback) (*Control, error) {
	if surface == nil {
		log.Printf("canvasctl: %v", ErrMissingSurface)
		return nil, ErrMissingSurface
	}
	if host == nil {
		host = nopHost{}
	}

	c := &Control{
		surface:      surface,
		host:         host,
		elements:     elements,
		callback:     callback,
		palette:      DefaultPalette(),
		selected:     Selection{Index: NoSelection},
		moveInterval: DefaultMoveInterval,
		now:          time.Now,
	}

	c.InvokeCallback()
	c.Resize()
	c.Draw()
	return c, nil
}

// SetNowFunc overrides the clock used for move throttling.
func (c *Control) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		c.now = fn
	}
}

// SetMoveInterval overrides the minimum interval between processed moves.
func (c *Control) SetMoveInterval(d time.Duration) {
	if d >= 0 {
		c.moveInterval = d
	}
}

// SetPalette replaces the widget colours and redraws.
func (c *Control) SetPalette(p Palette) {
	c.palette = p
	c.Draw()
}

// InvokeCallback reports the current elements to the registered callback.
func (c *Control) InvokeCallback() {
	if c.callback != nil {
		c.callback(c.elements)
	}
}

// Resize restores the fixed logical resolution; hosts call Draw afterwards.
func (c *Control) Resize() {
	c.surface.SetSize(LogicalSize, LogicalSize)
}

// Draw renders the current state onto the surface.
func (c *Control) Draw() {
	Render(c.surface, c.elements, c.palette)
}

// Elements returns a copy of the current elements.
func (c *Control) Elements() []Element {
	out := make([]Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Selection returns the current drag selection.
func (c *Control) Selection() Selection {
	return c.selected
}

// Dragging reports whether an element is being dragged.
func (c *Control) Dragging() bool {
	return c.cursorDown && !c.selected.None()
}

// NearestElement hit-tests cursor (widget pixels) against the current elements.
func (c *Control) NearestElement(cursor geom.Point) Selection {
	w, h := c.surface.Size()
	return NearestElement(c.elements, cursor, float64(w), float64(h))
}

// PointerDown starts a drag on the nearest clickable element, if any.
func (c *Control) PointerDown(ev PointerEvent) {
	c.cursorDown = true
	cursor := CursorPosition(ev, c.host.BoundingRect())
	c.selected = c.NearestElement(cursor)
	c.update(cursor)
	c.host.SetScrollLocked(true)
}

// PointerMove moves the selected element. Events closer than the move interval
// to the last processed one are dropped. It reports whether the event was
// processed and whether the pointer hovers a draggable element.
func (c *Control) PointerMove(ev PointerEvent) (processed, hovering bool) {
	now := c.now()
	if !c.lastMoveAt.IsZero() && now.Sub(c.lastMoveAt) < c.moveInterval {
		return false, false
	}
	c.lastMoveAt = now

	cursor := CursorPosition(ev, c.host.BoundingRect())
	hover := c.NearestElement(cursor)

	if c.cursorDown {
		c.update(cursor)
	}

	if hover.None() {
		c.host.SetCursor(CursorDefault)
		return true, false
	}
	c.host.SetCursor(CursorPointer)
	return true, true
}

// PointerUp ends any drag. Hosts deliver it for releases anywhere on the page.
func (c *Control) PointerUp() {
	c.cursorDown = false
	c.selected.Index = NoSelection
	c.host.SetScrollLocked(false)
}

// update moves the selected element under cursor, notifies and redraws.
func (c *Control) update(cursor geom.Point) {
	if !c.selected.None() && c.selected.Index < len(c.elements) {
		w, h := c.surface.Size()
		el := &c.elements[c.selected.Index]
		el.X = geom.Clamp01((cursor.X + c.selected.XOffset) / float64(w))
		el.Y = geom.Clamp01((cursor.Y + c.selected.YOffset) / float64(h))
		c.InvokeCallback()
	}
	c.Draw()
}
