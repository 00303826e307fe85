package surface

import (
	"image/color"
	"sync"

	"github.com/frudas24/webspatium/internal/canvasctl"
)

// Op is one recorded canvas call. Args follow the browser canvas signature.
type Op struct {
	Op    string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Style string    `json:"style,omitempty"`
}

// DisplayList records canvas calls so a browser can replay them onto a 2D context.
type DisplayList struct {
	mu      sync.Mutex
	width   int
	height  int
	pending []Op
	last    []Op
	frames  int
}

var _ canvasctl.Surface = (*DisplayList)(nil)

// NewDisplayList returns an empty display list.
func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

// SetSize sets the logical size.
func (d *DisplayList) SetSize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width, d.height = width, height
}

// Size returns the logical size.
func (d *DisplayList) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// SetGlobalAlpha records a globalAlpha assignment.
func (d *DisplayList) SetGlobalAlpha(alpha float64) {
	d.record(Op{Op: "globalAlpha", Args: []float64{alpha}})
}

// SetFillStyle records a fillStyle assignment.
func (d *DisplayList) SetFillStyle(c color.Color) {
	d.record(Op{Op: "fillStyle", Style: CSS(c)})
}

// SetStrokeStyle records a strokeStyle assignment.
func (d *DisplayList) SetStrokeStyle(c color.Color) {
	d.record(Op{Op: "strokeStyle", Style: CSS(c)})
}

// SetLineWidth records a lineWidth assignment.
func (d *DisplayList) SetLineWidth(width float64) {
	d.record(Op{Op: "lineWidth", Args: []float64{width}})
}

// ClearRect records clearRect.
func (d *DisplayList) ClearRect(x, y, w, h float64) {
	d.record(Op{Op: "clearRect", Args: []float64{x, y, w, h}})
}

// FillRect records fillRect.
func (d *DisplayList) FillRect(x, y, w, h float64) {
	d.record(Op{Op: "fillRect", Args: []float64{x, y, w, h}})
}

// StrokeRect records strokeRect.
func (d *DisplayList) StrokeRect(x, y, w, h float64) {
	d.record(Op{Op: "strokeRect", Args: []float64{x, y, w, h}})
}

// BeginPath records beginPath.
func (d *DisplayList) BeginPath() {
	d.record(Op{Op: "beginPath"})
}

// MoveTo records moveTo.
func (d *DisplayList) MoveTo(x, y float64) {
	d.record(Op{Op: "moveTo", Args: []float64{x, y}})
}

// LineTo records lineTo.
func (d *DisplayList) LineTo(x, y float64) {
	d.record(Op{Op: "lineTo", Args: []float64{x, y}})
}

// Arc records arc.
func (d *DisplayList) Arc(x, y, radius, startAngle, endAngle float64) {
	d.record(Op{Op: "arc", Args: []float64{x, y, radius, startAngle, endAngle}})
}

// Fill records fill.
func (d *DisplayList) Fill() {
	d.record(Op{Op: "fill"})
}

// Stroke records stroke.
func (d *DisplayList) Stroke() {
	d.record(Op{Op: "stroke"})
}

// Present closes the current frame.
func (d *DisplayList) Present() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = d.pending
	d.pending = nil
	d.frames++
}

// Frame returns a copy of the last complete frame and the number of frames presented so far.
func (d *DisplayList) Frame() ([]Op, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Op, len(d.last))
	copy(out, d.last)
	return out, d.frames
}

// record appends an op to the frame being drawn.
func (d *DisplayList) record(op Op) {
	d.mu.Lock()
	d.pending = append(d.pending, op)
	d.mu.Unlock()
}
