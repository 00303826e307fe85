package term

import (
	"github.com/frudas24/webspatium/internal/canvasctl"
)

// pointerTarget receives translated pointer events.
type pointerTarget interface {
	PointerDown(ev canvasctl.PointerEvent)
	PointerMove(ev canvasctl.PointerEvent) (processed, hovering bool)
	PointerUp()
}

// mouseInput turns tcell mouse reports into widget pointer events.
type mouseInput struct {
	down     bool
	col, row int
}

// apply handles one mouse report at a cell relative to the widget origin.
// Presses start only inside the grid; releases end the drag anywhere.
func (m *mouseInput) apply(col, row int, pressed bool, target pointerTarget) {
	inGrid := col >= 0 && col < GridCols && row >= 0 && row < GridRows
	moved := col != m.col || row != m.row
	m.col, m.row = col, row

	switch {
	case pressed && !m.down:
		if !inGrid {
			return
		}
		m.down = true
		target.PointerDown(eventAt(col, row))
	case !pressed && m.down:
		m.down = false
		target.PointerUp()
	case moved && (m.down || inGrid):
		target.PointerMove(eventAt(col, row))
	}
}

// eventAt builds the widget event for a grid cell.
func eventAt(col, row int) canvasctl.PointerEvent {
	x, y := cellToClient(col, row)
	return canvasctl.PointerEvent{ClientX: x, ClientY: y}
}
