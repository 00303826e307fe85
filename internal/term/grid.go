package term

import (
	"image"
	"image/color"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/gdamore/tcell/v2"
)

const (
	// GridCols is the widget width in terminal cells.
	GridCols = 50
	// GridRows is the widget height in terminal cells; each cell shows two pixel rows.
	GridRows = 25

	cellWidth  = canvasctl.LogicalSize / GridCols
	cellHeight = canvasctl.LogicalSize / GridRows
)

// upperHalf is drawn with the top sample as foreground and the bottom as background.
const upperHalf = '▀'

// cellToClient maps a cell relative to the widget origin onto widget pixels.
func cellToClient(col, row int) (float64, float64) {
	return float64(col*cellWidth + cellWidth/2), float64(row*cellHeight + cellHeight/2)
}

// cellColors samples the two half-cell colours of a cell from img.
func cellColors(img *image.RGBA, col, row int) (top, bottom color.RGBA) {
	x := col*cellWidth + cellWidth/2
	top = img.RGBAAt(x, row*cellHeight+cellHeight/4)
	bottom = img.RGBAAt(x, row*cellHeight+cellHeight*3/4)
	return top, bottom
}

// toCell converts a premultiplied sample over bg into a terminal colour.
func toCell(c color.RGBA, bg color.RGBA) tcell.Color {
	if c.A == 0xff {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	inv := uint32(0xff - c.A)
	r := uint32(c.R) + uint32(bg.R)*inv/0xff
	g := uint32(c.G) + uint32(bg.G)*inv/0xff
	b := uint32(c.B) + uint32(bg.B)*inv/0xff
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawGrid paints img at (originX, originY) as half-block cells.
func drawGrid(screen tcell.Screen, img *image.RGBA, originX, originY int, bg color.RGBA) {
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			top, bottom := cellColors(img, col, row)
			style := tcell.StyleDefault.Foreground(toCell(top, bg)).Background(toCell(bottom, bg))
			screen.SetContent(originX+col, originY+row, upperHalf, nil, style)
		}
	}
}
