package term

import (
	"image"
	"image/color"
	"testing"

	"github.com/frudas24/webspatium/internal/audio"
	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/gdamore/tcell/v2"
)

// newTestApp returns an app drawing onto a simulation screen.
func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 32)
	t.Cleanup(screen.Fini)

	scene := config.DefaultScene()
	renderer, err := audio.NewRenderer(audio.Chirp(8000), scene.Source)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	a, err := New(screen, scene, renderer)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return a, screen
}

// recordingTarget records the pointer events it receives.
type recordingTarget struct {
	events []string
}

// PointerDown records a press.
func (r *recordingTarget) PointerDown(canvasctl.PointerEvent) { r.events = append(r.events, "down") }

// PointerMove records a move.
func (r *recordingTarget) PointerMove(canvasctl.PointerEvent) (bool, bool) {
	r.events = append(r.events, "move")
	return true, false
}

// PointerUp records a release.
func (r *recordingTarget) PointerUp() { r.events = append(r.events, "up") }

// TestCellToClient ensures cells map to their pixel centres.
func TestCellToClient(t *testing.T) {
	x, y := cellToClient(0, 0)
	if x != 2 || y != 4 {
		t.Fatalf("expected 2,4, got %v,%v", x, y)
	}
	x, y = cellToClient(GridCols-1, GridRows-1)
	if x != 198 || y != 196 {
		t.Fatalf("expected 198,196, got %v,%v", x, y)
	}
}

// TestMouseInput_Sequence ensures press, drag and release map to down, move and up.
func TestMouseInput_Sequence(t *testing.T) {
	var m mouseInput
	target := &recordingTarget{}
	m.apply(60, 5, true, target)
	m.apply(10, 5, true, target)
	m.apply(11, 5, true, target)
	m.apply(70, 40, true, target)
	m.apply(70, 40, false, target)

	want := []string{"down", "move", "move", "up"}
	if len(target.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, target.events)
	}
	for i := range want {
		if target.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, target.events)
		}
	}
}

// TestToCell_BlendsTransparency ensures transparent samples show the background.
func TestToCell_BlendsTransparency(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 0xff}
	if got := toCell(color.RGBA{}, bg); got != tcell.NewRGBColor(10, 20, 30) {
		t.Fatalf("expected background colour, got %v", got)
	}
	if got := toCell(color.RGBA{R: 200, A: 0xff}, bg); got != tcell.NewRGBColor(200, 0, 0) {
		t.Fatalf("expected opaque red, got %v", got)
	}
}

// TestDrawGrid_HalfBlocks ensures every widget cell is filled with a half block.
func TestDrawGrid_HalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(60, 30)

	img := image.NewRGBA(image.Rect(0, 0, canvasctl.LogicalSize, canvasctl.LogicalSize))
	drawGrid(screen, img, 1, 1, color.RGBA{A: 0xff})

	if r, _, _, _ := screen.GetContent(1, 1); r != upperHalf {
		t.Fatalf("expected half block at origin, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(GridCols, GridRows); r != upperHalf {
		t.Fatalf("expected half block at last cell, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r == upperHalf {
		t.Fatalf("expected no half block outside the grid")
	}
}

// TestApp_DragMovesSource ensures mouse drags move the audio source.
func TestApp_DragMovesSource(t *testing.T) {
	a, _ := newTestApp(t)
	if a.renderer.Position().X >= 0 {
		t.Fatalf("expected initial source left of centre, got %+v", a.renderer.Position())
	}

	a.HandleEvent(tcell.NewEventMouse(originX+12, originY+6, tcell.Button1, tcell.ModNone))
	if !a.host.locked {
		t.Fatalf("expected drag lock after press on source")
	}
	a.HandleEvent(tcell.NewEventMouse(originX+37, originY+6, tcell.Button1, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(originX+37, originY+6, tcell.ButtonNone, tcell.ModNone))

	if a.host.locked {
		t.Fatalf("expected drag lock released")
	}
	if a.renderer.Position().X <= 0 {
		t.Fatalf("expected source right of centre, got %+v", a.renderer.Position())
	}
	if x := a.Elements()[0].X; x != 0.75 {
		t.Fatalf("expected source x 0.75, got %v", x)
	}
}

// TestApp_QuitKeys ensures q and Escape stop the app.
func TestApp_QuitKeys(t *testing.T) {
	a, _ := newTestApp(t)
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) != true {
		t.Fatalf("expected unrelated key to keep running")
	}
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("expected q to quit")
	}
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("expected escape to quit")
	}
}

// TestApp_DrawStatus ensures the status line shows the source position.
func TestApp_DrawStatus(t *testing.T) {
	a, screen := newTestApp(t)
	a.Draw()
	if r, _, _, _ := screen.GetContent(originX, 0); r != 's' {
		t.Fatalf("expected status line, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(originX, originY); r != upperHalf {
		t.Fatalf("expected widget grid, got %q", r)
	}
}
