// Package term hosts the spatial widget in a terminal using tcell, with
// optional playback through the system speaker.
package term

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/frudas24/webspatium/internal/audio"
	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/geom"
	"github.com/frudas24/webspatium/internal/pendulum"
	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/frudas24/webspatium/internal/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	originX = 2
	originY = 2
)

// cellHost reports the widget in pixel space; terminal cells are converted before dispatch.
type cellHost struct {
	cursor canvasctl.Cursor
	locked bool
}

// BoundingRect returns the widget rect in widget pixels.
func (h *cellHost) BoundingRect() geom.Rect {
	return geom.Rect{Width: canvasctl.LogicalSize, Height: canvasctl.LogicalSize}
}

// SetCursor records the affordance for the status line.
func (h *cellHost) SetCursor(c canvasctl.Cursor) { h.cursor = c }

// SetScrollLocked records the drag lock for the status line.
func (h *cellHost) SetScrollLocked(locked bool) { h.locked = locked }

// App runs the widget on a tcell screen.
type App struct {
	screen   tcell.Screen
	scene    config.Scene
	renderer *audio.Renderer
	ctl      *canvasctl.Control
	host     *cellHost
	input    mouseInput
	tween    *pendulum.Tween
	bg       color.RGBA

	frameMu sync.Mutex
	frame   *image.RGBA

	audioMu sync.Mutex
	ctrl    *beep.Ctrl
}

// New builds the widget over a raster surface drawn onto screen.
// The screen must already be initialized.
func New(screen tcell.Screen, scene config.Scene, renderer *audio.Renderer) (*App, error) {
	a := &App{
		screen:   screen,
		scene:    scene,
		renderer: renderer,
		host:     &cellHost{cursor: canvasctl.CursorDefault},
	}

	palette, err := surface.PaletteFromHex(scene.Palette.Background, scene.Palette.Border, scene.Palette.Grid, scene.Palette.Listener, scene.Palette.Source)
	if err != nil {
		return nil, err
	}
	r, g, b, _ := palette.Background.RGBA()
	a.bg = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}

	a.tween, err = pendulum.NewTween(scene.Pendulum.Swing)
	if err != nil {
		return nil, err
	}
	a.tween.Start()

	ctx := spatial.NewContext(scene.Room, scene.Materials, renderer)
	a.ctl, err = canvasctl.New(surface.NewRaster(a.storeFrame), a.host, scene.CloneElements(), ctx.Callback())
	if err != nil {
		return nil, err
	}
	a.ctl.SetPalette(palette)

	screen.EnableMouse()
	return a, nil
}

// storeFrame keeps the latest widget frame for the next redraw.
func (a *App) storeFrame(img *image.RGBA) {
	a.frameMu.Lock()
	a.frame = img
	a.frameMu.Unlock()
}

// EnableSpeaker opens the system speaker and queues the paused binaural stream.
func (a *App) EnableSpeaker() error {
	rate := a.renderer.SampleRate()
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	a.audioMu.Lock()
	a.ctrl = &beep.Ctrl{Streamer: a.renderer.NewStream(), Paused: true}
	a.audioMu.Unlock()
	speaker.Play(a.ctrl)
	return nil
}

// ToggleAudio pauses or resumes speaker playback.
func (a *App) ToggleAudio() {
	a.audioMu.Lock()
	defer a.audioMu.Unlock()
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = !a.ctrl.Paused
	speaker.Unlock()
}

// playing reports whether the speaker stream is running.
func (a *App) playing() bool {
	a.audioMu.Lock()
	defer a.audioMu.Unlock()
	if a.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !a.ctrl.Paused
}

// HandleEvent applies one tcell event and reports whether the app should keep running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			a.ToggleAudio()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.input.apply(x-originX, y-originY, ev.Buttons()&tcell.Button1 != 0, a.ctl)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Draw paints the widget grid and the status lines.
func (a *App) Draw() {
	a.frameMu.Lock()
	frame := a.frame
	a.frameMu.Unlock()

	a.screen.Clear()
	if frame != nil {
		drawGrid(a.screen, frame, originX, originY, a.bg)
	}

	pos := a.renderer.Position()
	status := fmt.Sprintf("source x %+.3f z %+.3f  cursor %s", pos.X, pos.Z, a.host.cursor)
	if a.host.locked {
		status += "  dragging"
	}
	a.drawText(originX, 0, status)
	a.drawText(originX, originY+GridRows+1, fmt.Sprintf("pendulum %+.2f rad  audio %v", a.tween.Angle(), a.playing()))
	a.drawText(originX, originY+GridRows+2, "[drag] move source  [space] audio  [q] quit")
	a.screen.Show()
}

// drawText writes a single line of plain text.
func (a *App) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		a.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// Run polls events and redraws at a fixed tick until the user quits.
func (a *App) Run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.Draw()
		}
	}
}

// Close releases the speaker stream.
func (a *App) Close() {
	a.audioMu.Lock()
	defer a.audioMu.Unlock()
	if a.ctrl != nil {
		speaker.Clear()
		a.ctrl = nil
	}
}

// Elements returns the current widget elements.
func (a *App) Elements() []canvasctl.Element {
	return a.ctl.Elements()
}
