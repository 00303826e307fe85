// Package desktop hosts the spatial widget and pendulum in an ebiten window
// with local binaural playback.
package desktop

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"github.com/frudas24/webspatium/internal/audio"
	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/geom"
	"github.com/frudas24/webspatium/internal/pendulum"
	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/frudas24/webspatium/internal/surface"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// ScreenWidth is the logical window width.
	ScreenWidth = 640
	// ScreenHeight is the logical window height.
	ScreenHeight = 360

	widgetLeft = 20
	widgetTop  = 60

	// pendulum side view
	viewLeft   = 260
	viewTop    = 20
	viewWidth  = 360
	viewHeight = 320
	viewScale  = 36.0
)

var backdrop = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}

// windowHost places the widget inside the window and mirrors cursor state.
type windowHost struct {
	scrollLocked bool
}

// BoundingRect returns the widget rect in window coordinates.
func (h *windowHost) BoundingRect() geom.Rect {
	return geom.Rect{Left: widgetLeft, Top: widgetTop, Width: canvasctl.LogicalSize, Height: canvasctl.LogicalSize}
}

// SetCursor maps the widget affordance onto the OS cursor.
func (h *windowHost) SetCursor(c canvasctl.Cursor) {
	if c == canvasctl.CursorPointer {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

// SetScrollLocked records the drag lock; the window has nothing to scroll.
func (h *windowHost) SetScrollLocked(locked bool) {
	h.scrollLocked = locked
}

// Game implements ebiten.Game.
type Game struct {
	scene    config.Scene
	renderer *audio.Renderer
	ctl      *canvasctl.Control
	host     *windowHost
	input    dragInput
	tween    *pendulum.Tween

	frameMu sync.Mutex
	frame   *image.RGBA
	tex     *ebiten.Image

	audioCtx *ebaudio.Context
	player   *ebaudio.Player
}

// NewGame builds the widget over a raster surface and starts the pendulum.
func NewGame(scene config.Scene, renderer *audio.Renderer) (*Game, error) {
	g := &Game{
		scene:    scene,
		renderer: renderer,
		host:     &windowHost{},
	}

	palette, err := surface.PaletteFromHex(scene.Palette.Background, scene.Palette.Border, scene.Palette.Grid, scene.Palette.Listener, scene.Palette.Source)
	if err != nil {
		return nil, err
	}

	g.tween, err = pendulum.NewTween(scene.Pendulum.Swing)
	if err != nil {
		return nil, err
	}
	g.tween.Start()

	ctx := spatial.NewContext(scene.Room, scene.Materials, renderer)
	raster := surface.NewRaster(g.storeFrame)
	g.ctl, err = canvasctl.New(raster, g.host, scene.CloneElements(), ctx.Callback())
	if err != nil {
		return nil, err
	}
	g.ctl.SetPalette(palette)

	g.audioCtx = ebaudio.NewContext(int(renderer.SampleRate()))
	return g, nil
}

// storeFrame keeps the latest widget frame for upload in Draw.
func (g *Game) storeFrame(img *image.RGBA) {
	g.frameMu.Lock()
	g.frame = img
	g.frameMu.Unlock()
}

// ToggleAudio starts or pauses local playback.
func (g *Game) ToggleAudio() error {
	if g.player == nil {
		p, err := g.audioCtx.NewPlayer(g.renderer.NewReader())
		if err != nil {
			return fmt.Errorf("audio player: %w", err)
		}
		g.player = p
	}
	if g.player.IsPlaying() {
		g.player.Pause()
		return nil
	}
	g.player.Play()
	return nil
}

// Update handles input once per tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.ToggleAudio(); err != nil {
			log.Printf("desktop: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.tween.Running() {
			g.tween.Stop()
		} else {
			g.tween.Start()
		}
	}
	g.input.apply(readPointer(), g.host.BoundingRect(), g.ctl)
	return nil
}

// Draw renders the widget, the pendulum side view and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	g.drawWidget(screen)
	g.drawPendulum(screen)

	pos := g.renderer.Position()
	playing := g.player != nil && g.player.IsPlaying()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("source x %.3f  z %.3f", pos.X, pos.Z), widgetLeft, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("audio %v  [space] audio  [p] pendulum  [esc] quit", playing), widgetLeft, ScreenHeight-30)
}

// drawWidget uploads the latest raster frame and draws it at the widget rect.
func (g *Game) drawWidget(screen *ebiten.Image) {
	g.frameMu.Lock()
	frame := g.frame
	g.frame = nil
	g.frameMu.Unlock()

	if frame != nil {
		b := frame.Bounds()
		if g.tex == nil || g.tex.Bounds().Dx() != b.Dx() || g.tex.Bounds().Dy() != b.Dy() {
			g.tex = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.tex.WritePixels(frame.Pix)
	}
	if g.tex == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(widgetLeft, widgetTop)
	screen.DrawImage(g.tex, op)
}

// drawPendulum draws the swinging pendulum seen from the side, looking down the X axis.
func (g *Game) drawPendulum(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, viewLeft, viewTop, viewWidth, viewHeight, color.White, false)
	vector.StrokeRect(screen, viewLeft, viewTop, viewWidth, viewHeight, 1, color.Gray{Y: 0xcc}, false)

	opts := g.scene.Pendulum
	angle := g.tween.Angle()
	ball := opts.BallPosition(angle)

	px, py := g.toView(opts.Position.Z, opts.Position.Y)
	bx, by := g.toView(ball.Z, ball.Y)

	lineColor, err := surface.ParseColor(opts.LineColor, color.Gray{Y: 0xcc})
	if err != nil {
		lineColor = color.Gray{Y: 0xcc}
	}
	lineWidth := float32(math.Max(1, opts.LineRadius*2*viewScale))
	vector.StrokeLine(screen, px, py, bx, by, lineWidth, lineColor, true)

	box := float32(opts.BoxSize * viewScale)
	vector.DrawFilledRect(screen, px-box/2, py-box/2, box, box, color.Gray{Y: 0x33}, true)
	vector.DrawFilledCircle(screen, bx, by, float32(opts.BallRadius*viewScale), color.Gray{Y: 0x66}, true)
}

// toView maps world Z/Y onto the side view with the pivot near the top.
func (g *Game) toView(z, y float64) (float32, float32) {
	pivot := g.scene.Pendulum.Position
	cx := viewLeft + viewWidth/2 + (z-pivot.Z)*viewScale
	cy := viewTop + 40 - (y-pivot.Y)*viewScale
	return float32(cx), float32(cy)
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close stops playback.
func (g *Game) Close() {
	if g.player != nil {
		if err := g.player.Close(); err != nil {
			log.Printf("desktop: close player: %v", err)
		}
	}
}

