// Package app wires HTTP, signaling, audio and widget state together.
package app

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/frudas24/webspatium/internal/audio"
	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/control"
	"github.com/frudas24/webspatium/internal/mjpeg"
	"github.com/frudas24/webspatium/internal/session"
	"github.com/frudas24/webspatium/internal/signaling"
	"github.com/frudas24/webspatium/internal/surface"
	"github.com/frudas24/webspatium/internal/webrtc"
)

// App coordinates the HTTP API, websocket servers, preview and audio streams.
type App struct {
	cfg       config.Config
	scene     config.Scene
	session   *session.Session
	renderer  *audio.Renderer
	widget    *control.Widget
	control   *control.Server
	publisher *webrtc.Publisher
	signaling *signaling.Server
	preview   *mjpeg.Stream
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, scene config.Scene, sess *session.Session, renderer *audio.Renderer, policy control.ViewerPolicy) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if renderer == nil {
		return nil, errors.New("audio renderer is required")
	}

	palette, err := surface.PaletteFromHex(scene.Palette.Background, scene.Palette.Border, scene.Palette.Grid, scene.Palette.Listener, scene.Palette.Source)
	if err != nil {
		return nil, fmt.Errorf("scene palette: %w", err)
	}

	app := &App{
		cfg:      cfg,
		scene:    scene,
		session:  sess,
		renderer: renderer,
	}

	var extra []canvasctl.Surface
	if cfg.MJPEGEnabled {
		app.preview = mjpeg.NewStream(cfg.MJPEGInterval(), cfg.MJPEGQuality)
		extra = append(extra, surface.NewRaster(app.publishPreview))
	}

	app.widget, err = control.NewWidget(sess, control.WidgetOptions{
		Elements:     scene.CloneElements(),
		Palette:      palette,
		Room:         scene.Room,
		Sink:         renderer,
		MoveInterval: cfg.MoveThrottle(),
		Extra:        extra,
	})
	if err != nil {
		return nil, err
	}
	app.control = control.NewServer(app.widget, sess, policy)

	if cfg.WebRTCEnabled {
		app.publisher, err = webrtc.NewPublisher(app.widget)
		if err != nil {
			return nil, err
		}
		app.publisher.OnChannel(func() {
			sess.ViewerConnected(session.TransportWebRTC)
		}, func() {
			app.widget.Release()
			sess.ViewerDisconnected()
		})
		app.signaling = signaling.NewServer(app.publisher, policy)
	} else {
		app.signaling = signaling.NewServer(nil, policy)
	}

	return app, nil
}

// publishPreview encodes a presented widget frame into the MJPEG stream.
func (a *App) publishPreview(img *image.RGBA) {
	if a.preview == nil {
		return
	}
	if err := a.preview.PublishImage(img); err != nil {
		log.Printf("mjpeg: %v", err)
	}
}

// Close releases the WebRTC peer, if any.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.ClosePeer()
	}
}

// Widget returns the shared widget.
func (a *App) Widget() *control.Widget {
	return a.widget
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *signaling.Server {
	return a.signaling
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// PreviewStream returns the MJPEG preview stream, or nil when disabled.
func (a *App) PreviewStream() *mjpeg.Stream {
	return a.preview
}
