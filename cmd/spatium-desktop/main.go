// Package main opens the spatial widget in a desktop window.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/frudas24/webspatium/internal/app"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/desktop"
	"github.com/hajimehoshi/ebiten/v2"
)

// main is the entrypoint for the desktop host.
func main() {
	autoplay := flag.Bool("audio", false, "Start audio playback immediately")
	flag.Parse()

	if err := run(*autoplay); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

// run loads the scene and blocks until the window closes.
func run(autoplay bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	assets, err := app.LoadAssets(context.Background(), cfg)
	if err != nil {
		return err
	}

	game, err := desktop.NewGame(assets.Scene, assets.Renderer)
	if err != nil {
		return err
	}
	defer game.Close()
	if autoplay {
		if err := game.ToggleAudio(); err != nil {
			return err
		}
	}

	ebiten.SetWindowSize(desktop.ScreenWidth*2, desktop.ScreenHeight*2)
	ebiten.SetWindowTitle("web-spatium")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	log.Printf("desktop: window %dx%d", desktop.ScreenWidth, desktop.ScreenHeight)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
