// Package main runs the spatial widget in a terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/frudas24/webspatium/internal/app"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/term"
	"github.com/gdamore/tcell/v2"
)

// main is the entrypoint for the terminal host.
func main() {
	mute := flag.Bool("mute", false, "Do not open the system speaker")
	logPath := flag.String("log", "", "Write logs to this file while the screen is active")
	flag.Parse()

	if err := run(*mute, *logPath); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

// run loads the scene and blocks until the user quits.
func run(mute bool, logPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	assets, err := app.LoadAssets(context.Background(), cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	prev := log.Writer()
	defer log.SetOutput(prev)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	a, err := term.New(screen, assets.Scene, assets.Renderer)
	if err != nil {
		return err
	}
	defer a.Close()
	if !mute {
		if err := a.EnableSpeaker(); err != nil {
			log.Printf("audio: %v", err)
		}
	}

	a.Run()
	return nil
}
