package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/webspatium/internal/app"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/control"
	"github.com/frudas24/webspatium/internal/session"
	"github.com/frudas24/webspatium/internal/webrtc"
)

// run wires the application and blocks until shutdown.
func run(debug bool, staticDir string, reject bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	control.SetDebugLogging(debug)
	webrtc.SetDebugLogging(debug)
	if debug {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	assets, err := app.LoadAssets(ctx, cfg)
	if err != nil {
		return err
	}

	policy := control.ViewerReplace
	if reject {
		policy = control.ViewerReject
	}

	appInstance, err := app.New(cfg, assets.Scene, session.New(), assets.Renderer, policy)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           appInstance.Handler(staticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("web-spatium starting")
	logEnvStatus(cfg)
	logFileStatus("scene", cfg.ScenePath)
	logFileStatus("audio", cfg.AudioPath)
	logFFmpegStatus(cfg.FFmpegPath)
	log.Printf("sample rate: %d Hz", cfg.SampleRate)
	log.Printf("mjpeg preview: %v (interval %s, quality %d)", cfg.MJPEGEnabled, cfg.MJPEGInterval(), cfg.MJPEGQuality)
	log.Printf("webrtc control: %v", cfg.WebRTCEnabled)
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
}

// logFileStatus reports whether an optional data file exists.
func logFileStatus(name, path string) {
	if fileExists(path) {
		log.Printf("%s check: ok (%s)", name, path)
		return
	}
	log.Printf("%s check: missing (%s), using built-in default", name, path)
}

// logFFmpegStatus reports whether the ffmpeg binary is discoverable.
func logFFmpegStatus(path string) {
	resolved := path
	ok := false
	note := ""

	if filepath.IsAbs(path) {
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			ok = true
		case err != nil:
			note = err.Error()
		default:
			note = "path is a directory"
		}
	} else {
		found, err := exec.LookPath(path)
		switch {
		case err == nil:
			ok = true
			resolved = found
		case errors.Is(err, exec.ErrDot):
			note = "found relative to current dir; use absolute path"
		default:
			note = err.Error()
		}
	}

	if ok {
		log.Printf("ffmpeg check: ok (%s)", resolved)
		return
	}
	if note != "" {
		log.Printf("ffmpeg check: missing (%s), only WAV clips can load", note)
		return
	}
	log.Printf("ffmpeg check: missing")
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
