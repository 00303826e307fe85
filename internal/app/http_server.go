package app

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/session"
	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/frudas24/webspatium/internal/web"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "web-spatium"

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/hello", handleHello)
	mux.HandleFunc("/api/scene", a.handleScene)
	mux.HandleFunc("/api/state", a.handleState)
	mux.Handle("/ws/signal", a.Signaling())
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/audio/stream.wav", a.renderer.ServeWAV)
	mux.HandleFunc("/favicon.ico", handleFavicon)
	if stream := a.PreviewStream(); stream != nil {
		mux.HandleFunc("/mjpeg/widget", stream.Handler)
	}

	mux.Handle("/", staticFileServer(staticDir))
}

// Handler returns the mux wrapped in the trusted host and CORS middleware.
func (a *App) Handler(staticDir string) http.Handler {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, staticDir)
	return TrustedHosts(a.cfg.AllowedHosts, CORS(a.cfg.AllowedOrigins, mux))
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type helloResponse struct {
	Message string `json:"message"`
}

type stateResponse struct {
	session.Snapshot
	AudioStreams int `json:"audioStreams"`
}

type sceneResponse struct {
	config.Scene
	Current spatial.Vec3 `json:"current"`
	Size    int          `json:"size"`
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, healthResponse{Status: "healthy", Service: ServiceName})
}

// handleHello returns the greeting shown by the page.
func handleHello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, helloResponse{Message: "Hello from " + ServiceName + "!"})
}

// handleScene returns the scene description and the live source position.
func (a *App) handleScene(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, sceneResponse{
		Scene:   a.scene,
		Current: a.renderer.Position(),
		Size:    canvasctl.LogicalSize,
	})
}

// handleState returns the current widget and viewer state.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, stateResponse{
		Snapshot:     a.session.Snapshot(),
		AudioStreams: a.renderer.Streams(),
	})
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Printf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
