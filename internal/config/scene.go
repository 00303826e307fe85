package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/pendulum"
	"github.com/frudas24/webspatium/internal/spatial"
	"gopkg.in/yaml.v3"
)

// PaletteHex holds the widget colours as "#rrggbb" strings.
type PaletteHex struct {
	Background string `json:"background" yaml:"background"`
	Border     string `json:"border" yaml:"border"`
	Grid       string `json:"grid" yaml:"grid"`
	Listener   string `json:"listener" yaml:"listener"`
	Source     string `json:"source" yaml:"source"`
}

// CameraPreset is a named camera placement looking at a target.
type CameraPreset struct {
	Position spatial.Vec3 `json:"position" yaml:"position"`
	LookAt   spatial.Vec3 `json:"lookAt" yaml:"lookAt"`
}

// Camera holds the perspective camera and orbit controls settings.
type Camera struct {
	FOV     float64                 `json:"fov" yaml:"fov"`
	Near    float64                 `json:"near" yaml:"near"`
	Far     float64                 `json:"far" yaml:"far"`
	Damping float64                 `json:"damping" yaml:"damping"`
	Presets map[string]CameraPreset `json:"presets" yaml:"presets"`
}

// Scene is the static description served to every host.
type Scene struct {
	Room      spatial.Room        `json:"room" yaml:"room"`
	Materials spatial.Materials   `json:"materials" yaml:"materials"`
	Source    spatial.Vec3        `json:"source" yaml:"source"`
	Elements  []canvasctl.Element `json:"elements" yaml:"elements"`
	Palette   PaletteHex          `json:"palette" yaml:"palette"`
	Pendulum  pendulum.Options    `json:"pendulum" yaml:"pendulum"`
	Camera    Camera              `json:"camera" yaml:"camera"`
}

// DefaultScene returns the built-in scene.
func DefaultScene() Scene {
	return Scene{
		Room:      spatial.DefaultRoom(),
		Materials: spatial.DefaultMaterials(),
		Source:    spatial.DefaultSourcePosition,
		Elements:  canvasctl.DefaultElements(),
		Palette: PaletteHex{
			Background: "#f8fafc",
			Border:     "#e2e8f0",
			Grid:       "#e2e8f0",
			Listener:   "#9333ea",
			Source:     "#000000",
		},
		Pendulum: pendulum.DefaultOptions(),
		Camera: Camera{
			FOV:     75,
			Near:    0.1,
			Far:     1000,
			Damping: 0.1,
			Presets: map[string]CameraPreset{
				"default": {Position: spatial.Vec3{Z: 5}},
				"front":   {Position: spatial.Vec3{X: 5}},
			},
		},
	}
}

// LoadScene reads a YAML scene over the defaults. A missing file yields the defaults.
func LoadScene(path string) (Scene, error) {
	scene := DefaultScene()
	if path == "" {
		return scene, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return scene, nil
		}
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes YAML over the defaults and validates the result.
func ParseScene(data []byte) (Scene, error) {
	scene := DefaultScene()
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("parse scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return Scene{}, err
	}
	return scene, nil
}

// Validate checks the scene for values the widget and renderer cannot use.
func (s Scene) Validate() error {
	if s.Room.Width <= 0 || s.Room.Height <= 0 || s.Room.Depth <= 0 {
		return errors.New("room dimensions must be > 0")
	}
	sources := 0
	for i, el := range s.Elements {
		if el.X < 0 || el.X > 1 || el.Y < 0 || el.Y > 1 {
			return fmt.Errorf("element %d position must be within 0-1", i)
		}
		if el.Radius <= 0 || el.Radius > 1 {
			return fmt.Errorf("element %d radius must be within 0-1", i)
		}
		if el.Type == canvasctl.TypeSource {
			sources++
		}
	}
	if sources > 1 {
		return errors.New("scene supports a single source")
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return errors.New("camera near/far must satisfy 0 < near < far")
	}
	return s.Pendulum.Validate()
}

// CloneElements returns a fresh copy of the scene elements for a widget.
func (s Scene) CloneElements() []canvasctl.Element {
	out := make([]canvasctl.Element, len(s.Elements))
	copy(out, s.Elements)
	return out
}
