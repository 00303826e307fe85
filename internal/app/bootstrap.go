package app

import (
	"context"
	"fmt"

	"github.com/frudas24/webspatium/internal/audio"
	"github.com/frudas24/webspatium/internal/config"
	"github.com/frudas24/webspatium/internal/ffmpeg"
	"github.com/gopxl/beep"
)

// Assets holds what every host needs before it can draw and play the scene.
type Assets struct {
	Scene    config.Scene
	Decoder  *ffmpeg.Decoder
	Renderer *audio.Renderer
}

// LoadAssets reads the scene and audio clip named by cfg.
func LoadAssets(ctx context.Context, cfg config.Config) (Assets, error) {
	scene, err := config.LoadScene(cfg.ScenePath)
	if err != nil {
		return Assets{}, fmt.Errorf("load scene: %w", err)
	}

	dec, err := ffmpeg.NewDecoder(ffmpeg.Options{FFmpegPath: cfg.FFmpegPath, SampleRate: cfg.SampleRate})
	if err != nil {
		return Assets{}, err
	}

	clip, err := audio.LoadClip(ctx, cfg.AudioPath, beep.SampleRate(cfg.SampleRate), dec)
	if err != nil {
		return Assets{}, fmt.Errorf("load audio: %w", err)
	}

	renderer, err := audio.NewRenderer(clip, scene.Source)
	if err != nil {
		return Assets{}, err
	}
	renderer.SetVolume(cfg.AudioVolume)

	return Assets{Scene: scene, Decoder: dec, Renderer: renderer}, nil
}
