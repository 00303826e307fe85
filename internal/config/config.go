// Package config loads environment configuration for web-spatium.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr      = "0.0.0.0:8000"
	defaultDataDir         = "./data"
	defaultFFmpegPath      = "ffmpeg"
	defaultSampleRate      = 44100
	defaultAudioVolume     = 0.0
	defaultMJPEGEnabled    = true
	defaultMJPEGIntervalMs = 50
	defaultMJPEGQuality    = 80
	defaultMoveThrottleMs  = 16
	defaultAllowedHosts    = "localhost,127.0.0.1,*.localhost"
	defaultAllowedOrigins  = "http://localhost:8000,http://127.0.0.1:8000"
	defaultWebRTCEnabled   = true
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr      string
	DataDir         string
	ScenePath       string
	AudioPath       string
	FFmpegPath      string
	SampleRate      int
	AudioVolume     float64
	MJPEGEnabled    bool
	MJPEGIntervalMs int
	MJPEGQuality    int
	MoveThrottleMs  int
	AllowedHosts    []string
	AllowedOrigins  []string
	WebRTCEnabled   bool
}

// MoveThrottle returns the widget move interval.
func (c Config) MoveThrottle() time.Duration {
	return time.Duration(c.MoveThrottleMs) * time.Millisecond
}

// MJPEGInterval returns the minimum time between preview frames.
func (c Config) MJPEGInterval() time.Duration {
	return time.Duration(c.MJPEGIntervalMs) * time.Millisecond
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      defaultListenAddr,
		DataDir:         defaultDataDir,
		FFmpegPath:      defaultFFmpegPath,
		SampleRate:      defaultSampleRate,
		AudioVolume:     defaultAudioVolume,
		MJPEGEnabled:    defaultMJPEGEnabled,
		MJPEGIntervalMs: defaultMJPEGIntervalMs,
		MJPEGQuality:    defaultMJPEGQuality,
		MoveThrottleMs:  defaultMoveThrottleMs,
		WebRTCEnabled:   defaultWebRTCEnabled,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ScenePath = envString("SCENE_PATH", filepath.Join(cfg.DataDir, "scene.yaml"))
	cfg.AudioPath = envString("AUDIO_PATH", filepath.Join(cfg.DataDir, "bird.wav"))
	cfg.FFmpegPath = envString("FFMPEG_PATH", cfg.FFmpegPath)
	cfg.AllowedHosts = envList("ALLOWED_HOSTS", defaultAllowedHosts)
	cfg.AllowedOrigins = envList("ALLOWED_ORIGINS", defaultAllowedOrigins)

	sampleRate, err := envInt("SAMPLE_RATE", cfg.SampleRate)
	if err != nil {
		return Config{}, err
	}
	if sampleRate < 8000 || sampleRate > 192000 {
		return Config{}, fmt.Errorf("SAMPLE_RATE must be 8000-192000")
	}
	cfg.SampleRate = sampleRate

	volume, err := envFloat("AUDIO_VOLUME", cfg.AudioVolume)
	if err != nil {
		return Config{}, err
	}
	if volume < -10 || volume > 4 {
		return Config{}, fmt.Errorf("AUDIO_VOLUME must be -10 to 4")
	}
	cfg.AudioVolume = volume

	cfg.MJPEGEnabled = envBool("MJPEG_ENABLED", cfg.MJPEGEnabled)

	mjpegInterval, err := envInt("MJPEG_INTERVAL_MS", cfg.MJPEGIntervalMs)
	if err != nil {
		return Config{}, err
	}
	if mjpegInterval <= 0 {
		return Config{}, fmt.Errorf("MJPEG_INTERVAL_MS must be > 0")
	}
	cfg.MJPEGIntervalMs = mjpegInterval

	mjpegQuality, err := envInt("MJPEG_QUALITY", cfg.MJPEGQuality)
	if err != nil {
		return Config{}, err
	}
	if mjpegQuality <= 0 || mjpegQuality > 100 {
		return Config{}, fmt.Errorf("MJPEG_QUALITY must be 1-100")
	}
	cfg.MJPEGQuality = mjpegQuality

	throttle, err := envInt("MOVE_THROTTLE_MS", cfg.MoveThrottleMs)
	if err != nil {
		return Config{}, err
	}
	if throttle < 0 {
		return Config{}, fmt.Errorf("MOVE_THROTTLE_MS must be >= 0")
	}
	cfg.MoveThrottleMs = throttle

	cfg.WebRTCEnabled = envBool("WEBRTC_ENABLED", cfg.WebRTCEnabled)

	if len(cfg.AllowedHosts) == 0 {
		return Config{}, errors.New("ALLOWED_HOSTS must not be empty")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envList returns a comma separated env override, otherwise the default list.
func envList(key, def string) []string {
	raw := envString(key, def)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
