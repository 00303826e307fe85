package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad_Defaults verifies defaults without overrides.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:8000" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.MoveThrottle() != 16*time.Millisecond {
		t.Fatalf("expected 16ms throttle, got %v", cfg.MoveThrottle())
	}
	if cfg.ScenePath != filepath.Join("./data", "scene.yaml") {
		t.Fatalf("unexpected scene path %q", cfg.ScenePath)
	}
	if len(cfg.AllowedHosts) != 3 || cfg.AllowedHosts[2] != "*.localhost" {
		t.Fatalf("unexpected allowed hosts %v", cfg.AllowedHosts)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("unexpected allowed origins %v", cfg.AllowedOrigins)
	}
	if cfg.AudioVolume != 0 {
		t.Fatalf("expected unchanged volume, got %v", cfg.AudioVolume)
	}
}

// TestLoad_Overrides verifies env overrides are applied.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("DATA_DIR", "/tmp/spatium")
	t.Setenv("MOVE_THROTTLE_MS", "32")
	t.Setenv("MJPEG_ENABLED", "off")
	t.Setenv("ALLOWED_HOSTS", " example.com , ")
	t.Setenv("AUDIO_VOLUME", "-1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.MoveThrottleMs != 32 || cfg.MJPEGEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.AudioPath != filepath.Join("/tmp/spatium", "bird.wav") {
		t.Fatalf("expected audio path under data dir, got %q", cfg.AudioPath)
	}
	if len(cfg.AllowedHosts) != 1 || cfg.AllowedHosts[0] != "example.com" {
		t.Fatalf("unexpected allowed hosts %v", cfg.AllowedHosts)
	}
	if cfg.AudioVolume != -1.5 {
		t.Fatalf("expected volume -1.5, got %v", cfg.AudioVolume)
	}
}

// TestLoad_InvalidValues verifies validation errors.
func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"MJPEG_QUALITY", "0"},
		{"SAMPLE_RATE", "abc"},
		{"MOVE_THROTTLE_MS", "-1"},
		{"AUDIO_VOLUME", "loud"},
		{"AUDIO_VOLUME", "9"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

// TestParseEnvLine verifies .env parsing.
func TestParseEnvLine(t *testing.T) {
	key, value, ok := parseEnvLine(`export AUDIO_PATH="./data/bird.wav"`)
	if !ok || key != "AUDIO_PATH" || value != "./data/bird.wav" {
		t.Fatalf("unexpected parse: %q=%q ok=%v", key, value, ok)
	}
	if _, _, ok := parseEnvLine("# comment"); ok {
		t.Fatalf("expected comment to be skipped")
	}
	if _, _, ok := parseEnvLine("NOEQUALS"); ok {
		t.Fatalf("expected line without = to be skipped")
	}
}

// TestLoadEnvFile_ExistingWins verifies env vars take precedence over the file.
func TestLoadEnvFile_ExistingWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SPATIUM_A=file\nSPATIUM_B=file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SPATIUM_A", "env")
	t.Setenv("SPATIUM_B", "")
	os.Unsetenv("SPATIUM_B")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Unsetenv("SPATIUM_B")
	if os.Getenv("SPATIUM_A") != "env" {
		t.Fatalf("expected existing env to win")
	}
	if os.Getenv("SPATIUM_B") != "file" {
		t.Fatalf("expected file value, got %q", os.Getenv("SPATIUM_B"))
	}
}
