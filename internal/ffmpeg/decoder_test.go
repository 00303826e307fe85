package ffmpeg

import (
	"context"
	"strings"
	"testing"
)

// TestNewDecoder_Validation verifies required options.
func TestNewDecoder_Validation(t *testing.T) {
	if _, err := NewDecoder(Options{SampleRate: 44100}); err == nil {
		t.Fatalf("expected error without ffmpeg path")
	}
	if _, err := NewDecoder(Options{FFmpegPath: "ffmpeg"}); err == nil {
		t.Fatalf("expected error without sample rate")
	}
}

// TestBuildDecodeArgs verifies the decode preset.
func TestBuildDecodeArgs(t *testing.T) {
	args := strings.Join(BuildDecodeArgs("bird.mp3", 48000), " ")
	for _, want := range []string{"-i bird.mp3", "-ac 1", "-ar 48000", "-f s16le", " -"} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected %q in %q", want, args)
		}
	}
}

// TestParseS16LE verifies PCM conversion and odd trailing bytes.
func TestParseS16LE(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x80, 0x7f}
	got := ParseS16LE(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	if got[0] != 0 || got[1] != 0.5 || got[2] != -1 {
		t.Fatalf("unexpected samples: %v", got)
	}
}

// TestDecode_MissingBinary verifies a missing ffmpeg binary is reported.
func TestDecode_MissingBinary(t *testing.T) {
	d, err := NewDecoder(Options{FFmpegPath: "/nonexistent/ffmpeg-spatium", SampleRate: 44100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Available() {
		t.Fatalf("expected binary unavailable")
	}
	if _, err := d.Decode(context.Background(), "bird.mp3"); err == nil {
		t.Fatalf("expected error for missing binary")
	}
}
