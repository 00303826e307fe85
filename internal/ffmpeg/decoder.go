// Package ffmpeg decodes audio files through an ffmpeg subprocess.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// Options configures the decoder.
type Options struct {
	FFmpegPath string
	SampleRate int
}

// Decoder converts any format ffmpeg understands into mono PCM samples.
type Decoder struct {
	path string
	rate int
}

// NewDecoder validates options and returns a decoder.
func NewDecoder(opts Options) (*Decoder, error) {
	if strings.TrimSpace(opts.FFmpegPath) == "" {
		return nil, errors.New("FFmpegPath is required")
	}
	if opts.SampleRate <= 0 {
		return nil, errors.New("SampleRate must be > 0")
	}
	return &Decoder{path: opts.FFmpegPath, rate: opts.SampleRate}, nil
}

// SampleRate returns the output sample rate.
func (d *Decoder) SampleRate() int {
	return d.rate
}

// Available reports whether the ffmpeg binary can be found.
func (d *Decoder) Available() bool {
	_, err := exec.LookPath(d.path)
	return err == nil
}

// Decode runs ffmpeg on input and returns mono samples in [-1,1].
func (d *Decoder) Decode(ctx context.Context, input string) ([]float64, error) {
	args := BuildDecodeArgs(input, d.rate)
	log.Printf("ffmpeg: decode %s %s", d.path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, d.path, args...)
	configureCmd(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("ffmpeg decode %s: %w: %s", input, err, msg)
		}
		return nil, fmt.Errorf("ffmpeg decode %s: %w", input, err)
	}
	samples := ParseS16LE(stdout.Bytes())
	if len(samples) == 0 {
		return nil, fmt.Errorf("ffmpeg decode %s: no samples", input)
	}
	return samples, nil
}

// BuildDecodeArgs returns args decoding input to mono signed 16-bit PCM on stdout.
func BuildDecodeArgs(input string, sampleRate int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-",
	}
}

// ParseS16LE converts little-endian signed 16-bit PCM into floats in [-1,1].
// A trailing odd byte is ignored.
func ParseS16LE(raw []byte) []float64 {
	out := make([]float64, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		out[i] = float64(v) / 32768
	}
	return out
}
