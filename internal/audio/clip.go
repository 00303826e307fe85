package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frudas24/webspatium/internal/ffmpeg"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const resampleQuality = 4

// Decoder converts non-WAV files into mono samples at the decoder rate.
type Decoder interface {
	SampleRate() int
	Decode(ctx context.Context, input string) ([]float64, error)
}

var _ Decoder = (*ffmpeg.Decoder)(nil)

// LoadClip reads the clip at path into memory at rate. WAV files are decoded
// directly; other formats go through dec. A missing file yields a synthesized chirp.
func LoadClip(ctx context.Context, path string, rate beep.SampleRate, dec Decoder) (*beep.Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("audio: %s not found, using synthesized chirp", path)
			return Chirp(rate), nil
		}
		return nil, fmt.Errorf("stat clip: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return loadWAV(path, rate)
	}
	if dec == nil {
		return nil, fmt.Errorf("no decoder for %s", filepath.Ext(path))
	}
	samples, err := dec.Decode(ctx, path)
	if err != nil {
		return nil, err
	}
	return FromSamples(samples, beep.SampleRate(dec.SampleRate()), rate), nil
}

// loadWAV decodes a WAV file and resamples it to rate.
func loadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(outputFormat(rate))
	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, streamer)
	}
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decode wav: empty clip")
	}
	return buf, nil
}

// FromSamples builds a clip from mono samples recorded at from, resampled to rate.
func FromSamples(samples []float64, from, rate beep.SampleRate) *beep.Buffer {
	pos := 0
	var s beep.Streamer = beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copyMono(out, samples[pos:])
		pos += n
		return n, true
	})
	if from != rate && from > 0 {
		s = beep.Resample(resampleQuality, from, rate, s)
	}
	buf := beep.NewBuffer(outputFormat(rate))
	buf.Append(s)
	return buf
}

// Chirp synthesizes a short bird-like call followed by silence.
func Chirp(rate beep.SampleRate) *beep.Buffer {
	const (
		notes   = 3
		noteDur = 90 * time.Millisecond
		gapDur  = 60 * time.Millisecond
		restDur = 600 * time.Millisecond
	)
	noteLen := rate.N(noteDur)
	gapLen := rate.N(gapDur)
	samples := make([]float64, 0, notes*(noteLen+gapLen)+rate.N(restDur))
	for k := 0; k < notes; k++ {
		start, end := 2800.0+float64(k)*400, 4200.0+float64(k)*300
		phase := 0.0
		for i := 0; i < noteLen; i++ {
			t := float64(i) / float64(noteLen)
			freq := start + (end-start)*t
			phase += 2 * math.Pi * freq / float64(rate)
			env := math.Sin(math.Pi * t)
			samples = append(samples, 0.6*env*math.Sin(phase))
		}
		samples = append(samples, make([]float64, gapLen)...)
	}
	samples = append(samples, make([]float64, rate.N(restDur))...)
	return FromSamples(samples, rate, rate)
}

// copyMono writes mono samples into both channels of out.
func copyMono(out [][2]float64, in []float64) int {
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	for i := 0; i < n; i++ {
		out[i] = [2]float64{in[i], in[i]}
	}
	return n
}

// outputFormat is the 16-bit stereo format every stream is rendered in.
func outputFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}
