package audio

import (
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	// streamChunk is how much audio is written per tick of an HTTP stream.
	streamChunk = 50 * time.Millisecond
	// streamLead is how far the HTTP stream runs ahead of real time.
	streamLead = 250 * time.Millisecond
)

// Renderer owns the decoded clip and the shared source position.
type Renderer struct {
	rate    beep.SampleRate
	clip    *beep.Buffer
	source  *Source
	volume  atomic.Uint64
	streams atomic.Int32
}

var _ spatial.PositionSink = (*Renderer)(nil)

// NewRenderer returns a renderer over clip. The source starts at start.
func NewRenderer(clip *beep.Buffer, start spatial.Vec3) (*Renderer, error) {
	if clip == nil || clip.Len() == 0 {
		return nil, fmt.Errorf("audio clip is empty")
	}
	return &Renderer{
		rate:   clip.Format().SampleRate,
		clip:   clip,
		source: NewSource(start),
	}, nil
}

// SampleRate returns the output sample rate.
func (r *Renderer) SampleRate() beep.SampleRate {
	return r.rate
}

// SetVolume sets the master volume in log2 steps; 0 is unchanged.
// Streams opened afterwards use the new volume.
func (r *Renderer) SetVolume(v float64) {
	r.volume.Store(math.Float64bits(v))
}

// Volume returns the master volume in log2 steps.
func (r *Renderer) Volume() float64 {
	return math.Float64frombits(r.volume.Load())
}

// SetPosition moves the source.
func (r *Renderer) SetPosition(x, y, z float64) {
	r.source.SetPosition(x, y, z)
}

// Position returns the current source position.
func (r *Renderer) Position() spatial.Vec3 {
	return r.source.Position()
}

// Streams returns the number of open HTTP streams.
func (r *Renderer) Streams() int {
	return int(r.streams.Load())
}

// NewStream returns an endless binaural stream following the source.
func (r *Renderer) NewStream() beep.Streamer {
	looped := Loop(r.clip.Streamer(0, r.clip.Len()))
	return &effects.Volume{
		Streamer: NewBinaural(r.rate, looped, r.source),
		Base:     2,
		Volume:   r.Volume(),
	}
}

// NewReader returns the stream as 16-bit little-endian stereo PCM.
func (r *Renderer) NewReader() io.Reader {
	return NewPCMReader(r.NewStream(), r.rate)
}

// ServeWAV streams an endless WAV paced to real time until the client leaves.
func (r *Renderer) ServeWAV(w http.ResponseWriter, req *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")

	r.streams.Add(1)
	defer r.streams.Add(-1)

	pcm := r.NewReader()
	frame := outputFormat(r.rate).Width()
	chunk := make([]byte, r.rate.N(streamChunk)*frame)
	lead := make([]byte, r.rate.N(streamLead)*frame)

	if _, err := w.Write(WAVHeader(r.rate, 0)); err != nil {
		return
	}
	if err := copyChunk(w, pcm, lead); err != nil {
		return
	}
	fl.Flush()

	tick := time.NewTicker(streamChunk)
	defer tick.Stop()
	for {
		select {
		case <-req.Context().Done():
			return
		case <-tick.C:
			if err := copyChunk(w, pcm, chunk); err != nil {
				if err != io.EOF {
					log.Printf("audio: stream: %v", err)
				}
				return
			}
			fl.Flush()
		}
	}
}

// copyChunk reads exactly len(buf) bytes from src and writes them to dst.
func copyChunk(dst io.Writer, src io.Reader, buf []byte) error {
	if _, err := io.ReadFull(src, buf); err != nil {
		return err
	}
	_, err := dst.Write(buf)
	return err
}
