package audio

import (
	"encoding/binary"
	"io"

	"github.com/gopxl/beep"
)

// PCMReader encodes a streamer as 16-bit little-endian interleaved stereo.
type PCMReader struct {
	s       beep.Streamer
	format  beep.Format
	samples [][2]float64
	pending []byte
	done    bool
}

var _ io.Reader = (*PCMReader)(nil)

// NewPCMReader returns a reader pulling from s at rate.
func NewPCMReader(s beep.Streamer, rate beep.SampleRate) *PCMReader {
	return &PCMReader{
		s:       s,
		format:  outputFormat(rate),
		samples: make([][2]float64, 512),
	}
}

// Read fills p with encoded frames. It returns io.EOF once the streamer ends.
func (r *PCMReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.done {
			if err := r.s.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		r.fill()
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// fill renders the next block of frames into pending.
func (r *PCMReader) fill() {
	n, ok := r.s.Stream(r.samples)
	if !ok {
		r.done = true
	}
	frame := r.format.Width()
	buf := make([]byte, n*frame)
	for i := 0; i < n; i++ {
		r.format.EncodeSigned(buf[i*frame:], r.samples[i])
	}
	r.pending = buf
}

// WAVHeader returns a 44-byte PCM WAV header. A zero dataLen advertises the
// maximum length for endless streams.
func WAVHeader(rate beep.SampleRate, dataLen uint32) []byte {
	const (
		channels      = 2
		bitsPerSample = 16
	)
	if dataLen == 0 {
		dataLen = 0xFFFFFFFF - 36
	}
	blockAlign := channels * bitsPerSample / 8
	h := make([]byte, 44)
	copy(h[0:], "RIFF")
	binary.LittleEndian.PutUint32(h[4:], 36+dataLen)
	copy(h[8:], "WAVE")
	copy(h[12:], "fmt ")
	binary.LittleEndian.PutUint32(h[16:], 16)
	binary.LittleEndian.PutUint16(h[20:], 1)
	binary.LittleEndian.PutUint16(h[22:], channels)
	binary.LittleEndian.PutUint32(h[24:], uint32(rate))
	binary.LittleEndian.PutUint32(h[28:], uint32(int(rate)*blockAlign))
	binary.LittleEndian.PutUint16(h[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:], bitsPerSample)
	copy(h[36:], "data")
	binary.LittleEndian.PutUint32(h[40:], dataLen)
	return h
}
