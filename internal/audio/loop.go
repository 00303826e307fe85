package audio

import "github.com/gopxl/beep"

// loop replays a seekable streamer forever.
type loop struct {
	s   beep.StreamSeeker
	err error
}

// Loop returns an endless streamer over s. An empty s ends immediately.
func Loop(s beep.StreamSeeker) beep.Streamer {
	return &loop{s: s}
}

// Stream fills samples, rewinding s whenever it runs out.
func (l *loop) Stream(samples [][2]float64) (int, bool) {
	if l.err != nil || l.s.Len() == 0 {
		return 0, false
	}
	filled := 0
	for filled < len(samples) {
		n, ok := l.s.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if err := l.s.Seek(0); err != nil {
				l.err = err
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

// Err returns the seek error that stopped the loop, if any.
func (l *loop) Err() error {
	if l.err != nil {
		return l.err
	}
	return l.s.Err()
}
