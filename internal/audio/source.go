// Package audio renders the demo clip binaurally for the current source position.
package audio

import (
	"sync"

	"github.com/frudas24/webspatium/internal/spatial"
)

// Source is the sound source position shared between the widget and every stream.
type Source struct {
	mu  sync.RWMutex
	pos spatial.Vec3
}

var _ spatial.PositionSink = (*Source)(nil)

// NewSource returns a source at pos.
func NewSource(pos spatial.Vec3) *Source {
	return &Source{pos: pos}
}

// SetPosition moves the source.
func (s *Source) SetPosition(x, y, z float64) {
	s.mu.Lock()
	s.pos = spatial.Vec3{X: x, Y: y, Z: z}
	s.mu.Unlock()
}

// Position returns the current source position.
func (s *Source) Position() spatial.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pos
}
