package audio

import (
	"math"

	"github.com/frudas24/webspatium/internal/spatial"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	// EarOffset is the distance of each ear from the listener centre on X, in metres.
	EarOffset = 0.08
	// speedOfSound is in metres per second.
	speedOfSound = 343
	// minDistance avoids infinite gain when the source sits on an ear.
	minDistance = 0.25
	// dopplerQuality is the resampling quality used for propagation delay.
	dopplerQuality = 2
)

// earDistance returns the distance from p to the ear at x offset.
func earDistance(p spatial.Vec3, offset float64) float64 {
	return math.Max(minDistance, math.Sqrt((p.X-offset)*(p.X-offset)+p.Y*p.Y+p.Z*p.Z))
}

// EarGains returns the left and right amplitude for a source at p, normalized
// so a source at the minimum distance plays at unit gain.
func EarGains(p spatial.Vec3) (left, right float64) {
	return minDistance / earDistance(p, -EarOffset), minDistance / earDistance(p, EarOffset)
}

// routeChannel keeps one output channel and applies a distance gain to it.
func routeChannel(s beep.Streamer, channel int, gain func() float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		g := gain()
		for i := range samples[:n] {
			v := samples[i][0]
			if channel == 1 {
				v = samples[i][1]
			}
			samples[i] = [2]float64{}
			samples[i][channel] = v * g
		}
		return n, ok
	})
}

// NewBinaural renders s for a listener at the origin facing -Z. Each ear gets
// its own propagation delay and distance gain from src.
func NewBinaural(rate beep.SampleRate, s beep.Streamer, src *Source) beep.Streamer {
	samplesPerMeter := float64(rate) / speedOfSound

	leftIn, rightIn := beep.Dup(s)

	left := effects.Doppler(dopplerQuality, samplesPerMeter, leftIn, func(int) float64 {
		return earDistance(src.Position(), -EarOffset)
	})
	right := effects.Doppler(dopplerQuality, samplesPerMeter, rightIn, func(int) float64 {
		return earDistance(src.Position(), EarOffset)
	})

	left = routeChannel(left, 0, func() float64 {
		l, _ := EarGains(src.Position())
		return l
	})
	right = routeChannel(right, 1, func() float64 {
		_, r := EarGains(src.Position())
		return r
	})

	return beep.Mix(left, right)
}
