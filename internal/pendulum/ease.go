package pendulum

import (
	"fmt"
	"math"
	"strings"
)

// EaseFunc maps progress t in [0,1] to eased progress in [0,1].
type EaseFunc func(t float64) float64

var eases = map[string]EaseFunc{
	"none":   Linear,
	"linear": Linear,
}

func init() {
	for n := 1; n <= 4; n++ {
		exp := float64(n + 1)
		name := fmt.Sprintf("power%d", n)
		eases[name+".in"] = powIn(exp)
		eases[name+".out"] = powOut(exp)
		eases[name+".inOut"] = powInOut(exp)
		eases[name] = powOut(exp)
	}
	eases["sine.in"] = SineIn
	eases["sine.out"] = SineOut
	eases["sine.inOut"] = SineInOut
	eases["sine"] = SineOut
}

// Ease returns the named ease. Names follow the "power1.inOut" form; a bare
// family name means its ".out" variant.
func Ease(name string) (EaseFunc, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Linear, nil
	}
	if fn, ok := eases[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// powIn starts slow and ends fast: t^exp.
func powIn(exp float64) EaseFunc {
	return func(t float64) float64 {
		return math.Pow(t, exp)
	}
}

// powOut starts fast and ends slow: 1-(1-t)^exp.
func powOut(exp float64) EaseFunc {
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, exp)
	}
}

// powInOut is slow at both ends.
func powInOut(exp float64) EaseFunc {
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, exp) / 2
		}
		return 1 - math.Pow(-2*t+2, exp)/2
	}
}

// SineIn eases in along a quarter sine.
func SineIn(t float64) float64 {
	return 1 - math.Cos(t*math.Pi/2)
}

// SineOut eases out along a quarter sine.
func SineOut(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// SineInOut eases both ends along a half cosine.
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
