package pendulum

import (
	"math"
	"testing"
	"time"
)

// approx compares floats with a small tolerance.
func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestEase_Lookup verifies named eases resolve and unknown names fail.
func TestEase_Lookup(t *testing.T) {
	for _, name := range []string{"", "none", "power1.inOut", "power4.in", "sine.out", "power2"} {
		fn, err := Ease(name)
		if err != nil {
			t.Fatalf("expected %q to resolve, got %v", name, err)
		}
		if !approx(fn(0), 0) || !approx(fn(1), 1) {
			t.Fatalf("expected %q to map 0->0 and 1->1", name)
		}
	}
	if _, err := Ease("bounce.out"); err == nil {
		t.Fatalf("expected error for unknown ease")
	}
}

// TestEase_Power1InOutMidpoint verifies the symmetric ease passes through 0.5.
func TestEase_Power1InOutMidpoint(t *testing.T) {
	fn, _ := Ease("power1.inOut")
	if !approx(fn(0.5), 0.5) {
		t.Fatalf("expected 0.5, got %v", fn(0.5))
	}
	if !approx(fn(0.25), 0.125) {
		t.Fatalf("expected 0.125, got %v", fn(0.25))
	}
}

// TestTween_YoyoSwing verifies the default swing goes out and back.
func TestTween_YoyoSwing(t *testing.T) {
	tw, err := NewTween(DefaultOptions().Swing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		at   time.Duration
		want float64
	}{
		{0, -0.3},
		{750 * time.Millisecond, 0},
		{1500 * time.Millisecond, 0.3},
		{2250 * time.Millisecond, 0},
		{3000 * time.Millisecond, -0.3},
		{3750 * time.Millisecond, 0},
	}
	for _, tc := range cases {
		if got := tw.At(tc.at); !approx(got, tc.want) {
			t.Fatalf("at %v expected %v, got %v", tc.at, tc.want, got)
		}
	}
}

// TestTween_FiniteRepeatHoldsEnd verifies a finite tween stops on its last value.
func TestTween_FiniteRepeatHoldsEnd(t *testing.T) {
	tw, err := NewTween(Swing{From: 0, To: 1, Duration: 1, Repeat: 1, Yoyo: true, Delay: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tw.At(250 * time.Millisecond); got != 0 {
		t.Fatalf("expected start value during delay, got %v", got)
	}
	if got := tw.At(10 * time.Second); !approx(got, 0) {
		t.Fatalf("expected yoyo end at 0, got %v", got)
	}
}

// TestTween_StartStop verifies the clock-driven angle.
func TestTween_StartStop(t *testing.T) {
	tw, _ := NewTween(DefaultOptions().Swing)
	now := time.Unix(0, 0)
	tw.SetNowFunc(func() time.Time { return now })

	if tw.Running() || tw.Angle() != -0.3 {
		t.Fatalf("expected stopped tween at -0.3")
	}
	tw.Start()
	now = now.Add(1500 * time.Millisecond)
	if got := tw.Angle(); !approx(got, 0.3) {
		t.Fatalf("expected 0.3, got %v", got)
	}
	tw.Stop()
	if got := tw.Angle(); got != -0.3 {
		t.Fatalf("expected -0.3 after stop, got %v", got)
	}
}

// TestOptions_BallPosition verifies the ball hangs below the pivot.
func TestOptions_BallPosition(t *testing.T) {
	o := DefaultOptions()
	p := o.BallPosition(0)
	if !approx(p.X, 0) || !approx(p.Y, 0) || !approx(p.Z, 0) {
		t.Fatalf("expected ball at origin, got %+v", p)
	}
	p = o.BallPosition(math.Pi / 2)
	if !approx(p.X, 0) || !approx(p.Y, 6) || !approx(p.Z, -6) {
		t.Fatalf("expected ball at (0,6,-6), got %+v", p)
	}
}

// TestOptions_Validate verifies invalid geometry is rejected.
func TestOptions_Validate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := DefaultOptions()
	o.Swing.Ease = "elastic"
	if err := o.Validate(); err == nil {
		t.Fatalf("expected error for unknown ease")
	}
	o = DefaultOptions()
	o.Segments = 2
	if err := o.Validate(); err == nil {
		t.Fatalf("expected error for segments")
	}
}
