// Package pendulum describes the swinging pendulum of the demo scene and
// animates its swing angle.
package pendulum

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/frudas24/webspatium/internal/spatial"
)

// Swing describes the rotation tween around the X axis.
type Swing struct {
	From     float64 `json:"from" yaml:"from"`
	To       float64 `json:"to" yaml:"to"`
	Duration float64 `json:"duration" yaml:"duration"`
	Ease     string  `json:"ease" yaml:"ease"`
	Yoyo     bool    `json:"yoyo" yaml:"yoyo"`
	Repeat   int     `json:"repeat" yaml:"repeat"`
	Delay    float64 `json:"delay" yaml:"delay"`
}

// Options holds the pendulum geometry. Lengths are in metres, durations in seconds.
type Options struct {
	BallRadius float64      `json:"ballRadius" yaml:"ballRadius"`
	Segments   int          `json:"segments" yaml:"segments"`
	LineRadius float64      `json:"lineRadius" yaml:"lineRadius"`
	LineLength float64      `json:"lineLength" yaml:"lineLength"`
	LineColor  string       `json:"lineColor" yaml:"lineColor"`
	BallY      float64      `json:"ballY" yaml:"ballY"`
	LineY      float64      `json:"lineY" yaml:"lineY"`
	BoxSize    float64      `json:"boxSize" yaml:"boxSize"`
	Position   spatial.Vec3 `json:"position" yaml:"position"`
	Swing      Swing        `json:"swing" yaml:"swing"`
}

// DefaultOptions returns the scene pendulum.
func DefaultOptions() Options {
	return Options{
		BallRadius: 0.3,
		Segments:   32,
		LineRadius: 0.01,
		LineLength: 8,
		LineColor:  "#cccccc",
		BallY:      -6,
		LineY:      -2,
		BoxSize:    0.5,
		Position:   spatial.Vec3{X: 0, Y: 6, Z: 0},
		Swing: Swing{
			From:     -0.3,
			To:       0.3,
			Duration: 1.5,
			Ease:     "power1.inOut",
			Yoyo:     true,
			Repeat:   -1,
			Delay:    0,
		},
	}
}

// Validate checks the options for values the scene cannot render.
func (o Options) Validate() error {
	if o.BallRadius <= 0 {
		return errors.New("pendulum ballRadius must be > 0")
	}
	if o.Segments < 3 {
		return errors.New("pendulum segments must be >= 3")
	}
	if o.LineLength <= 0 {
		return errors.New("pendulum lineLength must be > 0")
	}
	if o.Swing.Duration <= 0 {
		return errors.New("pendulum swing duration must be > 0")
	}
	if o.Swing.Repeat < -1 {
		return errors.New("pendulum swing repeat must be >= -1")
	}
	if _, err := Ease(o.Swing.Ease); err != nil {
		return err
	}
	return nil
}

// BallPosition returns the ball centre in world space for a swing angle.
// The swing rotates the pendulum group around its X axis.
func (o Options) BallPosition(angle float64) spatial.Vec3 {
	return spatial.Vec3{
		X: o.Position.X,
		Y: o.Position.Y + o.BallY*math.Cos(angle),
		Z: o.Position.Z + o.BallY*math.Sin(angle),
	}
}

// Tween animates the swing angle over wall-clock time.
type Tween struct {
	mu      sync.Mutex
	swing   Swing
	ease    EaseFunc
	started time.Time
	running bool
	now     func() time.Time
}

// NewTween returns a stopped tween for swing.
func NewTween(swing Swing) (*Tween, error) {
	if swing.Duration <= 0 {
		return nil, errors.New("swing duration must be > 0")
	}
	ease, err := Ease(swing.Ease)
	if err != nil {
		return nil, err
	}
	return &Tween{swing: swing, ease: ease, now: time.Now}, nil
}

// SetNowFunc overrides the tween clock.
func (t *Tween) SetNowFunc(fn func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if fn != nil {
		t.now = fn
	}
}

// Start begins the animation from its first frame.
func (t *Tween) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = t.now()
	t.running = true
}

// Stop freezes the animation at its start value.
func (t *Tween) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
}

// Running reports whether the tween is playing.
func (t *Tween) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Angle returns the current swing angle in radians.
func (t *Tween) Angle() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return t.swing.From
	}
	return t.At(t.now().Sub(t.started))
}

// At returns the angle after elapsed time since start.
func (t *Tween) At(elapsed time.Duration) float64 {
	s := t.swing
	e := elapsed.Seconds() - s.Delay
	if e <= 0 {
		return s.From
	}

	cycle := int(math.Floor(e / s.Duration))
	progress := (e - float64(cycle)*s.Duration) / s.Duration
	if s.Repeat >= 0 && cycle > s.Repeat {
		cycle = s.Repeat
		progress = 1
	}
	if s.Yoyo && cycle%2 == 1 {
		progress = 1 - progress
	}
	return Lerp(s.From, s.To, t.ease(progress))
}
