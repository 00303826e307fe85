package surface

import (
	"image/color"

	"github.com/frudas24/webspatium/internal/canvasctl"
)

// Multi forwards every call to several surfaces. Size is reported by the first one.
type Multi struct {
	targets []canvasctl.Surface
}

var _ canvasctl.Surface = (*Multi)(nil)

// NewMulti returns a fan-out surface. Nil targets are skipped.
func NewMulti(targets ...canvasctl.Surface) *Multi {
	m := &Multi{}
	for _, t := range targets {
		if t != nil {
			m.targets = append(m.targets, t)
		}
	}
	return m
}

// SetSize forwards SetSize.
func (m *Multi) SetSize(width, height int) {
	for _, t := range m.targets {
		t.SetSize(width, height)
	}
}

// Size returns the size of the first target.
func (m *Multi) Size() (int, int) {
	if len(m.targets) == 0 {
		return 0, 0
	}
	return m.targets[0].Size()
}

// SetGlobalAlpha forwards SetGlobalAlpha.
func (m *Multi) SetGlobalAlpha(alpha float64) {
	for _, t := range m.targets {
		t.SetGlobalAlpha(alpha)
	}
}

// SetFillStyle forwards SetFillStyle.
func (m *Multi) SetFillStyle(c color.Color) {
	for _, t := range m.targets {
		t.SetFillStyle(c)
	}
}

// SetStrokeStyle forwards SetStrokeStyle.
func (m *Multi) SetStrokeStyle(c color.Color) {
	for _, t := range m.targets {
		t.SetStrokeStyle(c)
	}
}

// SetLineWidth forwards SetLineWidth.
func (m *Multi) SetLineWidth(width float64) {
	for _, t := range m.targets {
		t.SetLineWidth(width)
	}
}

// ClearRect forwards ClearRect.
func (m *Multi) ClearRect(x, y, w, h float64) {
	for _, t := range m.targets {
		t.ClearRect(x, y, w, h)
	}
}

// FillRect forwards FillRect.
func (m *Multi) FillRect(x, y, w, h float64) {
	for _, t := range m.targets {
		t.FillRect(x, y, w, h)
	}
}

// StrokeRect forwards StrokeRect.
func (m *Multi) StrokeRect(x, y, w, h float64) {
	for _, t := range m.targets {
		t.StrokeRect(x, y, w, h)
	}
}

// BeginPath forwards BeginPath.
func (m *Multi) BeginPath() {
	for _, t := range m.targets {
		t.BeginPath()
	}
}

// MoveTo forwards MoveTo.
func (m *Multi) MoveTo(x, y float64) {
	for _, t := range m.targets {
		t.MoveTo(x, y)
	}
}

// LineTo forwards LineTo.
func (m *Multi) LineTo(x, y float64) {
	for _, t := range m.targets {
		t.LineTo(x, y)
	}
}

// Arc forwards Arc.
func (m *Multi) Arc(x, y, radius, startAngle, endAngle float64) {
	for _, t := range m.targets {
		t.Arc(x, y, radius, startAngle, endAngle)
	}
}

// Fill forwards Fill.
func (m *Multi) Fill() {
	for _, t := range m.targets {
		t.Fill()
	}
}

// Stroke forwards Stroke.
func (m *Multi) Stroke() {
	for _, t := range m.targets {
		t.Stroke()
	}
}

// Present forwards Present to targets that implement it.
func (m *Multi) Present() {
	for _, t := range m.targets {
		if p, ok := t.(canvasctl.Presenter); ok {
			p.Present()
		}
	}
}
