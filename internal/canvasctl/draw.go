package canvasctl

import (
	"image/color"
	"math"
)

// LogicalSize is the fixed widget resolution in pixels, regardless of host size.
const LogicalSize = 200

// Palette holds the widget colours.
type Palette struct {
	Background color.Color
	Border     color.Color
	Grid       color.Color
	Listener   color.Color
	Source     color.Color
}

// DefaultPalette returns the page colours.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
		Border:     color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff},
		Grid:       color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff},
		Listener:   color.RGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff},
		Source:     color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	}
}

// fillFor returns the marker colour for t, or false when t is not drawn.
func (p Palette) fillFor(t ElementType) (color.Color, bool) {
	switch t {
	case TypeListener:
		return p.Listener, true
	case TypeSource:
		return p.Source, true
	default:
		return nil, false
	}
}

// Render draws the background, border, centre grid and every element onto s.
func Render(s Surface, elements []Element, p Palette) {
	iw, ih := s.Size()
	w, h := float64(iw), float64(ih)

	s.SetGlobalAlpha(1)
	s.ClearRect(0, 0, w, h)

	s.SetFillStyle(p.Background)
	s.FillRect(0, 0, w, h)

	s.SetLineWidth(2)
	s.SetStrokeStyle(p.Border)
	s.StrokeRect(0, 0, w, h)

	s.SetStrokeStyle(p.Grid)
	s.SetLineWidth(1)

	s.BeginPath()
	s.MoveTo(w/2, 0)
	s.LineTo(w/2, h)
	s.Stroke()

	s.BeginPath()
	s.MoveTo(0, h/2)
	s.LineTo(w, h/2)
	s.Stroke()

	for _, el := range elements {
		fill, ok := p.fillFor(el.Type)
		if !ok {
			continue
		}
		s.SetGlobalAlpha(el.Alpha)
		s.SetFillStyle(fill)
		s.BeginPath()
		s.Arc(el.X*w, el.Y*h, el.Radius*w, 0, 2*math.Pi)
		s.Fill()
	}

	if pr, ok := s.(Presenter); ok {
		pr.Present()
	}
}
