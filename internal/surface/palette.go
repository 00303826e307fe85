// Package surface provides drawing targets for the spatial widget.
package surface

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a "#rrggbb" string. An empty string yields fallback.
func ParseColor(hex string, fallback color.Color) (color.Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return fallback, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// PaletteFromHex builds a widget palette, keeping defaults for empty entries.
func PaletteFromHex(background, border, grid, listener, source string) (canvasctl.Palette, error) {
	p := canvasctl.DefaultPalette()
	var err error
	if p.Background, err = ParseColor(background, p.Background); err != nil {
		return canvasctl.DefaultPalette(), err
	}
	if p.Border, err = ParseColor(border, p.Border); err != nil {
		return canvasctl.DefaultPalette(), err
	}
	if p.Grid, err = ParseColor(grid, p.Grid); err != nil {
		return canvasctl.DefaultPalette(), err
	}
	if p.Listener, err = ParseColor(listener, p.Listener); err != nil {
		return canvasctl.DefaultPalette(), err
	}
	if p.Source, err = ParseColor(source, p.Source); err != nil {
		return canvasctl.DefaultPalette(), err
	}
	return p, nil
}

// CSS formats c as a hex colour string for a browser canvas.
func CSS(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

// withAlpha returns c with its alpha scaled by alpha.
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	if c == nil {
		c = color.Black
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}

// opaque drops the alpha channel so colorful can convert the colour.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
