package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/frudas24/webspatium/internal/geom"
	"golang.org/x/image/vector"
)

// arcStep is the maximum angle covered by one segment when flattening arcs.
const arcStep = math.Pi / 32

// Raster draws into an in-memory RGBA image with anti-aliased fills and strokes.
type Raster struct {
	mu        sync.Mutex
	img       *image.RGBA
	ras       *vector.Rasterizer
	alpha     float64
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	paths     [][]geom.Point
	onPresent func(*image.RGBA)
}

var _ canvasctl.Surface = (*Raster)(nil)

// NewRaster returns a raster surface; onPresent receives a copy of each finished frame.
func NewRaster(onPresent func(*image.RGBA)) *Raster {
	return &Raster{
		img:       image.NewRGBA(image.Rect(0, 0, 1, 1)),
		ras:       vector.NewRasterizer(1, 1),
		alpha:     1,
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		onPresent: onPresent,
	}
}

// SetSize reallocates the image when the size changes.
func (r *Raster) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	b := r.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Size returns the image size.
func (r *Raster) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetGlobalAlpha sets the alpha applied to every following draw.
func (r *Raster) SetGlobalAlpha(alpha float64) {
	r.mu.Lock()
	r.alpha = alpha
	r.mu.Unlock()
}

// SetFillStyle sets the fill colour.
func (r *Raster) SetFillStyle(c color.Color) {
	r.mu.Lock()
	r.fill = c
	r.mu.Unlock()
}

// SetStrokeStyle sets the stroke colour.
func (r *Raster) SetStrokeStyle(c color.Color) {
	r.mu.Lock()
	r.stroke = c
	r.mu.Unlock()
}

// SetLineWidth sets the stroke width.
func (r *Raster) SetLineWidth(width float64) {
	r.mu.Lock()
	if width > 0 {
		r.lineWidth = width
	}
	r.mu.Unlock()
}

// ClearRect makes the area fully transparent.
func (r *Raster) ClearRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draw.Draw(r.img, pixelRect(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
}

// FillRect blends the fill colour over the area.
func (r *Raster) FillRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := image.NewUniform(withAlpha(r.fill, r.alpha))
	draw.Draw(r.img, pixelRect(x, y, w, h), src, image.Point{}, draw.Over)
}

// StrokeRect outlines the area centred on its edges.
func (r *Raster) StrokeRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	corners := []geom.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}, {X: x, Y: y}}
	r.strokeLocked([][]geom.Point{corners})
}

// BeginPath discards the current path.
func (r *Raster) BeginPath() {
	r.mu.Lock()
	r.paths = nil
	r.mu.Unlock()
}

// MoveTo starts a new sub-path.
func (r *Raster) MoveTo(x, y float64) {
	r.mu.Lock()
	r.paths = append(r.paths, []geom.Point{{X: x, Y: y}})
	r.mu.Unlock()
}

// LineTo extends the current sub-path.
func (r *Raster) LineTo(x, y float64) {
	r.mu.Lock()
	r.lineToLocked(geom.Point{X: x, Y: y})
	r.mu.Unlock()
}

// Arc appends a clockwise arc flattened into line segments.
func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if radius <= 0 {
		return
	}
	sweep := endAngle - startAngle
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		r.lineToLocked(geom.Point{X: x + radius*math.Cos(a), Y: y + radius*math.Sin(a)})
	}
}

// Fill fills every sub-path of the current path.
func (r *Raster) Fill() {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	drawn := false
	for _, sub := range r.paths {
		if len(sub) < 3 {
			continue
		}
		addPolygon(r.ras, sub)
		drawn = true
	}
	if drawn {
		r.ras.Draw(r.img, b, image.NewUniform(withAlpha(r.fill, r.alpha)), image.Point{})
	}
}

// Stroke outlines every sub-path of the current path.
func (r *Raster) Stroke() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokeLocked(r.paths)
}

// Present hands a copy of the finished frame to the present hook.
func (r *Raster) Present() {
	if r.onPresent == nil {
		return
	}
	r.onPresent(r.Snapshot())
}

// Snapshot returns a copy of the current image.
func (r *Raster) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// lineToLocked extends the current sub-path, starting one if needed.
func (r *Raster) lineToLocked(p geom.Point) {
	if len(r.paths) == 0 {
		r.paths = append(r.paths, []geom.Point{p})
		return
	}
	last := len(r.paths) - 1
	r.paths[last] = append(r.paths[last], p)
}

// strokeLocked rasterizes each segment as a quad of the current line width.
func (r *Raster) strokeLocked(paths [][]geom.Point) {
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	half := r.lineWidth / 2
	drawn := false
	for _, sub := range paths {
		for i := 1; i < len(sub); i++ {
			p0, p1 := sub[i-1], sub[i]
			dx, dy := p1.X-p0.X, p1.Y-p0.Y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*half, dx/length*half
			addPolygon(r.ras, []geom.Point{
				{X: p0.X + nx, Y: p0.Y + ny},
				{X: p1.X + nx, Y: p1.Y + ny},
				{X: p1.X - nx, Y: p1.Y - ny},
				{X: p0.X - nx, Y: p0.Y - ny},
			})
			drawn = true
		}
	}
	if drawn {
		r.ras.Draw(r.img, b, image.NewUniform(withAlpha(r.stroke, r.alpha)), image.Point{})
	}
}

// addPolygon adds a closed polygon to the rasterizer.
func addPolygon(ras *vector.Rasterizer, pts []geom.Point) {
	ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()
}

// pixelRect converts a float rectangle into covered pixel bounds.
func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}
