package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

// Raster is a Surface backed by an RGBA image (premultiplied alpha).
// Paths are filled by gg with anti-aliased coverage and source-over
// compositing.
type Raster struct {
	img   *image.RGBA
	dc    *gg.Context
	fill  Paint
	alpha float64
}

// NewRaster allocates a transparent w x h surface with an opaque black fill.
func NewRaster(w, h int) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Raster{
		img:   img,
		dc:    gg.NewContextForRGBA(img),
		fill:  Solid{A: 1},
		alpha: 1,
	}
}

// Image returns the backing buffer. It is reused across frames.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) SetFill(p Paint) {
	if p != nil {
		r.fill = p
	}
}

func (r *Raster) SetGlobalAlpha(a float64) { r.alpha = clamp01(a) }

// ClearRect resets the pixels whose centers fall inside the rect to
// transparent black.
func (r *Raster) ClearRect(x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	rect := image.Rect(
		int(math.Ceil(x-0.5)), int(math.Ceil(y-0.5)),
		int(math.Ceil(x+w-0.5)), int(math.Ceil(y+h-0.5)),
	)
	draw.Draw(r.img, rect, image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x, y, w, h float64) {
	if r.alpha <= 0 || w == 0 || h == 0 {
		return
	}
	r.dc.DrawRectangle(x, y, w, h)
	r.fillPath()
}

func (r *Raster) FillCircle(cx, cy, rad float64) {
	if r.alpha <= 0 || !(rad > 0) {
		return
	}
	r.dc.DrawCircle(cx, cy, rad)
	r.fillPath()
}

func (r *Raster) fillPath() {
	if s, ok := r.fill.(Solid); ok {
		s.A *= r.alpha
		r.dc.SetFillStyle(s.Pattern())
	} else {
		r.dc.SetFillStyle(fadePattern{p: r.fill.Pattern(), a: r.alpha})
	}
	r.dc.Fill()
}

// fadePattern scales a premultiplied pattern by the global alpha.
type fadePattern struct {
	p gg.Pattern
	a float64
}

func (f fadePattern) ColorAt(x, y int) color.Color {
	c := f.p.ColorAt(x, y)
	if f.a >= 1 {
		return c
	}
	cr, cg, cb, ca := c.RGBA()
	k := f.a
	return color.RGBA64{
		R: uint16(float64(cr)*k + 0.5),
		G: uint16(float64(cg)*k + 0.5),
		B: uint16(float64(cb)*k + 0.5),
		A: uint16(float64(ca)*k + 0.5),
	}
}
