package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Paint yields the fill color and alpha at a point, and the equivalent gg
// pattern used by Raster.
type Paint interface {
	At(x, y float64) (colorful.Color, float64)
	Pattern() gg.Pattern
	String() string
}

// Solid is a flat color with alpha.
type Solid struct {
	C colorful.Color
	A float64
}

// Hex parses "#rrggbb" into an opaque Solid. Malformed input yields black.
func Hex(s string) Solid {
	c, err := colorful.Hex(s)
	if err != nil {
		return Solid{A: 1}
	}
	return Solid{C: c, A: 1}
}

// RGBA builds a Solid from 8-bit channels and a 0..1 alpha.
func RGBA(r, g, b uint8, a float64) Solid {
	return Solid{C: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: clamp01(a)}
}

func (s Solid) At(_, _ float64) (colorful.Color, float64) { return s.C, s.A }

func (s Solid) Pattern() gg.Pattern { return gg.NewSolidPattern(nrgba(s.C, s.A)) }

func (s Solid) String() string {
	r, g, b := s.C.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", r, g, b, s.A)
}

// Stop is one gradient color stop. Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

type stops []Stop

// add inserts keeping offsets ascending; equal offsets keep insertion order.
func (ss *stops) add(offset float64, c colorful.Color, a float64) {
	st := Stop{Offset: clamp01(offset), Color: c, Alpha: clamp01(a)}
	i := len(*ss)
	for i > 0 && (*ss)[i-1].Offset > st.Offset {
		i--
	}
	*ss = append(*ss, Stop{})
	copy((*ss)[i+1:], (*ss)[i:])
	(*ss)[i] = st
}

// eval interpolates in RGB between the stops bracketing t.
func (ss stops) eval(t float64) (colorful.Color, float64) {
	n := len(ss)
	if n == 0 {
		return colorful.Color{}, 0
	}
	if t <= ss[0].Offset {
		return ss[0].Color, ss[0].Alpha
	}
	if t >= ss[n-1].Offset {
		return ss[n-1].Color, ss[n-1].Alpha
	}
	for i := 0; i < n-1; i++ {
		a, b := ss[i], ss[i+1]
		if t >= a.Offset && t <= b.Offset {
			den := b.Offset - a.Offset
			if den <= 0 {
				return b.Color, b.Alpha
			}
			u := (t - a.Offset) / den
			return a.Color.BlendRgb(b.Color, u), a.Alpha + (b.Alpha-a.Alpha)*u
		}
	}
	return ss[n-1].Color, ss[n-1].Alpha
}

func (ss stops) apply(g gg.Gradient) gg.Gradient {
	for _, s := range ss {
		g.AddColorStop(s.Offset, nrgba(s.Color, s.Alpha))
	}
	return g
}

func nrgba(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(a)*255 + 0.5)}
}

func (ss stops) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = fmt.Sprintf("%g:%s/%g", s.Offset, s.Color.Clamped().Hex(), s.Alpha)
	}
	return strings.Join(parts, ",")
}

// LinearGradient runs from (X0,Y0) at offset 0 to (X1,Y1) at offset 1.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	stops          stops
}

func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (g *LinearGradient) AddColorStop(offset float64, c Solid) *LinearGradient {
	g.stops.add(offset, c.C, c.A)
	return g
}

func (g *LinearGradient) At(x, y float64) (colorful.Color, float64) {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	den := dx*dx + dy*dy
	if den == 0 {
		return g.stops.eval(0)
	}
	return g.stops.eval(((x-g.X0)*dx + (y-g.Y0)*dy) / den)
}

func (g *LinearGradient) Pattern() gg.Pattern {
	return g.stops.apply(gg.NewLinearGradient(g.X0, g.Y0, g.X1, g.Y1))
}

func (g *LinearGradient) String() string {
	return fmt.Sprintf("linear(%g,%g,%g,%g;%s)", g.X0, g.Y0, g.X1, g.Y1, g.stops)
}

// RadialGradient is concentric: offset 0 at radius R0, offset 1 at R1,
// both around (CX, CY).
type RadialGradient struct {
	CX, CY, R0, R1 float64
	stops          stops
}

func NewRadialGradient(cx, cy, r0, r1 float64) *RadialGradient {
	return &RadialGradient{CX: cx, CY: cy, R0: r0, R1: r1}
}

func (g *RadialGradient) AddColorStop(offset float64, c Solid) *RadialGradient {
	g.stops.add(offset, c.C, c.A)
	return g
}

func (g *RadialGradient) At(x, y float64) (colorful.Color, float64) {
	den := g.R1 - g.R0
	if den == 0 {
		return g.stops.eval(1)
	}
	d := math.Hypot(x-g.CX, y-g.CY)
	return g.stops.eval((d - g.R0) / den)
}

func (g *RadialGradient) Pattern() gg.Pattern {
	return g.stops.apply(gg.NewRadialGradient(g.CX, g.CY, g.R0, g.CX, g.CY, g.R1))
}

func (g *RadialGradient) String() string {
	return fmt.Sprintf("radial(%g,%g,%g,%g;%s)", g.CX, g.CY, g.R0, g.R1, g.stops)
}
