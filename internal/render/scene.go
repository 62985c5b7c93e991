package render

import (
	"github.com/coreman2200/funtimes-epochs/internal/canvas"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

const (
	DefaultStars        = 100
	DefaultStarRadius   = 2.0
	DefaultPlanetRadius = 50.0
)

var starFill = canvas.RGBA(255, 255, 255, 0.5)

// Palette is the planet's radial gradient, core to rim.
type Palette struct {
	Name      string
	Core, Rim string
}

var (
	Molten = Palette{Name: "molten", Core: "#ff4500", Rim: "#8b0000"}
	Ocean  = Palette{Name: "ocean", Core: "#00b7eb", Rim: "#00008b"}
	Life   = Palette{Name: "life", Core: "#32cd32", Rim: "#00b7eb"}
)

// PaletteFor picks the planet palette for a stage index.
func PaletteFor(stage int) Palette {
	switch stage {
	case 0:
		return Molten
	case 1:
		return Ocean
	default:
		return Life
	}
}

// Geometry is what an overlay needs to know about the frame.
type Geometry struct {
	W, H   float64 // surface size
	CX, CY float64 // planet center
	T      float64 // elapsed seconds
}

// Scene draws one frame of the show: starfield, planet, stage overlay.
type Scene struct {
	Stars        int
	StarRadius   float64
	PlanetRadius float64
	Rand         Rand
}

// NewScene returns a scene with the default star count and sizes.
// A nil rnd gets a clock-seeded source.
func NewScene(rnd Rand) *Scene {
	if rnd == nil {
		rnd = NewRand(0)
	}
	return &Scene{
		Stars:        DefaultStars,
		StarRadius:   DefaultStarRadius,
		PlanetRadius: DefaultPlanetRadius,
		Rand:         rnd,
	}
}

// Render clears s and draws the frame for st.
func (sc *Scene) Render(s canvas.Surface, st timeline.State) {
	w, h := s.Size()
	g := Geometry{W: float64(w), H: float64(h), CX: float64(w) / 2, CY: float64(h) / 2, T: st.Elapsed}

	s.SetGlobalAlpha(1)
	s.ClearRect(0, 0, g.W, g.H)

	sc.drawStars(s, g)

	stage := st.StageIndex()
	sc.drawPlanet(s, g, PaletteFor(stage))

	OverlayFor(stage)(s, g)
	s.SetGlobalAlpha(1)
}

func (sc *Scene) drawStars(s canvas.Surface, g Geometry) {
	if sc.Rand == nil {
		return
	}
	s.SetFill(starFill)
	for i := 0; i < sc.Stars; i++ {
		x := sc.Rand.Float64() * g.W
		y := sc.Rand.Float64() * g.H
		r := sc.Rand.Float64() * sc.StarRadius
		s.FillCircle(x, y, r)
	}
}

func (sc *Scene) drawPlanet(s canvas.Surface, g Geometry, p Palette) {
	grad := canvas.NewRadialGradient(g.CX, g.CY, 0, sc.PlanetRadius).
		AddColorStop(0, canvas.Hex(p.Core)).
		AddColorStop(1, canvas.Hex(p.Rim))
	s.SetFill(grad)
	s.FillCircle(g.CX, g.CY, sc.PlanetRadius)
}
