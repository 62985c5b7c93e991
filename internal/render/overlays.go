package render

import (
	"math"

	"github.com/coreman2200/funtimes-epochs/internal/canvas"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

// Overlay draws the stage-specific shapes on top of the planet.
type Overlay func(s canvas.Surface, g Geometry)

// overlays is indexed by stage; every index has exactly one entry
// (checked in overlays_test.go).
var overlays = [timeline.StageCount]Overlay{
	0: moonDebris,
	1: atmosphere,
	2: microbes,
	3: plants,
	4: continentalDrift,
	5: iceCap,
	6: asteroid,
	7: volcanism,
	8: cities,
	9: colonies,
}

var (
	gray   = canvas.Hex("#a9a9a9")
	white  = canvas.Hex("#ffffff")
	purple = canvas.Hex("#ff00ff")
	green  = canvas.Hex("#32cd32")
	brown  = canvas.Hex("#8b4513")
	orange = canvas.Hex("#ff4500")
	ash    = canvas.Hex("#808080")
	yellow = canvas.Hex("#ffff00")
)

// OverlayFor returns the overlay for a stage, clamping the index.
func OverlayFor(stage int) Overlay {
	if stage < 0 {
		stage = 0
	}
	if stage >= timeline.StageCount {
		stage = timeline.StageCount - 1
	}
	return overlays[stage]
}

func moonDebris(s canvas.Surface, g Geometry) {
	s.SetFill(gray)
	s.FillCircle(g.CX+math.Cos(g.T)*80, g.CY+math.Sin(g.T)*80, 10)
}

func atmosphere(s canvas.Surface, g Geometry) {
	s.SetGlobalAlpha(0.5)
	s.SetFill(white)
	s.FillRect(0, 0, g.W, g.H*math.Mod(g.T, 10)/10)
	s.SetGlobalAlpha(1)
}

func microbes(s canvas.Surface, g Geometry) {
	s.SetFill(purple)
	for i := 0; i < 10; i++ {
		a := float64(i)
		s.FillCircle(g.CX+math.Cos(a)*40, g.CY+math.Sin(a)*40, 2)
	}
}

func plants(s canvas.Surface, g Geometry) {
	s.SetFill(green)
	s.FillRect(g.CX-20, g.CY-20, 40, 40)
}

func continentalDrift(s canvas.Surface, g Geometry) {
	s.SetFill(brown)
	s.FillRect(g.CX-60+math.Mod(g.T, 10)*12, g.CY-20, 40, 40)
}

func iceCap(s canvas.Surface, g Geometry) {
	s.SetFill(white)
	s.FillRect(g.CX-60, g.CY-60, 120, 20)
}

func asteroid(s canvas.Surface, g Geometry) {
	s.SetFill(orange)
	s.FillCircle(g.CX+math.Cos(g.T)*100, g.CY+math.Sin(g.T)*100, 5)
	// dust cloud
	s.SetGlobalAlpha(0.3)
	s.SetFill(ash)
	s.FillRect(0, 0, g.W, g.H)
	s.SetGlobalAlpha(1)
}

func volcanism(s canvas.Surface, g Geometry) {
	s.SetFill(orange)
	s.FillRect(g.CX-10, g.CY-60, 20, 40)
	s.SetGlobalAlpha(0.5)
	s.SetFill(ash)
	s.FillRect(0, 0, g.W, g.H)
	s.SetGlobalAlpha(1)
}

func cities(s canvas.Surface, g Geometry) {
	s.SetFill(yellow)
	for i := 0; i < 5; i++ {
		fi := float64(i)
		s.FillRect(g.CX+fi*20-40, g.CY+fi*10-20, 10, 10)
	}
}

func colonies(s canvas.Surface, g Geometry) {
	// moon base
	s.SetFill(gray)
	s.FillCircle(g.CX+80, g.CY-80, 15)
	// mars
	s.SetFill(orange)
	s.FillCircle(g.CX-100, g.CY+100, 20)
}
