package render

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

// Frame is one rendered image plus the timeline state it was drawn from.
// Image is owned by the engine and reused; drivers copy what they keep.
type Frame struct {
	ID    uint64
	Image *image.RGBA
	State timeline.State
	Stage timeline.Stage
}

// Driver consumes rendered frames (terminal, websocket, files, LEDs).
type Driver interface {
	Write(f Frame) error
}

// Rand is the random source for the starfield. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG source. Seed 0 seeds from the clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		now := time.Now()
		return rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.UnixMicro())))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
