package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-epochs/internal/canvas"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

// Engine renders frames of the Scene into a raster and hands them to every
// registered driver. It is driven by one goroutine at a time.
type Engine struct {
	W, H    int
	Scene   *Scene
	Surface *canvas.Raster

	drivers []Driver
	frameID uint64

	// metrics (last durations in ms)
	Last struct {
		RenderMS float64
		WriteMS  float64
		TotalMS  float64
	}
}

// NewEngine allocates the raster and returns an Engine writing to drivers.
func NewEngine(w, h int, sc *Scene, drivers ...Driver) (*Engine, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", w, h)
	}
	if sc == nil {
		return nil, errors.New("scene is nil")
	}
	e := &Engine{
		W:       w,
		H:       h,
		Scene:   sc,
		Surface: canvas.NewRaster(w, h),
	}
	for _, d := range drivers {
		e.AddDriver(d)
	}
	return e, nil
}

// AddDriver registers another frame sink. Nil drivers are ignored.
func (e *Engine) AddDriver(d Driver) {
	if d == nil {
		return
	}
	e.drivers = append(e.drivers, d)
}

// Drivers returns the registered sinks.
func (e *Engine) Drivers() []Driver { return e.drivers }

// FrameID is the id of the last rendered frame (0 before the first).
func (e *Engine) FrameID() uint64 { return e.frameID }

// RenderOnce draws st and writes it to every driver. A failing driver does
// not stop the others; their errors are joined.
func (e *Engine) RenderOnce(st timeline.State) error {
	start := time.Now()

	e.Scene.Render(e.Surface, st)
	e.frameID++
	e.Last.RenderMS = ms(time.Since(start))

	f := Frame{
		ID:    e.frameID,
		Image: e.Surface.Image(),
		State: st,
		Stage: st.Stage(),
	}

	writeStart := time.Now()
	var errs []error
	for _, d := range e.drivers {
		if err := d.Write(f); err != nil {
			errs = append(errs, fmt.Errorf("driver %T: %w", d, err))
		}
	}
	e.Last.WriteMS = ms(time.Since(writeStart))
	e.Last.TotalMS = ms(time.Since(start))

	return errors.Join(errs...)
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000.0 }
