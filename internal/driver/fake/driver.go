package fake

import (
	"fmt"
	"io"

	"github.com/coreman2200/funtimes-epochs/internal/render"
)

// Driver prints a compact summary of each frame (stage & mean color),
// useful for headless runs. Every prints one line per Every frames.
type Driver struct {
	Out   io.Writer
	Every int
	Count int
}

func (d *Driver) Write(f render.Frame) error {
	d.Count++
	if d.Every > 1 && (d.Count-1)%d.Every != 0 {
		return nil
	}
	r, g, b := Mean(f)
	_, err := fmt.Fprintf(d.Out, "[frame %05d] t=%7.3f stage=%d %-28s avg=(%.2f,%.2f,%.2f)\n",
		f.ID, f.State.Elapsed, f.Stage.Index, f.Stage.Name, r, g, b)
	return err
}

// Mean averages the frame over black, in 0..1.
func Mean(f render.Frame) (r, g, b float64) {
	if f.Image == nil {
		return 0, 0, 0
	}
	pix := f.Image.Pix
	n := float64(len(pix) / 4)
	if n == 0 {
		return 0, 0, 0
	}
	for i := 0; i+3 < len(pix); i += 4 {
		r += float64(pix[i])
		g += float64(pix[i+1])
		b += float64(pix[i+2])
	}
	return r / n / 255, g / n / 255, b / n / 255
}
