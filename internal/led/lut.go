package led

import "github.com/coreman2200/funtimes-epochs/internal/layout"

// UV is a normalized sample position; (0,0) is the top-left of the frame.
type UV struct{ U, V float64 }

// BuildLUT returns the sample point of every LED in strip order.
func BuildLUT(l layout.Layout) []UV {
	out := make([]UV, l.Count())
	for i := range out {
		x, y := l.Coord(i)
		out[i] = UV{
			U: float64(x) / float64(max(1, l.Dim.X-1)),
			V: float64(y) / float64(max(1, l.Dim.Y-1)),
		}
	}
	return out
}
