// Package canvas is a small immediate-mode 2D drawing surface: clear,
// filled circles and rects, solid or gradient fills, global alpha.
package canvas

// Surface is the drawing contract the renderer is written against.
// Coordinates are in pixels with the origin at the top-left.
type Surface interface {
	Size() (w, h int)
	ClearRect(x, y, w, h float64)
	// FillCircle fills a full arc of radius r centered at (cx, cy).
	FillCircle(cx, cy, r float64)
	FillRect(x, y, w, h float64)
	SetFill(p Paint)
	// SetGlobalAlpha sets the alpha multiplied into every later fill.
	// Values are clamped into [0,1].
	SetGlobalAlpha(a float64)
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
