package layout

type Dim struct{ X, Y int }

type Serpentine struct {
	XFlipEveryRow bool
}

// Layout describes a flat LED matrix wired as a single strip.
type Layout struct {
	Dim   Dim
	Order Serpentine
}

// Index maps x,y -> linear LED index (0..N-1).
func (l Layout) Index(x, y int) int {
	xx := x
	if y%2 == 1 && l.Order.XFlipEveryRow {
		xx = l.Dim.X - 1 - x
	}
	return y*l.Dim.X + xx
}

// Coord is the inverse of Index.
func (l Layout) Coord(i int) (x, y int) {
	if l.Dim.X <= 0 {
		return 0, 0
	}
	y = i / l.Dim.X
	x = i % l.Dim.X
	if y%2 == 1 && l.Order.XFlipEveryRow {
		x = l.Dim.X - 1 - x
	}
	return x, y
}

func (l Layout) Count() int {
	return l.Dim.X * l.Dim.Y
}
