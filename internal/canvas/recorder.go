package canvas

import "fmt"

// Op is one recorded draw call.
type Op struct {
	Kind  string    // "clear", "rect", "circle"
	Args  []float64 // geometry, in call order
	Fill  string    // Paint.String() at call time; empty for clear
	Alpha float64   // global alpha at call time
}

func (o Op) String() string {
	return fmt.Sprintf("%s%v fill=%s alpha=%g", o.Kind, o.Args, o.Fill, o.Alpha)
}

// Recorder is a Surface that keeps every draw call instead of rasterizing.
type Recorder struct {
	W, H  int
	Ops   []Op
	fill  Paint
	alpha float64
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, fill: Solid{A: 1}, alpha: 1}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) SetFill(p Paint) {
	if p != nil {
		r.fill = p
	}
}

func (r *Recorder) SetGlobalAlpha(a float64) { r.alpha = clamp01(a) }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Args: []float64{x, y, w, h}, Alpha: r.alpha})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "rect", Args: []float64{x, y, w, h}, Fill: r.fill.String(), Alpha: r.alpha})
}

func (r *Recorder) FillCircle(cx, cy, rad float64) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Args: []float64{cx, cy, rad}, Fill: r.fill.String(), Alpha: r.alpha})
}
