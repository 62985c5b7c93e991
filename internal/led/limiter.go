package led

import "math"

// Color is a linear RGB value in 0..1 per channel.
type Color struct{ R, G, B float32 }

// Power bounds what a strip may draw.
type Power struct {
	WhiteCap float64 // max R+G+B per LED, 3 = no cap
	ChanMA   float64 // mA per channel at full scale; WS2812 is about 20
	BudgetMA float64 // global budget; 0 disables
	Knee     float64 // fraction of budget where soft limiting starts
}

// Limit applies a per-LED white cap, then scales the whole buffer to stay
// under the current budget with a soft knee.
func Limit(buf []Color, p Power) {
	whiteCap := 3.0
	if p.WhiteCap > 0 {
		whiteCap = p.WhiteCap
	}
	chanMA := 20.0
	if p.ChanMA > 0 {
		chanMA = p.ChanMA
	}
	knee := 0.9
	if p.Knee > 0 && p.Knee < 1 {
		knee = p.Knee
	}

	wc := float32(whiteCap)
	for i := range buf {
		s := buf[i].R + buf[i].G + buf[i].B
		if s > wc && s > 0 {
			k := wc / s
			buf[i].R *= k
			buf[i].G *= k
			buf[i].B *= k
		}
	}

	if p.BudgetMA <= 0 {
		return
	}
	total := Current(buf, chanMA)
	if total <= 0 {
		return
	}
	ratio := total / p.BudgetMA
	if ratio <= knee {
		return
	}
	// Above the knee the output approaches the budget asymptotically.
	out := knee + (1-knee)*(1-math.Exp(-(ratio-knee)/(1-knee)))
	scale(buf, float32(out/ratio))
}

// Current estimates the draw of buf in mA.
func Current(buf []Color, chanMA float64) float64 {
	var total float64
	for _, c := range buf {
		total += float64(c.R+c.G+c.B) * chanMA
	}
	return total
}

func scale(buf []Color, s float32) {
	if s >= 1 {
		return
	}
	for i := range buf {
		buf[i].R *= s
		buf[i].G *= s
		buf[i].B *= s
	}
}
