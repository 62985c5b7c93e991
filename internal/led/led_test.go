package led

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-epochs/internal/config"
	"github.com/coreman2200/funtimes-epochs/internal/layout"
	"github.com/coreman2200/funtimes-epochs/internal/render"
)

type recDrawer struct {
	n      int
	draws  int
	last   *image.NRGBA
	halted bool
}

func (d *recDrawer) String() string          { return "rec" }
func (d *recDrawer) Halt() error             { d.halted = true; return nil }
func (d *recDrawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *recDrawer) Bounds() image.Rectangle { return image.Rect(0, 0, d.n, 1) }
func (d *recDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.draws++
	d.last = src.(*image.NRGBA)
	return nil
}

var _ display.Drawer = (*recDrawer)(nil)

func TestBuildLUT(t *testing.T) {
	l := layout.Layout{Dim: layout.Dim{X: 3, Y: 2}, Order: layout.Serpentine{XFlipEveryRow: true}}
	lut := BuildLUT(l)
	require.Len(t, lut, 6)
	assert.Equal(t, UV{0, 0}, lut[0])
	assert.Equal(t, UV{1, 0}, lut[2])
	assert.Equal(t, UV{1, 1}, lut[3], "second row runs right to left")
	assert.Equal(t, UV{0, 1}, lut[5])

	single := BuildLUT(layout.Layout{Dim: layout.Dim{X: 1, Y: 1}})
	assert.Equal(t, []UV{{0, 0}}, single)
}

func TestLimitWhiteCap(t *testing.T) {
	buf := []Color{{1, 1, 1}, {0.2, 0.2, 0.2}}
	Limit(buf, Power{WhiteCap: 1.5})
	assert.InDelta(t, 1.5, float64(buf[0].R+buf[0].G+buf[0].B), 1e-5)
	assert.InDelta(t, 0.2, float64(buf[1].R), 1e-6)
}

func TestLimitBudget(t *testing.T) {
	buf := make([]Color, 10)
	for i := range buf {
		buf[i] = Color{1, 1, 1}
	}
	// 10 LEDs * 3 ch * 20 mA = 600 mA against a 300 mA budget.
	Limit(buf, Power{ChanMA: 20, BudgetMA: 300})
	got := Current(buf, 20)
	assert.LessOrEqual(t, got, 300.0)
	assert.InDelta(t, 300, got, 0.1)

	under := []Color{{0.1, 0, 0}}
	Limit(under, Power{ChanMA: 20, BudgetMA: 300})
	assert.Equal(t, float32(0.1), under[0].R)
}

func TestLimitKnee(t *testing.T) {
	// 95% of budget sits between the knee and the budget: gently scaled.
	buf := []Color{{0.95, 0, 0}}
	Limit(buf, Power{ChanMA: 100, BudgetMA: 100})
	assert.Less(t, buf[0].R, float32(0.95))
	assert.Greater(t, buf[0].R, float32(0.9))
}

func TestFromConfigCarriesKnee(t *testing.T) {
	cfg := config.Default().LED
	cfg.Power.Knee = 0.5
	s := FromConfig(cfg, nil)
	assert.Equal(t, 0.5, s.Power.Knee)
	assert.Equal(t, cfg.Power.BudgetMA, s.Power.BudgetMA)

	// 75% of budget is past a 0.5 knee but under the default 0.9 one.
	buf := []Color{{0.75, 0, 0}}
	Limit(buf, Power{ChanMA: 100, BudgetMA: 100, Knee: s.Power.Knee})
	assert.Less(t, buf[0].R, float32(0.75))
	dflt := []Color{{0.75, 0, 0}}
	Limit(dflt, Power{ChanMA: 100, BudgetMA: 100})
	assert.Equal(t, float32(0.75), dflt[0].R)
}

func TestFreq(t *testing.T) {
	assert.Equal(t, DefaultFreq, Freq(config.LED{}))
	assert.Equal(t, 2400*physic.KiloHertz, Freq(config.LED{SpeedKHz: 2400}))
}

func TestStripWrite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(9, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(9, 9, color.RGBA{0, 0, 255, 255})

	d := &recDrawer{n: 4}
	cfg := config.LED{Dim: config.Dim{X: 2, Y: 2}, XFlipEveryRow: true, Brightness: 1}
	s := FromConfig(cfg, d)
	require.NoError(t, s.Write(render.Frame{Image: img}))
	require.Equal(t, 1, d.draws)

	px := d.last
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, px.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, px.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, px.NRGBAAt(2, 0), "serpentine: index 2 is bottom right")
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, px.NRGBAAt(3, 0))

	require.NoError(t, s.Close())
	assert.True(t, d.halted)
}

func TestStripBrightness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	s := NewStrip(layout.Layout{Dim: layout.Dim{X: 1, Y: 1}}, 0.5, Power{}, nil)
	require.NoError(t, s.Write(render.Frame{Image: img}))
	assert.Equal(t, uint8(128), s.Pixels().NRGBAAt(0, 0).R)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Write(render.Frame{}))
}
