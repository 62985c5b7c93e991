// Package led mirrors rendered frames onto an addressable LED matrix.
package led

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-epochs/internal/config"
	"github.com/coreman2200/funtimes-epochs/internal/layout"
	"github.com/coreman2200/funtimes-epochs/internal/render"
)

// DefaultFreq is the WS281x bit rate.
const DefaultFreq = 800 * physic.KiloHertz

// Strip samples each frame at the LED positions and pushes the result to a
// display.Drawer. It is a render.Driver.
type Strip struct {
	Layout     layout.Layout
	Brightness float64
	Power      Power

	lut    []UV
	buf    []Color
	px     *image.NRGBA
	drawer display.Drawer
}

func NewStrip(l layout.Layout, brightness float64, p Power, d display.Drawer) *Strip {
	n := l.Count()
	return &Strip{
		Layout:     l,
		Brightness: brightness,
		Power:      p,
		lut:        BuildLUT(l),
		buf:        make([]Color, n),
		px:         image.NewNRGBA(image.Rect(0, 0, n, 1)),
		drawer:     d,
	}
}

// FromConfig builds the layout and limiter settings from cfg.
func FromConfig(cfg config.LED, d display.Drawer) *Strip {
	l := layout.Layout{
		Dim:   layout.Dim{X: cfg.Dim.X, Y: cfg.Dim.Y},
		Order: layout.Serpentine{XFlipEveryRow: cfg.XFlipEveryRow},
	}
	p := Power{
		WhiteCap: cfg.Power.WhiteCap,
		ChanMA:   cfg.Power.ChanMA,
		BudgetMA: cfg.Power.BudgetMA,
		Knee:     cfg.Power.Knee,
	}
	return NewStrip(l, cfg.Brightness, p, d)
}

// Open returns an nrzled drawer on the configured SPI port, or a console
// drawer when no port is available. hw reports which one was chosen.
func Open(cfg config.LED) (d display.Drawer, hw bool, err error) {
	if _, err := host.Init(); err != nil {
		return nil, false, fmt.Errorf("host init: %w", err)
	}
	n := cfg.Dim.X * cfg.Dim.Y
	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		log.Warn().Err(err).Msg("no SPI port, printing at the console")
		return screen.New(n), false, nil
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{NumPixels: n, Channels: 3, Freq: Freq(cfg)})
	if err != nil {
		port.Close()
		return nil, false, fmt.Errorf("nrzled: %w", err)
	}
	if err := dev.Halt(); err != nil {
		log.Warn().Err(err).Msg("led halt")
	}
	return dev, true, nil
}

// Freq is the configured bit rate, DefaultFreq when unset.
func Freq(cfg config.LED) physic.Frequency {
	if cfg.SpeedKHz > 0 {
		return physic.Frequency(cfg.SpeedKHz) * physic.KiloHertz
	}
	return DefaultFreq
}

func (s *Strip) Write(f render.Frame) error {
	if f.Image == nil {
		return nil
	}
	s.Sample(f.Image)
	Limit(s.buf, s.Power)
	for i, c := range s.buf {
		s.px.SetNRGBA(i, 0, color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255})
	}
	if s.drawer == nil {
		return nil
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.px, image.Point{})
}

// Sample fills the strip buffer from img, scaled by brightness. Pixels are
// taken as composited over black.
func (s *Strip) Sample(img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	br := float32(clamp01(s.Brightness))
	for i, uv := range s.lut {
		x := b.Min.X + int(uv.U*float64(w-1)+0.5)
		y := b.Min.Y + int(uv.V*float64(h-1)+0.5)
		p := img.RGBAAt(x, y)
		s.buf[i] = Color{
			R: float32(p.R) / 255 * br,
			G: float32(p.G) / 255 * br,
			B: float32(p.B) / 255 * br,
		}
	}
}

// Pixels is the last image pushed to the drawer, one pixel per LED.
func (s *Strip) Pixels() *image.NRGBA { return s.px }

func (s *Strip) Close() error {
	if s.drawer == nil {
		return nil
	}
	return s.drawer.Halt()
}

func to8(v float32) uint8 {
	return uint8(clamp01(float64(v))*255 + 0.5)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
