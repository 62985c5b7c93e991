// Package export writes rendered frames to disk as a PNG sequence and/or
// an animated GIF.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-epochs/internal/render"
)

// Writer is a render.Driver that saves frames. Close flushes the GIF.
type Writer struct {
	dir     string
	gifPath string
	delay   int // GIF delay in 1/100 s

	anim    *gif.GIF
	written int
}

// NewWriter prepares dir (created if missing) and/or gifPath. At least one
// must be set. fps sets the GIF frame delay.
func NewWriter(dir, gifPath string, fps int) (*Writer, error) {
	if dir == "" && gifPath == "" {
		return nil, errors.New("export needs a directory or a gif path")
	}
	if fps <= 0 {
		fps = 10
	}
	w := &Writer{dir: dir, gifPath: gifPath, delay: max(1, 100/fps)}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if gifPath != "" {
		w.anim = &gif.GIF{}
	}
	return w, nil
}

// Written is the number of frames accepted so far.
func (w *Writer) Written() int { return w.written }

func (w *Writer) Write(f render.Frame) error {
	img := Opaque(f.Image)
	if w.dir != "" {
		name := filepath.Join(w.dir, fmt.Sprintf("frame_%05d.png", w.written))
		if err := writePNG(name, img); err != nil {
			return err
		}
	}
	if w.anim != nil {
		p := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, img.Bounds(), img, img.Bounds().Min)
		w.anim.Image = append(w.anim.Image, p)
		w.anim.Delay = append(w.anim.Delay, w.delay)
	}
	w.written++
	return nil
}

// Close writes the GIF, if one was requested.
func (w *Writer) Close() error {
	if w.anim == nil || len(w.anim.Image) == 0 {
		return nil
	}
	f, err := os.Create(w.gifPath)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, w.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", w.gifPath, err)
	}
	log.Info().Str("path", w.gifPath).Int("frames", len(w.anim.Image)).Msg("gif written")
	return f.Close()
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

// Opaque composites a premultiplied frame over black into a new image.
func Opaque(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}
