// Package term shows the show in a terminal using half-block cells and
// turns key presses into timeline controls.
package term

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-epochs/internal/render"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

// statusRows are reserved at the bottom for the description and selector.
const statusRows = 2

// Controls is the subset of the conductor the viewer drives.
type Controls interface {
	TogglePlayPause() bool
	Reset()
	JumpToStage(k int) error
}

// Viewer is a render.Driver that paints frames onto a tcell screen.
type Viewer struct {
	screen tcell.Screen
	ctl    Controls

	mu    sync.Mutex
	img   *image.RGBA // copy of the last frame, for redraw on resize
	state timeline.State
}

// New wraps an initialized screen.
func New(screen tcell.Screen, ctl Controls) *Viewer {
	return &Viewer{screen: screen, ctl: ctl}
}

// NewScreen creates and initializes the terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return screen, nil
}

// Write implements render.Driver.
func (v *Viewer) Write(f render.Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.img == nil || v.img.Rect != f.Image.Rect {
		v.img = image.NewRGBA(f.Image.Rect)
	}
	copy(v.img.Pix, f.Image.Pix)
	v.state = f.State
	v.draw()
	return nil
}

// draw must be called with mu held.
func (v *Viewer) draw() {
	if v.img == nil {
		return
	}
	cols, rows := v.screen.Size()
	picRows := rows - statusRows
	if cols <= 0 || picRows <= 0 {
		return
	}
	cells := SampleGrid(v.img, cols, picRows*2)
	for y := 0; y < picRows; y++ {
		for x := 0; x < cols; x++ {
			top := cells[(2*y)*cols+x]
			bot := cells[(2*y+1)*cols+x]
			st := tcell.StyleDefault.Foreground(tcolor(top)).Background(tcolor(bot))
			v.screen.SetContent(x, y, '▀', nil, st)
		}
	}
	v.drawStatus(cols, picRows)
	v.screen.Show()
}

func (v *Viewer) drawStatus(cols, y int) {
	stage := v.state.Stage()
	btn := "[Play]"
	if v.state.Playing {
		btn = "[Pause]"
	}
	info := fmt.Sprintf("%s %s: %s", btn, stage.Name, stage.Description)
	putLine(v.screen, y, cols, info, tcell.StyleDefault)

	// stage selector
	x := putText(v.screen, 0, y+1, cols, "stage ", tcell.StyleDefault)
	for k := 0; k < timeline.StageCount; k++ {
		st := tcell.StyleDefault
		if k == stage.Index {
			st = st.Reverse(true)
		}
		x = putText(v.screen, x, y+1, cols, fmt.Sprintf(" %d ", k), st)
	}
	x = putText(v.screen, x, y+1, cols, fmt.Sprintf("  t=%5.1fs  space:play/pause r:reset 0-9:jump q:quit", v.state.Elapsed), tcell.StyleDefault)
	for ; x < cols; x++ {
		v.screen.SetContent(x, y+1, ' ', nil, tcell.StyleDefault)
	}
}

func putText(s tcell.Screen, x, y, cols int, text string, st tcell.Style) int {
	for _, r := range text {
		if x >= cols {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

func putLine(s tcell.Screen, y, cols int, text string, st tcell.Style) {
	x := putText(s, 0, y, cols, text, st)
	for ; x < cols; x++ {
		s.SetContent(x, y, ' ', nil, st)
	}
}

func tcolor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// SampleGrid nearest-samples img into cols x rows colors, composited over
// black (premultiplied channels are already that).
func SampleGrid(img *image.RGBA, cols, rows int) []color.RGBA {
	out := make([]color.RGBA, cols*rows)
	b := img.Bounds()
	if b.Empty() || cols <= 0 || rows <= 0 {
		return out
	}
	for y := 0; y < rows; y++ {
		sy := b.Min.Y + (2*y+1)*b.Dy()/(2*rows)
		for x := 0; x < cols; x++ {
			sx := b.Min.X + (2*x+1)*b.Dx()/(2*cols)
			c := img.RGBAAt(sx, sy)
			out[y*cols+x] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
	}
	return out
}

// handleKey applies one key press. It reports false when the viewer should quit.
func (v *Viewer) handleKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch {
	case r == 'q' || r == 'Q':
		return false
	case r == ' ' || r == 'p':
		v.ctl.TogglePlayPause()
	case r == 'r' || r == 'R':
		v.ctl.Reset()
	case r >= '0' && r <= '9':
		_ = v.ctl.JumpToStage(int(r - '0'))
	}
	return true
}

// Run polls terminal events until quit is pressed or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.mu.Lock()
				v.screen.Clear()
				v.draw()
				v.mu.Unlock()
			}
		}
	}
}

// Close restores the terminal.
func (v *Viewer) Close() error {
	v.screen.Fini()
	return nil
}
