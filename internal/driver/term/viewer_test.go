package term

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-epochs/internal/render"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

// mockScreen records cell writes.
type mockScreen struct {
	tcell.Screen
	w, h  int
	mu    sync.Mutex
	cells map[[2]int]rune
	shown int
}

func newMockScreen(w, h int) *mockScreen {
	return &mockScreen{w: w, h: h, cells: map[[2]int]rune{}}
}

func (m *mockScreen) Size() (int, int) { return m.w, m.h }
func (m *mockScreen) Show()            { m.shown++ }
func (m *mockScreen) Clear()           {}
func (m *mockScreen) Sync()            {}
func (m *mockScreen) Fini()            {}
func (m *mockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.mu.Lock()
	m.cells[[2]int{x, y}] = mainc
	m.mu.Unlock()
}

func (m *mockScreen) row(y int) string {
	out := make([]rune, m.w)
	for x := 0; x < m.w; x++ {
		out[x] = m.cells[[2]int{x, y}]
	}
	return string(out)
}

type fakeControls struct {
	toggles, resets int
	jumps           []int
}

func (f *fakeControls) TogglePlayPause() bool { f.toggles++; return f.toggles%2 == 0 }
func (f *fakeControls) Reset()                { f.resets++ }
func (f *fakeControls) JumpToStage(k int) error {
	f.jumps = append(f.jumps, k)
	return nil
}

func TestSampleGrid(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(3, 3, color.RGBA{200, 100, 50, 255})
	cells := SampleGrid(img, 2, 2)
	require.Len(t, cells, 4)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, cells[0])
	assert.Equal(t, color.RGBA{200, 100, 50, 255}, cells[3])
}

func TestSampleGridEmpty(t *testing.T) {
	assert.Len(t, SampleGrid(image.NewRGBA(image.Rect(0, 0, 0, 0)), 3, 2), 6)
	assert.Empty(t, SampleGrid(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 2))
}

func TestWriteDrawsFrameAndStatus(t *testing.T) {
	scr := newMockScreen(60, 12)
	v := New(scr, &fakeControls{})
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	st := timeline.State{Elapsed: 42, Playing: true}

	require.NoError(t, v.Write(render.Frame{ID: 1, Image: img, State: st, Stage: st.Stage()}))

	assert.Equal(t, 1, scr.shown)
	assert.Equal(t, '▀', scr.cells[[2]int{0, 0}])
	assert.Equal(t, '▀', scr.cells[[2]int{59, 9}])
	assert.Contains(t, scr.row(10), "[Pause] Continental Drift")
	assert.Contains(t, scr.row(11), " 4 ")
	assert.Contains(t, scr.row(11), "t= 42.0s")
}

func TestWritePausedShowsPlay(t *testing.T) {
	scr := newMockScreen(80, 6)
	v := New(scr, &fakeControls{})
	st := timeline.State{Elapsed: 0, Playing: false}
	require.NoError(t, v.Write(render.Frame{Image: image.NewRGBA(image.Rect(0, 0, 8, 8)), State: st}))
	assert.Contains(t, scr.row(4), "[Play] Formation of Earth and Moon")
}

func TestTinyScreenDoesNotPanic(t *testing.T) {
	v := New(newMockScreen(3, 1), &fakeControls{})
	assert.NotPanics(t, func() {
		_ = v.Write(render.Frame{Image: image.NewRGBA(image.Rect(0, 0, 8, 8))})
	})
}

func TestHandleKey(t *testing.T) {
	ctl := &fakeControls{}
	v := New(newMockScreen(10, 10), ctl)

	assert.True(t, v.handleKey(tcell.KeyRune, ' '))
	assert.True(t, v.handleKey(tcell.KeyRune, 'r'))
	assert.True(t, v.handleKey(tcell.KeyRune, '7'))
	assert.True(t, v.handleKey(tcell.KeyRune, '0'))
	assert.True(t, v.handleKey(tcell.KeyRune, 'x'))
	assert.True(t, v.handleKey(tcell.KeyUp, 0))
	assert.False(t, v.handleKey(tcell.KeyRune, 'q'))
	assert.False(t, v.handleKey(tcell.KeyEscape, 0))
	assert.False(t, v.handleKey(tcell.KeyCtrlC, 0))

	assert.Equal(t, 1, ctl.toggles)
	assert.Equal(t, 1, ctl.resets)
	assert.Equal(t, []int{7, 0}, ctl.jumps)
}
