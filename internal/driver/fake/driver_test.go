package fake

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-epochs/internal/render"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

func TestDriverPrintsEveryNth(t *testing.T) {
	var buf bytes.Buffer
	d := &Driver{Out: &buf, Every: 3}
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	st := timeline.State{Elapsed: 12}
	for i := 1; i <= 7; i++ {
		require.NoError(t, d.Write(render.Frame{ID: uint64(i), Image: img, State: st, Stage: st.Stage()}))
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // frames 1, 4, 7
	assert.Contains(t, lines[0], "[frame 00001]")
	assert.Contains(t, lines[1], "stage=1 Oceans and Atmosphere")
	assert.Contains(t, lines[2], "avg=(0.50,0.00,0.00)")
	assert.Equal(t, 7, d.Count)
}

func TestMeanEmpty(t *testing.T) {
	r, g, b := Mean(render.Frame{})
	assert.Zero(t, r+g+b)
}
