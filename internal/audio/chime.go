// Package audio plays a short tone when the show enters a new stage.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

const (
	sampleRate = beep.SampleRate(44100)
	baseHz     = 220.0
	toneLen    = 120 * time.Millisecond
)

// Chime owns the speaker. The zero value is silent.
type Chime struct {
	mu   sync.Mutex
	init bool
}

// NewChime opens the default audio device. On error the returned Chime is
// still usable and stays silent.
func NewChime() (*Chime, error) {
	c := &Chime{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.init = true
	return c, nil
}

// ToneHz is the pitch for a stage: a semitone-ish step per epoch.
func ToneHz(stage int) float64 {
	return baseHz * (1 + float64(stage)/12)
}

// Play sounds the tone for s. It does not block.
func (c *Chime) Play(s timeline.Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.init {
		return
	}
	sine, err := generators.SineTone(sampleRate, ToneHz(s.Index))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLen), sine))
}

func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.init {
		speaker.Close()
		c.init = false
	}
}
