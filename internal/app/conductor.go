package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-epochs/internal/render"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

const DefaultFPS = 60

// Conductor is the frame driver: it advances the timeline and renders one
// frame per tick while playing, and sleeps while paused. Controls may be
// called from any goroutine; they wake the loop so the change is drawn.
type Conductor struct {
	Eng *render.Engine
	TL  *timeline.Safe

	fps  int
	wake chan struct{}
	do   chan func()

	mu        sync.Mutex
	onStage   []func(timeline.Stage)
	lastStage int

	errLog zerolog.Logger
}

func NewConductor(eng *render.Engine, tl *timeline.Safe, fps int) *Conductor {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if tl == nil {
		tl = timeline.NewSafe(nil)
	}
	return &Conductor{
		Eng:       eng,
		TL:        tl,
		fps:       fps,
		wake:      make(chan struct{}, 1),
		do:        make(chan func(), 16),
		lastStage: -1,
		errLog:    log.Sample(&zerolog.BurstSampler{Burst: 1, Period: 5 * time.Second}),
	}
}

// OnStage registers fn to run (on the loop goroutine) whenever the rendered
// stage changes, including the first frame.
func (c *Conductor) OnStage(fn func(timeline.Stage)) {
	c.mu.Lock()
	c.onStage = append(c.onStage, fn)
	c.mu.Unlock()
}

// --- controls ---

// TogglePlayPause flips playback and returns the new play flag.
func (c *Conductor) TogglePlayPause() bool {
	var playing bool
	c.TL.With(func(t *timeline.Timeline) { playing = t.TogglePlayPause() })
	log.Info().Bool("playing", playing).Msg("toggle")
	c.poke()
	return playing
}

// Reset rewinds to the first stage.
func (c *Conductor) Reset() {
	c.TL.With(func(t *timeline.Timeline) { t.Reset() })
	log.Info().Msg("reset")
	c.poke()
}

// JumpToStage moves to the start of stage k. Out of range k is rejected.
func (c *Conductor) JumpToStage(k int) error {
	var err error
	c.TL.With(func(t *timeline.Timeline) { err = t.JumpToStage(k) })
	if err != nil {
		log.Warn().Err(err).Int("stage", k).Msg("jump rejected")
		return err
	}
	log.Info().Int("stage", k).Msg("jump")
	c.poke()
	return nil
}

// Snapshot returns the current timeline state.
func (c *Conductor) Snapshot() timeline.State { return c.TL.Snapshot() }

// Stage is the epoch currently on screen.
func (c *Conductor) Stage() timeline.Stage { return c.TL.Snapshot().Stage() }

// SetFPS retimes the frame loop.
func (c *Conductor) SetFPS(n int) {
	if n <= 0 {
		return
	}
	c.Do(func() { c.fps = n })
}

// Do queues fn to run on the loop goroutine between frames. Use it for
// anything that touches the engine or scene while Run is active. When the
// queue is full (no loop is draining it) fn is dropped and Do reports false.
func (c *Conductor) Do(fn func()) bool {
	select {
	case c.do <- fn:
		c.poke()
		return true
	default:
		log.Warn().Msg("conductor queue full; dropping update")
		return false
	}
}

func (c *Conductor) poke() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// --- loop ---

// Run drives frames until ctx is done. Only one Run may be active.
func (c *Conductor) Run(ctx context.Context) error {
	fps := c.fps
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	c.frame(0)
	paused := false
	for {
		if !c.Snapshot().Playing {
			paused = true
			// no frames are scheduled until a control wakes us
			select {
			case <-ctx.Done():
				return nil
			case <-c.wake:
				c.drain()
				c.frame(0)
			}
			continue
		}
		if paused {
			paused = false
			ticker.Reset(time.Second / time.Duration(c.fps))
		}
		if c.fps != fps {
			fps = c.fps
			ticker.Reset(time.Second / time.Duration(fps))
			log.Info().Int("fps", fps).Msg("frame rate changed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.wake:
			c.drain()
			c.frame(0)
		case <-ticker.C:
			c.frame(1.0 / float64(fps))
		}
	}
}

// RunFrames renders n frames back-to-back with a fixed step, ignoring wall
// time. Used for export and headless simulation.
func (c *Conductor) RunFrames(ctx context.Context, n int, dt float64) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.drain()
		if err := c.step(dt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conductor) drain() {
	for {
		select {
		case fn := <-c.do:
			fn()
		default:
			return
		}
	}
}

// frame is the live-loop step; driver errors are logged, not fatal.
func (c *Conductor) frame(dt float64) {
	if err := c.step(dt); err != nil {
		c.errLog.Warn().Err(err).Msg("frame write failed")
	}
}

// step advances by dt (no-op when paused) and renders, back-to-back.
func (c *Conductor) step(dt float64) error {
	var st timeline.State
	c.TL.With(func(t *timeline.Timeline) {
		t.Advance(dt)
		st = t.State()
	})
	err := c.Eng.RenderOnce(st)

	if k := st.StageIndex(); k != c.lastStage {
		c.lastStage = k
		stage := st.Stage()
		log.Info().Int("stage", k).Str("name", stage.Name).Float64("elapsed", st.Elapsed).Msg("stage")
		c.mu.Lock()
		fns := append([]func(timeline.Stage){}, c.onStage...)
		c.mu.Unlock()
		for _, fn := range fns {
			fn(stage)
		}
	}
	return err
}
