package timeline

import (
	"errors"
	"fmt"
	"sync"
)

// ErrStageOutOfRange is returned by JumpToStage for indices outside the table.
var ErrStageOutOfRange = errors.New("stage index out of range")

// State is a snapshot of the timeline handed to renderers and drivers.
type State struct {
	Elapsed float64 `json:"elapsed"` // seconds, >= 0
	Playing bool    `json:"playing"`
}

// StageIndex derives the current stage index from Elapsed.
func (s State) StageIndex() int { return StageIndexAt(s.Elapsed) }

// Stage returns the descriptor for the current stage.
func (s State) Stage() Stage { return Stages[s.StageIndex()] }

// Timeline owns elapsed time and the play flag. It is not safe for
// concurrent use; see Safe.
type Timeline struct {
	st State
}

// New returns a timeline at t=0, playing.
func New() *Timeline {
	return &Timeline{st: State{Elapsed: 0, Playing: true}}
}

// Advance adds dt seconds while playing. Paused timelines ignore it.
func (t *Timeline) Advance(dt float64) {
	if !t.st.Playing || !(dt > 0) {
		return
	}
	t.st.Elapsed += dt
}

// TogglePlayPause flips the play flag and returns the new value.
// The caller is responsible for (re)starting the frame loop.
func (t *Timeline) TogglePlayPause() bool {
	t.st.Playing = !t.st.Playing
	return t.st.Playing
}

// Reset rewinds to the first stage. The play flag is left alone.
func (t *Timeline) Reset() { t.st.Elapsed = 0 }

// JumpToStage moves elapsed time to the start of stage k.
func (t *Timeline) JumpToStage(k int) error {
	if k < 0 || k >= StageCount {
		return fmt.Errorf("jump to %d: %w", k, ErrStageOutOfRange)
	}
	t.st.Elapsed = StageStart(k)
	return nil
}

func (t *Timeline) Elapsed() float64    { return t.st.Elapsed }
func (t *Timeline) Playing() bool       { return t.st.Playing }
func (t *Timeline) StageIndex() int     { return t.st.StageIndex() }
func (t *Timeline) Stage() Stage        { return t.st.Stage() }
func (t *Timeline) Description() string { return t.st.Stage().Description }

// State returns a copy of the current state.
func (t *Timeline) State() State { return t.st }

// --- Lightweight synchronization helper ---

// Safe guards a Timeline for callers that mutate it from more than one
// goroutine (frame loop plus control handlers).
type Safe struct {
	mu sync.Mutex
	T  *Timeline
}

func NewSafe(t *Timeline) *Safe {
	if t == nil {
		t = New()
	}
	return &Safe{T: t}
}

func (s *Safe) With(f func(t *Timeline)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.T)
}

// Snapshot returns the current state under the lock.
func (s *Safe) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.T.State()
}
