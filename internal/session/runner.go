package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/brlcal/brlcal/internal/pattern"
)

// ErrUnbounded is returned when a run that cannot terminate on its own is
// started without a tick bound.
var ErrUnbounded = errors.New("session: run never terminates, a tick bound is required")

// Runner drives the engine at the configured interval. The first frame is
// emitted immediately on start, the way the original dialog rendered
// before arming its timer; after that one render-then-advance unit runs
// per tick. The tick loop is the sole owner of the animation state.
type Runner struct {
	engine   *pattern.Engine
	seed     int64
	maxTicks int
	paused   atomic.Bool
}

// NewRunner validates cfg and prepares a runner. maxTicks <= 0 means
// unbounded, which is only allowed when the run stops on its own.
func NewRunner(cfg pattern.Config, seed int64, maxTicks int) (*Runner, error) {
	if maxTicks <= 0 && !terminates(cfg) {
		return nil, ErrUnbounded
	}
	engine, err := pattern.New(cfg, seed)
	if err != nil {
		return nil, err
	}
	return &Runner{engine: engine, seed: seed, maxTicks: maxTicks}, nil
}

// Pause gates tick delivery. It never touches the animation state, so
// Resume continues exactly where the run left off.
func (r *Runner) Pause()  { r.paused.Store(true) }
func (r *Runner) Resume() { r.paused.Store(false) }

// Paused reports whether tick delivery is currently gated.
func (r *Runner) Paused() bool { return r.paused.Load() }

// Run ticks until the engine requests stop, the tick bound is reached, or
// ctx is cancelled. onFrame, if non-nil, is called with every frame;
// returning false stops the run early. The recording produced so far is
// returned in every case, including cancellation.
func (r *Runner) Run(ctx context.Context, onFrame func(Frame) bool) (*Recording, error) {
	cfg := r.engine.Config()
	rec := &Recording{Config: cfg, Seed: r.seed}

	st := r.engine.Start()
	stopped := false

	step := func() {
		frame := Frame{
			Tick:      rec.Ticks(),
			PhaseOn:   st.PhaseOn,
			StepIndex: st.StepIndex,
			Masks:     r.engine.Render(st),
		}
		rec.Frames = append(rec.Frames, frame)
		if onFrame != nil && !onFrame(frame) {
			stopped = true
			return
		}
		var stop bool
		st, stop = r.engine.Advance(st)
		if stop {
			stopped = true
		}
		if r.maxTicks > 0 && rec.Ticks() >= r.maxTicks {
			stopped = true
		}
	}

	// First frame immediately on start.
	step()
	if stopped {
		return rec, nil
	}

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		case <-ticker.C:
			if r.paused.Load() {
				continue
			}
			step()
			if stopped {
				return rec, nil
			}
		}
	}
}
