package session

import "github.com/brlcal/brlcal/internal/pattern"

// Sequence enumerates the frames a run would produce, without a clock.
// Exports and tests use it to get the exact frame sequence of a timed
// run deterministically. maxTicks <= 0 is only allowed when the run
// terminates on its own.
func Sequence(cfg pattern.Config, seed int64, maxTicks int) (*Recording, error) {
	if maxTicks <= 0 && !terminates(cfg) {
		return nil, ErrUnbounded
	}
	engine, err := pattern.New(cfg, seed)
	if err != nil {
		return nil, err
	}

	rec := &Recording{Config: cfg, Seed: seed}
	st := engine.Start()
	for {
		rec.Frames = append(rec.Frames, Frame{
			Tick:      len(rec.Frames),
			PhaseOn:   st.PhaseOn,
			StepIndex: st.StepIndex,
			Masks:     engine.Render(st),
		})

		var stop bool
		st, stop = engine.Advance(st)
		if stop {
			return rec, nil
		}
		if maxTicks > 0 && len(rec.Frames) >= maxTicks {
			return rec, nil
		}
	}
}
