// Package session owns the tick loop around the pattern engine: a timed
// Runner for live runs, a clockless Sequence for exports and tests, and
// the Recording both produce.
package session

import (
	"github.com/brlcal/brlcal/internal/braille"
	"github.com/brlcal/brlcal/internal/pattern"
)

// Frame is one rendered tick.
type Frame struct {
	Tick      int
	PhaseOn   bool
	StepIndex int
	Masks     pattern.Line
}

// RaisedDots counts the raised dots across the whole frame.
func (f Frame) RaisedDots() int {
	total := 0
	for _, mask := range f.Masks {
		total += braille.Count(mask)
	}
	return total
}

// Recording collects the frames of one run for persistence.
type Recording struct {
	Config pattern.Config
	Seed   int64
	Frames []Frame
}

// Ticks is the number of recorded frames.
func (r *Recording) Ticks() int { return len(r.Frames) }

// OnTicks counts frames rendered during an ON phase.
func (r *Recording) OnTicks() int {
	n := 0
	for _, f := range r.Frames {
		if f.PhaseOn {
			n++
		}
	}
	return n
}

// RaisedDotTotal sums raised dots over every frame.
func (r *Recording) RaisedDotTotal() int {
	total := 0
	for _, f := range r.Frames {
		total += f.RaisedDots()
	}
	return total
}

// terminates reports whether a run with this config stops on its own.
// Non-whole-line random never stops, and any looping run ticks forever.
func terminates(cfg pattern.Config) bool {
	if cfg.Mode.Random() && !cfg.WholeLine {
		return false
	}
	return !cfg.Loop
}
