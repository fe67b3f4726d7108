package pattern

import (
	"math/rand"
	"time"
)

// randomFillChance is the per-cell fill probability of the non-whole-line
// random mode. The random masks are drawn uniformly from [1, 255].
const randomFillChance = 0.35

// Line is one tick's output: one dot mask per cell, zero meaning blank.
// Lines are rebuilt from scratch every tick, never mutated in place.
type Line []uint8

// State is the animation state carried between ticks. It is created by
// [Engine.Start], advanced only by [Engine.Advance] and discarded on stop.
// Pause is a driver concern and must never touch it.
type State struct {
	PhaseOn     bool // ON shows the pattern, OFF shows a blank line
	StepIndex   int  // walking cell position, 0..TotalCells-1
	DashSubStep int  // 0..3, used only by the dash cycle
}

// Engine renders calibration lines and advances the blink/walk state.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// New validates cfg and builds an engine. Seed 0 derives a seed from the
// clock; tests pass a fixed seed for reproducible random modes.
func New(cfg Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{cfg: cfg, rng: rand.New(rand.NewSource(seed))}, nil
}

// Config returns the settings the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Start returns the fresh animation state for a new run.
func (e *Engine) Start() State {
	return State{PhaseOn: true}
}

// Blank returns an all-blank line, shown on stop.
func (e *Engine) Blank() Line {
	return make(Line, e.cfg.TotalCells())
}

// cellIndex maps the walk position to a cell in the output line. The
// column-major walk enumerates column-then-row over the virtual grid.
func (e *Engine) cellIndex(stepIndex int) int {
	if !e.cfg.Mode.ColumnMajor() {
		return stepIndex
	}

	col := stepIndex / e.cfg.Rows
	row := stepIndex % e.cfg.Rows

	if col < 0 {
		col = 0
	}
	if col >= e.cfg.Columns {
		col = e.cfg.Columns - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= e.cfg.Rows {
		row = e.cfg.Rows - 1
	}

	return row*e.cfg.Columns + col
}

func (e *Engine) randomMask() uint8 {
	return uint8(e.rng.Intn(255) + 1)
}

// Render builds the line for the current tick. It never mutates st.
func (e *Engine) Render(st State) Line {
	line := e.Blank()
	total := e.cfg.TotalCells()
	if total <= 0 {
		return line
	}

	if e.cfg.Mode.Random() {
		// Whole-line random blinks: ON fills every cell, OFF blanks.
		if e.cfg.WholeLine {
			if !st.PhaseOn {
				return line
			}
			for i := range line {
				line[i] = e.randomMask()
			}
			return line
		}

		// Groupings: sprinkle random masks each tick, no blank phase.
		for i := range line {
			if e.rng.Float64() <= randomFillChance {
				line[i] = e.randomMask()
			}
		}
		return line
	}

	if e.cfg.WholeLine {
		if !st.PhaseOn {
			return line
		}

		switch {
		case e.cfg.Mode.DashCycle():
			mask := dashMasks[st.DashSubStep&3]
			for i := range line {
				line[i] = mask
			}
		case e.cfg.Mode.Alternating():
			for i := range line {
				if i%2 == 0 {
					line[i] = maskAlternateA
				} else {
					line[i] = maskAlternateB
				}
			}
		default:
			mask := e.cfg.Mode.FixedMask()
			if mask == 0x00 {
				mask = maskAllDots
			}
			for i := range line {
				line[i] = mask
			}
		}
		return line
	}

	// Walking: one active cell blinks at a time.
	cell := e.cellIndex(st.StepIndex)
	if cell < 0 || cell >= total || !st.PhaseOn {
		return line
	}

	switch {
	case e.cfg.Mode.DashCycle():
		line[cell] = dashMasks[st.DashSubStep&3]
	case e.cfg.Mode.Alternating():
		// Parity of the actual cell index, not the step counter.
		if cell%2 == 0 {
			line[cell] = maskAlternateA
		} else {
			line[cell] = maskAlternateB
		}
	default:
		mask := e.cfg.Mode.FixedMask()
		if mask == 0x00 {
			mask = maskAllDots
		}
		line[cell] = mask
	}
	return line
}

// Advance steps the blink/walk state and reports whether the driver
// should stop ticking. ON transitions to OFF with no further stepping;
// OFF transitions to ON and performs the mode-specific advance.
func (e *Engine) Advance(st State) (State, bool) {
	// Non-whole-line random keeps resampling; no phases, no stepping.
	if e.cfg.Mode.Random() && !e.cfg.WholeLine {
		return st, false
	}

	if st.PhaseOn {
		st.PhaseOn = false
		return st, false
	}
	st.PhaseOn = true

	if e.cfg.WholeLine {
		// No walk. Only the dash cycle has internal state to advance.
		if e.cfg.Mode.DashCycle() {
			st.DashSubStep++
			if st.DashSubStep >= 4 {
				st.DashSubStep = 0
				if !e.cfg.Loop {
					return st, true
				}
			}
			return st, false
		}
		if !e.cfg.Loop {
			return st, true
		}
		return st, false
	}

	// Walking: each cell dwells for a full dash cycle before moving on.
	if e.cfg.Mode.DashCycle() {
		st.DashSubStep++
		if st.DashSubStep < 4 {
			return st, false
		}
		st.DashSubStep = 0
		st.StepIndex++
	} else {
		st.StepIndex++
	}

	if st.StepIndex >= e.cfg.TotalCells() {
		if e.cfg.Loop {
			st.StepIndex = 0
		} else {
			return st, true
		}
	}
	return st, false
}
