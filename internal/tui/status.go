package tui

import (
	"fmt"

	"github.com/brlcal/brlcal/internal/pattern"
)

// Status wording is shared with the headless runner so both drivers
// report the same thing for the same state.

// IdleStatus is shown before the first run.
const IdleStatus = "Status: Idle. Tip: set translation to 8-dot Computer Braille. While running: P or Enter pauses; Esc or S stops."

// StoppedStatus is shown after a run ends.
const StoppedStatus = "Status: Idle. (Esc exits when idle. While running: P/Enter pauses; Esc or S stops.)"

// FormatCounts summarizes the derived cell and dot totals.
func FormatCounts(columns, rows int) string {
	cells := columns * rows
	return fmt.Sprintf("Cells: %d x %d = %d. Dots: %d x 8 = %d.", columns, rows, cells, cells, cells*8)
}

func wholeLineText(cfg pattern.Config) string {
	if cfg.WholeLine {
		return "Blink whole line: ON."
	}
	return "Blink whole line: OFF (walking)."
}

// RunningStatus describes an active run.
func RunningStatus(cfg pattern.Config) string {
	return fmt.Sprintf("Status: Running. %s. %s Interval: %d ms. %s Pause: P or Enter. Stop: Esc or S.",
		cfg.Mode.Label(), FormatCounts(cfg.Columns, cfg.Rows), cfg.IntervalMs, wholeLineText(cfg))
}

// PausedStatus describes a paused run.
func PausedStatus(cfg pattern.Config) string {
	return fmt.Sprintf("Status: Paused. %s. %s Resume: P or Enter. Stop: Esc or S.",
		cfg.Mode.Label(), FormatCounts(cfg.Columns, cfg.Rows))
}
