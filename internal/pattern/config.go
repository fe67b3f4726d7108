package pattern

import "time"

// MaxTotalCells bounds columns x rows. Typical displays are 96 or 300
// cells; anything past this is a typo, not a display.
const MaxTotalCells = 5000

// Config holds the validated calibration settings.
type Config struct {
	Columns    int
	Rows       int
	IntervalMs int
	Mode       Mode
	Loop       bool
	WholeLine  bool
}

// Default returns the settings the dialog historically started with:
// a 24x4 grid walked row by row at 500 ms, looping.
func Default() Config {
	return Config{
		Columns:    24,
		Rows:       4,
		IntervalMs: 500,
		Mode:       ModeRowWalk,
		Loop:       true,
		WholeLine:  false,
	}
}

// TotalCells is the derived cell count of the grid.
func (c Config) TotalCells() int { return c.Columns * c.Rows }

// Interval is the tick cadence as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Validate rejects non-positive dimensions or interval, an unknown mode,
// and a total cell count outside [1, MaxTotalCells].
func (c Config) Validate() error {
	if c.Columns <= 0 {
		return &ConfigError{Field: "columns", Value: c.Columns, Err: ErrColumns}
	}
	if c.Rows <= 0 {
		return &ConfigError{Field: "rows", Value: c.Rows, Err: ErrRows}
	}
	if c.IntervalMs <= 0 {
		return &ConfigError{Field: "interval", Value: c.IntervalMs, Err: ErrInterval}
	}
	if !c.Mode.Valid() {
		return &ConfigError{Field: "mode", Value: int(c.Mode), Err: ErrMode}
	}
	if total := c.TotalCells(); total < 1 || total > MaxTotalCells {
		return &ConfigError{Field: "total cells", Value: total, Err: ErrTotalCells}
	}
	return nil
}
