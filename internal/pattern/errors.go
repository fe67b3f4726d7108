package pattern

import (
	"errors"
	"fmt"
)

// Configuration errors. All of them surface synchronously from
// [Config.Validate] or [New]; no run begins with an invalid config.
var (
	// ErrColumns indicates a non-positive column count.
	ErrColumns = errors.New("pattern: columns must be positive")

	// ErrRows indicates a non-positive row count.
	ErrRows = errors.New("pattern: rows must be positive")

	// ErrInterval indicates a non-positive tick interval.
	ErrInterval = errors.New("pattern: interval must be a positive number of milliseconds")

	// ErrTotalCells indicates columns x rows outside [1, MaxTotalCells].
	ErrTotalCells = errors.New("pattern: total cell count out of range")

	// ErrMode indicates a mode value or name the engine does not know.
	ErrMode = errors.New("pattern: unknown mode")
)

// ConfigError wraps a sentinel with the offending field and value so
// drivers can report which input to correct. Matches with errors.Is.
type ConfigError struct {
	Field string
	Value int
	Text  string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%v (%s = %q)", e.Err, e.Field, e.Text)
	}
	return fmt.Sprintf("%v (%s = %d)", e.Err, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }
