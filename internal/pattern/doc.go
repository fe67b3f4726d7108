// Package pattern implements the calibration pattern engine for braille
// displays.
//
// The engine is a small state machine: given a validated [Config] and the
// current [State], it produces one [Line] of per-cell dot masks per tick
// and advances the blink/walk state for the next tick:
//
//   - [Config]: grid dimensions, interval, mode, loop and whole-line flags
//   - [State]: blink phase, walk position and dash sub-step
//   - [Engine.Render]: compute the line for the current tick
//   - [Engine.Advance]: step the blink/walk state, signalling stop
//
// # Example
//
//	eng, _ := pattern.New(pattern.Default(), 42)
//	st := eng.Start()
//	line := eng.Render(st)
//	st, stop := eng.Advance(st)
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The driver that owns the timer is
// expected to be the sole caller of Render and Advance.
package pattern
