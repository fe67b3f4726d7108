package pattern

import "fmt"

// Mode selects which dot pattern the engine cycles through. The numeric
// order is fixed; persisted sessions reference modes by name.
type Mode int

const (
	ModeRowWalk Mode = iota
	ModeColumnWalk
	ModeRandom
	ModeDashes
	ModeDots78
	ModeDots1237
	ModeDots4568
	ModeAlternate
	ModeDots1346
	ModeDots1256
	ModeDots1267
	ModeDots347
	ModeDots12367
	ModeDots12356
	ModeDots3678

	modeCount
)

const (
	maskAllDots    uint8 = 0xFF
	maskAlternateA uint8 = 0x47 // dots 1-2-3-7
	maskAlternateB uint8 = 0xB8 // dots 4-5-6-8
)

// dashMasks is the 4-step dash rotation: dots 1+4, 2+5, 3+6, 7+8.
var dashMasks = [4]uint8{0x09, 0x12, 0x24, 0xC0}

var modeNames = [modeCount]string{
	ModeRowWalk:    "row-walk",
	ModeColumnWalk: "column-walk",
	ModeRandom:     "random",
	ModeDashes:     "dashes",
	ModeDots78:     "dots78",
	ModeDots1237:   "dots1237",
	ModeDots4568:   "dots4568",
	ModeAlternate:  "alternate",
	ModeDots1346:   "dots1346",
	ModeDots1256:   "dots1256",
	ModeDots1267:   "dots1267",
	ModeDots347:    "dots347",
	ModeDots12367:  "dots12367",
	ModeDots12356:  "dots12356",
	ModeDots3678:   "dots3678",
}

var modeLabels = [modeCount]string{
	ModeRowWalk:    "All dots (1-8), row-major walk",
	ModeColumnWalk: "All dots (1-8), column-major walk",
	ModeRandom:     "Random dot groupings",
	ModeDashes:     "Dashes cycle (1-4 / 2-5 / 3-6 / 7-8)",
	ModeDots78:     "Dots 7-8",
	ModeDots1237:   "Dots 1-2-3-7",
	ModeDots4568:   "Dots 4-5-6-8",
	ModeAlternate:  "Alternating 1237 / 4568",
	ModeDots1346:   "Dots 1-3-4-6",
	ModeDots1256:   "Dots 1-2-5-6",
	ModeDots1267:   "Dots 1-2-6-7",
	ModeDots347:    "Dots 3-4-7",
	ModeDots12367:  "Dots 1-2-3-6-7",
	ModeDots12356:  "Dots 1-2-3-5-6",
	ModeDots3678:   "Dots 3-6-7-8",
}

var fixedMasks = [modeCount]uint8{
	ModeRowWalk:    maskAllDots,
	ModeColumnWalk: maskAllDots,
	ModeDots78:     0xC0,
	ModeDots1237:   0x47,
	ModeDots4568:   0xB8,
	ModeDots1346:   0x2D,
	ModeDots1256:   0x33,
	ModeDots1267:   0x63,
	ModeDots347:    0x4C,
	ModeDots12367:  0x67,
	ModeDots12356:  0x37,
	ModeDots3678:   0xE4,
}

func (m Mode) Valid() bool { return m >= 0 && m < modeCount }

// String returns the short machine name used in configs and session files.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Label returns the human-readable description shown in status lines.
func (m Mode) Label() string {
	if !m.Valid() {
		return "(unknown)"
	}
	return modeLabels[m]
}

// FixedMask returns the mask a fixed-mask mode lights cells with, or zero
// for the modes that compute masks per tick (random, dashes, alternate).
func (m Mode) FixedMask() uint8 {
	if !m.Valid() {
		return 0
	}
	return fixedMasks[m]
}

func (m Mode) ColumnMajor() bool { return m == ModeColumnWalk }
func (m Mode) Random() bool      { return m == ModeRandom }
func (m Mode) DashCycle() bool   { return m == ModeDashes }
func (m Mode) Alternating() bool { return m == ModeAlternate }

// Modes lists every mode in display order.
func Modes() []Mode {
	modes := make([]Mode, modeCount)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode resolves a short mode name back to its Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, &ConfigError{Field: "mode", Text: name, Err: ErrMode}
}
