// Package braille maps 8-bit dot masks to Unicode braille glyphs and to
// the 2x4 dot geometry of a cell. Bit k of a mask raises dot k+1; the
// glyph for a mask is U+2800 + mask. This mapping is what the display
// under calibration interprets, so it must stay bit-exact.
package braille

import (
	"math/bits"
	"strings"
)

// Base is the blank braille cell, U+2800.
const Base rune = 0x2800

// Rune returns the glyph for one dot mask.
func Rune(mask uint8) rune {
	return Base + rune(mask)
}

// String renders a line of masks as braille glyphs.
func String(line []uint8) string {
	var b strings.Builder
	b.Grow(len(line) * 3) // braille glyphs are 3 bytes in UTF-8
	for _, mask := range line {
		b.WriteRune(Rune(mask))
	}
	return b.String()
}

// Count returns the number of raised dots in one mask.
func Count(mask uint8) int {
	return bits.OnesCount8(mask)
}

// Dots lists the raised dot numbers (1-8) of a mask in ascending order.
func Dots(mask uint8) []int {
	dots := make([]int, 0, 8)
	for bit := 0; bit < 8; bit++ {
		if mask&(1<<bit) != 0 {
			dots = append(dots, bit+1)
		}
	}
	return dots
}

// DotPosition returns the column (0-1) and row (0-3) of a dot bit within
// the 2x4 cell cluster: dots 1-3 fill the left column top to bottom,
// dots 4-6 the right column, and dots 7 and 8 sit on the bottom row.
func DotPosition(bit int) (col, row int) {
	switch {
	case bit >= 0 && bit <= 2:
		return 0, bit
	case bit >= 3 && bit <= 5:
		return 1, bit - 3
	case bit == 6:
		return 0, 3
	case bit == 7:
		return 1, 3
	}
	return 0, 0
}
