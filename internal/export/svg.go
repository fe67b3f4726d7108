// Package export renders recorded frames as printable artifacts.
package export

import (
	"fmt"
	"strings"

	"github.com/brlcal/brlcal/internal/braille"
)

// FrameSVG renders one frame as an SVG dot sheet: a grid of 2x4 dot
// clusters, raised dots filled, lowered dots as faint outlines. The
// dot-to-bit geometry matches the glyph mapping exactly.
func FrameSVG(masks []uint8, columns, rows int, scale float64) string {
	if columns <= 0 || rows <= 0 || len(masks) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 8
	}

	// One cell is 2 dots wide and 4 tall, plus a dot of padding around it.
	cellW := 3 * scale
	cellH := 5 * scale
	width := float64(columns)*cellW + scale
	height := float64(rows)*cellH + scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	dotRadius := scale * 0.38

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			idx := row*columns + col
			if idx >= len(masks) {
				continue
			}
			mask := masks[idx]

			baseX := float64(col)*cellW + scale
			baseY := float64(row)*cellH + scale

			for bit := 0; bit < 8; bit++ {
				dc, dr := braille.DotPosition(bit)
				cx := baseX + float64(dc)*scale + scale/2
				cy := baseY + float64(dr)*scale + scale/2

				if mask&(1<<bit) != 0 {
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#1a1a1a"/>
`, cx, cy, dotRadius))
				} else {
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#cccccc" stroke-width="0.5"/>
`, cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
