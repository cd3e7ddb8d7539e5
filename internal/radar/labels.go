package radar

import (
	"math"

	"skyshield.klederson.com/internal/scope"
)

type placedLabel struct {
	text     string
	col, row int
}

// placeLabels puts each label to the right of its glyph, or to the left near
// the edge, then tries the row below and above on collision. Labels that
// still collide are dropped to keep the scope readable.
func placeLabels(blips []scope.Blip, width int) []placedLabel {
	type segment struct{ start, end int }
	occupied := make(map[int][]segment)
	free := func(row, start, end int) bool {
		for _, seg := range occupied[row] {
			if start < seg.end && end > seg.start {
				return false
			}
		}
		return true
	}

	for _, b := range blips {
		col, row := int(math.Round(b.Pos.Col)), int(math.Round(b.Pos.Row))
		occupied[row] = append(occupied[row], segment{col - 1, col + 2})
	}

	out := make([]placedLabel, len(blips))
	for i, b := range blips {
		text := []rune(b.Label)
		if len(text) > maxLabelLen {
			text = text[:maxLabelLen]
		}
		col, row := int(math.Round(b.Pos.Col)), int(math.Round(b.Pos.Row))

		lc := col + 2
		if lc+len(text) >= width {
			lc = col - len(text) - 1
		}
		if lc < 0 {
			lc = 0
		}

		placed := false
		for _, lr := range []int{row, row + 1, row - 1} {
			if free(lr, lc, lc+len(text)) {
				out[i] = placedLabel{text: string(text), col: lc, row: lr}
				occupied[lr] = append(occupied[lr], segment{lc, lc + len(text)})
				placed = true
				break
			}
		}
		if !placed {
			out[i] = placedLabel{}
		}
	}
	return out
}
