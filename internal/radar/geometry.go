package radar

import (
	"math"

	"skyshield.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the radar center in
// columns, accounting for terminal aspect ratio.
func CellDistance(col, row int, cx, cy float64) float64 {
	dx := float64(col) - cx
	dy := (float64(row) - cy) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the compass bearing from center to a cell.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func CellAngle(col, row int, cx, cy float64) float64 {
	dx := float64(col) - cx
	dy := (float64(row) - cy) / config.AspectRatio
	return NormalizeAngle(math.Atan2(dx, -dy))
}

// RingChar returns the appropriate character for a ring at the given angle.
func RingChar(angle float64) rune {
	switch int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8 {
	case 0, 4: // North, South
		return '-'
	case 1, 5: // NE, SW: tangent runs down to the right
		return '\\'
	case 2, 6: // East, West
		return '|'
	default: // SE, NW
		return '/'
	}
}

// HeadingArrow picks an arrow for a screen-convention heading (0 = east,
// clockwise on screen).
func HeadingArrow(heading float64) rune {
	arrows := []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}
	return arrows[int(math.Round(NormalizeAngle(-heading)/(math.Pi/4)))%8]
}

// headingStep is the neighboring cell a heading points at.
func headingStep(heading float64) (dc, dr int) {
	steps := [][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	s := steps[int(math.Round(NormalizeAngle(-heading)/(math.Pi/4)))%8]
	return s[0], s[1]
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the shortest angular distance between two angles.
// Result is in [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
