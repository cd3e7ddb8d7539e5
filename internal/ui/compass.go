package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/radar"
)

// headingFullScale is the speed (normalized units per second) at which the
// compass arrow reaches its full length.
const headingFullScale = 0.1

// RenderCompass renders a compass with an arrow along a target's course.
// bearing: radians (0=north, clockwise), speed: normalized units per second.
func RenderCompass(width, height int, bearing, speed float64, color lipgloss.Color) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]rune, height)
	isArrow := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		isArrow[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3) // horizontal radius in columns
	ry := math.Max(fcy-2.0, 2) // vertical radius in rows

	// Ring
	steps := 80
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if inGrid(width, height, col, row) && grid[row][col] == ' ' {
			grid[row][col] = radar.RingChar(a)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// Cardinal markers
	setGrid(grid, width, height, cx, cy-int(math.Round(ry))-1, 'N')
	setGrid(grid, width, height, cx, cy+int(math.Round(ry))+1, 'S')
	setGrid(grid, width, height, cx+int(math.Round(rx))+1, cy, 'E')
	setGrid(grid, width, height, cx-int(math.Round(rx))-1, cy, 'W')

	// Faint axes
	for r := cy - int(ry) + 1; r < cy+int(ry); r++ {
		if r != cy && inGrid(width, height, cx, r) && grid[r][cx] == ' ' {
			grid[r][cx] = ':'
		}
	}
	for c := cx - int(rx) + 1; c < cx+int(rx); c++ {
		if c != cx && inGrid(width, height, c, cy) && grid[cy][c] == ' ' {
			grid[cy][c] = '.'
		}
	}

	setGrid(grid, width, height, cx, cy, '+')

	// Faster targets get a longer arrow.
	maxFrac := 0.85
	minFrac := 0.3
	arrowFrac := minFrac + (maxFrac-minFrac)*math.Min(speed/headingFullScale, 1)

	sinA := math.Sin(bearing)
	cosA := math.Cos(bearing)

	shaftSteps := int(math.Max(rx, ry) * arrowFrac)
	if shaftSteps < 2 {
		shaftSteps = 2
	}

	tipCol, tipRow := cx, cy
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * arrowFrac
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if inGrid(width, height, col, row) {
			grid[row][col] = shaftChar(bearing)
			isArrow[row][col] = true
			tipCol, tipRow = col, row
		}
	}

	// The radar arrows use screen convention: east is zero.
	grid[tipRow][tipCol] = radar.HeadingArrow(bearing - math.Pi/2)
	isArrow[tipRow][tipCol] = true

	arrowSty := lipgloss.NewStyle().Foreground(color).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	axisSty := lipgloss.NewStyle().Foreground(lipgloss.Color("#003300"))
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == 'N' || ch == 'S' || ch == 'E' || ch == 'W' || ch == '+':
				sb.WriteString(markSty.Render(string(ch)))
			case isArrow[row][col]:
				sb.WriteString(arrowSty.Render(string(ch)))
			case ch == ':' || ch == '.':
				sb.WriteString(axisSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func inGrid(w, h, col, row int) bool {
	return col >= 0 && col < w && row >= 0 && row < h
}

func setGrid(grid [][]rune, w, h, col, row int, ch rune) {
	if inGrid(w, h, col, row) {
		grid[row][col] = ch
	}
}

// shaftChar returns the line character for a compass bearing.
func shaftChar(a float64) rune {
	switch int(math.Round(radar.NormalizeAngle(a)/(math.Pi/4))) % 8 {
	case 0, 4: // N, S
		return '|'
	case 2, 6: // E, W
		return '-'
	case 1, 5: // NE, SW
		return '/'
	default: // SE, NW
		return '\\'
	}
}

// bearingToDir names the nearest of the eight compass points.
func bearingToDir(a float64) string {
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	return dirs[int(math.Round(radar.NormalizeAngle(a)/(math.Pi/4)))%8]
}

// signalColor maps RSSI to a green shade (brighter = stronger).
func signalColor(rssi float64) lipgloss.Color {
	switch {
	case rssi > -50:
		return "#00FF41"
	case rssi > -60:
		return "#00CC33"
	case rssi > -70:
		return "#00AA22"
	case rssi > -80:
		return "#008F11"
	}
	return "#005511"
}
