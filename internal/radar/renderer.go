package radar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/scope"
	"skyshield.klederson.com/internal/track"
)

const maxLabelLen = 10

type cell struct {
	ch   rune
	fg   colorful.Color
	bold bool
}

// canvas is a character grid painted in layers; later layers overwrite.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', fg: colorBackground}
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return col >= 0 && col < c.w && row >= 0 && row < c.h
}

func (c *canvas) put(col, row int, ch rune, fg colorful.Color, bold bool) {
	if !c.inside(col, row) {
		return
	}
	c.cells[row*c.w+col] = cell{ch: ch, fg: fg, bold: bold}
}

func (c *canvas) text(col, row int, s string, fg colorful.Color) {
	for i, r := range []rune(s) {
		c.put(col+i, row, r, fg, false)
	}
}

// String serializes the grid, merging runs of identically styled cells into
// one lipgloss render.
func (c *canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.h; row++ {
		start := 0
		for col := 1; col <= c.w; col++ {
			a := c.cells[row*c.w+start]
			if col < c.w {
				b := c.cells[row*c.w+col]
				if b.fg == a.fg && b.bold == a.bold {
					continue
				}
			}
			var run strings.Builder
			for i := start; i < col; i++ {
				run.WriteRune(c.cells[row*c.w+i].ch)
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(a.fg.Hex())).Bold(a.bold)
			sb.WriteString(style.Render(run.String()))
			start = col
		}
		if row < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func round(p scope.Point) (int, int) {
	return int(math.Round(p.Col)), int(math.Round(p.Row))
}

// Render rasterizes one frame in the fixed layer order: background grid and
// particles, trails, sweep, glyphs, lock ring, reticle.
func Render(width, height int, v scope.Viewport, f scope.Frame) string {
	if width < 10 || height < 5 {
		return ""
	}
	c := newCanvas(width, height)
	drawBackground(c, v, f.Particles)
	drawTrails(c, f.Blips)
	drawSweep(c, v, SweepFrom(f.Sweep))
	drawBlips(c, f.Blips)
	drawLock(c, v, f.Blips)
	if f.ShowRet {
		col, row := round(f.Reticle)
		c.put(col, row, '⊕', colorReticle, true)
	}
	return c.String()
}

func drawBackground(c *canvas, v scope.Viewport, particles []scope.Particle) {
	for _, p := range particles {
		c.put(int(p.X*float64(c.w)), int(p.Y*float64(c.h)), '·', fade(colorParticle, p.Alpha), false)
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = v.Radius * float64(i+1) / float64(config.RingCount)
	}
	cx, cy := int(v.CX), int(v.CY)

	for row := 0; row < c.h; row++ {
		for col := 0; col < c.w; col++ {
			dist := CellDistance(col, row, v.CX, v.CY)
			if dist > v.Radius+0.5 {
				continue
			}
			angle := CellAngle(col, row, v.CX, v.CY)
			switch {
			case col == cx && row == cy:
				c.put(col, row, '+', colorCenter, true)
			case col == cx:
				c.put(col, row, '|', colorRing, false)
			case row == cy:
				c.put(col, row, '-', colorRing, false)
			default:
				ring := false
				for _, r := range ringRadii {
					if math.Abs(dist-r) < 0.8 {
						c.put(col, row, RingChar(angle), colorRing, false)
						ring = true
						break
					}
				}
				if !ring {
					c.put(col, row, '.', colorDot, false)
				}
			}
		}
	}
	if row := cy - int(v.Radius*v.Aspect) + 1; c.inside(cx, row) {
		c.put(cx, row, 'N', colorLabel, true)
	}
}

// drawTrails plots each blip's position history as a dotted polyline.
func drawTrails(c *canvas, blips []scope.Blip) {
	for _, b := range blips {
		fg := fade(colorTrail, 0.35)
		if b.Style == scope.StyleNeutralized {
			fg = fade(colorNeutral, 0.3)
		}
		for i := 1; i < len(b.Trail); i++ {
			c0, r0 := round(b.Trail[i-1])
			c1, r1 := round(b.Trail[i])
			line(c0, r0, c1, r1, func(col, row int) {
				c.put(col, row, '·', fg, false)
			})
		}
	}
}

// drawSweep lights the cells already painted inside the radar.
func drawSweep(c *canvas, v scope.Viewport, sweep Sweep) {
	for row := 0; row < c.h; row++ {
		for col := 0; col < c.w; col++ {
			if CellDistance(col, row, v.CX, v.CY) > v.Radius+0.5 {
				continue
			}
			intensity := sweep.Intensity(CellAngle(col, row, v.CX, v.CY))
			if intensity <= 0 {
				continue
			}
			cl := &c.cells[row*c.w+col]
			cl.fg = sweepColor(cl.fg, intensity)
			if cl.ch == ' ' {
				cl.ch = '.'
			}
		}
	}
}

func drawBlips(c *canvas, blips []scope.Blip) {
	labels := placeLabels(blips, c.w)
	for i, b := range blips {
		col, row := round(b.Pos)
		alpha := b.Alpha
		if b.Highlighted {
			alpha = 1
		}

		switch b.Style {
		case scope.StyleNeutralized:
			c.put(col, row, '✕', fade(colorCross, math.Max(alpha, 0.6)), true)
		case scope.StyleThreat:
			c.put(col, row, '◆', fade(colorThreat, alpha), true)
		default:
			c.put(col, row, '●', fade(colorContact, alpha), b.Highlighted)
		}

		if b.Style != scope.StyleNeutralized {
			if b.HasHeading {
				dc, dr := headingStep(b.Heading)
				c.put(col+dc, row+dr, HeadingArrow(b.Heading), fade(colorLabel, alpha*0.6), false)
			}
			drawBadge(c, col, row, b.Action)
		}

		if l := labels[i]; l.text != "" {
			fg := fade(colorLabel, math.Min(0.95, alpha))
			if b.Style == scope.StyleNeutralized {
				fg = colorNeutral
			}
			c.text(l.col, l.row, l.text, fg)
		}
	}
}

func drawBadge(c *canvas, col, row int, a track.Action) {
	switch a {
	case track.ActionMonitor:
		c.put(col-1, row, '(', colorMonitor, false)
		c.put(col+1, row, ')', colorMonitor, false)
	case track.ActionReport:
		c.put(col+1, row-1, '▸', colorReport, true)
	case track.ActionMark:
		c.put(col+1, row-1, '■', colorMark, false)
	}
}

// drawLock frames the locked blip with corner brackets sized to its extent.
func drawLock(c *canvas, v scope.Viewport, blips []scope.Blip) {
	for _, b := range blips {
		if !b.Locked {
			continue
		}
		fg := colorLock
		if b.Style == scope.StyleNeutralized {
			fg = colorLockMuted
		}
		col, row := round(b.Pos)
		dc := int(math.Max(2, math.Round(b.Size*1.6)))
		dr := int(math.Max(1, math.Round(float64(dc)*v.Aspect)))
		c.put(col-dc, row-dr, '┌', fg, true)
		c.put(col+dc, row-dr, '┐', fg, true)
		c.put(col-dc, row+dr, '└', fg, true)
		c.put(col+dc, row+dr, '┘', fg, true)
	}
}

// line walks the cells between two points (Bresenham).
func line(c0, r0, c1, r1 int, plot func(col, row int)) {
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	err := dc + dr
	for {
		plot(c0, r0)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * err
		if e2 >= dr {
			err += dr
			c0 += sc
		}
		if e2 <= dc {
			err += dc
			r0 += sr
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RenderLegend produces the radar legend line.
func RenderLegend(width int) string {
	legend := styleLegContact.Render("● contact") + "  " +
		styleLegThreat.Render("◆ threat") + "  " +
		styleLegNeutral.Render("✕ neutralized") + "  " +
		styleLegReticle.Render("⊕ scan")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
