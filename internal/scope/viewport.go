package scope

import (
	"math"

	"skyshield.klederson.com/internal/config"
)

// Point is a position in terminal cells.
type Point struct {
	Col, Row float64
}

// Viewport maps normalized radar coordinates to terminal cells. Radius is in
// columns; Aspect scales rows because cells are about twice as tall as wide.
type Viewport struct {
	CX, CY float64
	Radius float64
	Aspect float64
}

// NewViewport fits a radar into a width x height cell area. The center sits
// on a whole cell so the crosshair lines up with the grid.
func NewViewport(width, height int) Viewport {
	cx, cy := width/2, height/2
	radius := math.Min(float64(cx-1), float64(cy-1)/config.AspectRatio)
	if radius < 3 {
		radius = 3
	}
	return Viewport{
		CX:     float64(cx),
		CY:     float64(cy),
		Radius: radius,
		Aspect: config.AspectRatio,
	}
}

// ToScreen maps logical (x, y), y growing north, to a cell position.
func (v Viewport) ToScreen(x, y float64) Point {
	return Point{
		Col: v.CX + x*v.Radius,
		Row: v.CY - y*v.Radius*v.Aspect,
	}
}

// PixelDist approximates the on-screen distance between two cell positions
// in pixels.
func (v Viewport) PixelDist(a, b Point) float64 {
	dx := (a.Col - b.Col) * config.CellPixels
	dy := (a.Row - b.Row) * config.CellPixels / v.Aspect
	return math.Hypot(dx, dy)
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool {
	return v.Radius > 0 && v.Aspect > 0
}
