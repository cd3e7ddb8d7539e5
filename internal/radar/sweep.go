package radar

import (
	"math"

	"skyshield.klederson.com/internal/config"
)

// Sweep is the rotating sweep line for one frame.
type Sweep struct {
	Angle float64 // compass bearing in radians [0, 2π), 0=north, clockwise
}

// SweepFrom converts an accumulated screen-convention angle (0 = east,
// clockwise on screen) into a compass bearing.
func SweepFrom(screenAngle float64) Sweep {
	return Sweep{Angle: NormalizeAngle(screenAngle + math.Pi/2)}
}

// Degrees returns the current sweep angle in degrees.
func (s Sweep) Degrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Intensity returns the glow intensity [0, 1] for a given cell angle: full
// across the wedge, then a linear falloff over SweepTrailDeg behind it.
func (s Sweep) Intensity(cellAngle float64) float64 {
	half := config.SweepWidthRad / 2
	diff := NormalizeAngle(s.Angle - cellAngle)
	if diff <= half || diff >= 2*math.Pi-half {
		return 1
	}
	trailRad := config.SweepTrailDeg * math.Pi / 180.0
	diff -= half
	if diff > trailRad {
		return 0
	}
	return 1.0 - diff/trailRad
}
