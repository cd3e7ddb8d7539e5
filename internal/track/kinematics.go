package track

import "math"

// Kinematics are display-only estimates derived from two successive samples.
// No smoothing is applied; noisy input yields jittery heading.
type Kinematics struct {
	Speed      float64
	Heading    float64
	HeadingDeg float64
}

// Estimate derives speed and heading from p0 to p1. It reports false when
// dt <= 0 (duplicate or out-of-order sample) so callers keep prior values.
//
// Heading negates dy: display Y grows downward while logical Y grows north.
func Estimate(p0, p1 Sample) (Kinematics, bool) {
	dt := float64(p1.TS-p0.TS) / 1000
	if dt <= 0 {
		return Kinematics{}, false
	}
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	heading := math.Atan2(-dy, dx)
	return Kinematics{
		Speed:      math.Hypot(dx, dy) / dt,
		Heading:    heading,
		HeadingDeg: math.Mod(heading*180/math.Pi+360, 360),
	}, true
}

func (t *Track) applyKinematics() {
	n := len(t.Positions)
	if n < 2 {
		return
	}
	k, ok := Estimate(t.Positions[n-2], t.Positions[n-1])
	if !ok {
		return
	}
	t.Speed = k.Speed
	t.Heading = k.Heading
	t.HeadingDeg = k.HeadingDeg
	t.HasKinematics = true
}
