package scope

import (
	"math"
	"time"

	"skyshield.klederson.com/internal/config"
)

type particle struct {
	x, y   float64 // fraction of the panel, wraps at the edges
	vx, vy float64
	alpha  float64
}

// Particle is a background dust mote in panel fractions [0, 1).
type Particle struct {
	X, Y  float64
	Alpha float64
}

// Advance steps the render state by one frame: the sweep wedge, the orbiting
// reticle and its proximity highlights, and the particle field. The sweep
// angle only accumulates; it is never wrapped or reset.
func (s *Scope) Advance(v Viewport, now time.Time) {
	s.sweep += s.cfg.ScanSpeed * s.cfg.SweepGain
	s.advanceParticles()
	if s.cfg.Reticle && s.running && v.Valid() {
		s.reticle += s.cfg.ScanSpeed
		s.highlightNearReticle(v, now)
	}
}

// SweepAngle is the accumulated sweep angle in radians, screen convention
// (0 = east, clockwise on screen).
func (s *Scope) SweepAngle() float64 {
	return s.sweep
}

// reticlePoint is the reticle position on its orbit.
func (s *Scope) reticlePoint(v Viewport) Point {
	r := v.Radius * config.ReticleOrbit
	return Point{
		Col: v.CX + math.Cos(s.reticle)*r,
		Row: v.CY + math.Sin(s.reticle)*r*v.Aspect,
	}
}

func (s *Scope) highlightNearReticle(v Viewport, now time.Time) {
	rp := s.reticlePoint(v)
	for _, t := range s.store.All() {
		p := t.Latest()
		if v.PixelDist(rp, v.ToScreen(p.X, p.Y)) < config.ReticleReachPx {
			s.highlight[t.ID] = now.Add(config.ReticleHighlight)
		}
	}
}

func (s *Scope) advanceParticles() {
	target := int(math.Floor(config.ParticleBase * s.cfg.Particles))
	for len(s.particles) < target {
		s.particles = append(s.particles, particle{
			x:     s.rng.Float64(),
			y:     s.rng.Float64(),
			vx:    (s.rng.Float64()*0.6 - 0.3) * 0.002,
			vy:    (s.rng.Float64()*0.6 - 0.3) * 0.002,
			alpha: s.rng.Float64()*0.6 + 0.1,
		})
	}
	if len(s.particles) > target {
		s.particles = s.particles[len(s.particles)-target:]
	}
	for i := range s.particles {
		p := &s.particles[i]
		p.x = wrap(p.x + p.vx)
		p.y = wrap(p.y + p.vy)
	}
}

func wrap(v float64) float64 {
	if v < 0 {
		return 1
	}
	if v > 1 {
		return 0
	}
	return v
}
