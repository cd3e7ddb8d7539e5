package feed

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"skyshield.klederson.com/internal/config"
)

// span is a closed interval for random draws.
type span struct{ Min, Max float64 }

func (s span) draw(r *rand.Rand) float64 {
	return s.Min + r.Float64()*(s.Max-s.Min)
}

// Scenario describes what the synthetic generator spawns and how it moves.
type Scenario struct {
	Name       string
	StartDelay time.Duration

	LeadID    string
	LeadLabel string
	LeadX     float64
	LeadY     float64
	LeadR     float64
	LeadRSSI  float64
	LeadAlt   float64

	EchoPrefix string
	EchoCount  int
	EchoDX     float64 // echoes scatter within ±EchoDX, ±EchoDY of the lead
	EchoDY     float64
	EchoR      span
	EchoRSSI   span
	EchoAlt    float64 // ± around the lead altitude

	BackgroundDelay  time.Duration
	BackgroundPrefix string
	BackgroundCount  int
	BackgroundPos    float64 // background x, y drawn from ±BackgroundPos
	BackgroundR      span
	BackgroundRSSI   span
	BackgroundAlt    span

	Interval time.Duration
	Step     float64 // per-tick random walk bound on x and y
	RSSIStep float64
	MoveAll  bool // perturb lead and echoes too, not just background targets
}

// StandaloneScenario is the self-contained demo: one dramatic threat, its
// echoes and a handful of drifting unknowns, all jittered every 450ms.
func StandaloneScenario() Scenario {
	return Scenario{
		Name:      "standalone",
		LeadID:    config.SentinelID,
		LeadLabel: "Unidentified UAV",
		LeadX:     0.22, LeadY: -0.18,
		LeadR: 0.11, LeadRSSI: -18, LeadAlt: 120.5,

		EchoPrefix: "echo-",
		EchoCount:  4,
		EchoDX:     0.07, EchoDY: 0.06,
		EchoR:    span{0.04, 0.04},
		EchoRSSI: span{-60, -60},
		EchoAlt:  5,

		BackgroundPrefix: "bg-",
		BackgroundCount:  6,
		BackgroundPos:    0.8,
		BackgroundR:      span{0.02, 0.08},
		BackgroundRSSI:   span{-80, -40},
		BackgroundAlt:    span{10, 210},

		Interval: 450 * time.Millisecond,
		Step:     0.015,
		RSSIStep: 1,
		MoveAll:  true,
	}
}

// BackendScenario mirrors the server-side simulator: the lead and echoes are
// announced once, then six sim targets random-walk every 500ms.
func BackendScenario() Scenario {
	return Scenario{
		Name:       "backend",
		StartDelay: 300 * time.Millisecond,
		LeadID:     config.SentinelID,
		LeadLabel:  "Unidentified UAV",
		LeadX:      0.35, LeadY: 0.5,
		LeadR: 0.12, LeadRSSI: -18, LeadAlt: 120.5,

		EchoPrefix: config.SentinelID + "-echo-",
		EchoCount:  4,
		EchoDX:     0.08, EchoDY: 0.08,
		EchoR:    span{0.03, 0.06},
		EchoRSSI: span{-70, -30},
		EchoAlt:  10,

		BackgroundDelay:  time.Second,
		BackgroundPrefix: "sim-",
		BackgroundCount:  6,
		BackgroundPos:    0.9,
		BackgroundR:      span{0.02, 0.08},
		BackgroundRSSI:   span{-90, -30},
		BackgroundAlt:    span{5, 200},

		Interval: 500 * time.Millisecond,
		Step:     0.02,
		RSSIStep: 1.5,
	}
}

type simTarget struct {
	id, label string
	x, y      float64
	r         float64
	rssi      float64
	alt       float64
	threat    bool
}

func (t *simTarget) update(at time.Time) TrackUpdate {
	return TrackUpdate{
		ID:     t.id,
		Source: "sim",
		X:      t.x,
		Y:      t.y,
		R:      Float(t.r),
		RSSI:   Float(t.rssi),
		Alt:    Float(t.alt),
		Label:  t.label,
		Threat: t.threat,
		At:     at,
	}
}

// Synthetic generates demo targets locally. It is the event source of the
// standalone variant and of the server simulator.
type Synthetic struct {
	Scenario Scenario
	Now      func() time.Time

	rng    *rand.Rand
	moving []*simTarget
}

// NewSynthetic creates a generator for sc seeded with seed.
func NewSynthetic(sc Scenario, seed int64) *Synthetic {
	return &Synthetic{
		Scenario: sc,
		Now:      time.Now,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Run spawns the scenario and perturbs its targets until ctx is cancelled.
func (s *Synthetic) Run(ctx context.Context, emit Emit) error {
	sc := s.Scenario
	if !sleep(ctx, sc.StartDelay) {
		return ctx.Err()
	}
	for _, u := range s.Spawn(s.Now()) {
		emit(u)
	}
	if !sleep(ctx, sc.BackgroundDelay) {
		return ctx.Err()
	}
	for _, u := range s.SpawnBackground(s.Now()) {
		emit(u)
	}
	log.WithField("scenario", sc.Name).Infof("synthetic feed spawned %d moving targets", len(s.moving))

	ticker := time.NewTicker(sc.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, u := range s.Tick(s.Now()) {
				emit(u)
			}
		}
	}
}

// Spawn creates the lead threat and its echoes.
func (s *Synthetic) Spawn(at time.Time) []TrackUpdate {
	sc := s.Scenario
	lead := &simTarget{
		id:     sc.LeadID,
		label:  sc.LeadLabel,
		x:      sc.LeadX,
		y:      sc.LeadY,
		r:      sc.LeadR,
		rssi:   sc.LeadRSSI,
		alt:    sc.LeadAlt,
		threat: true,
	}
	out := []TrackUpdate{lead.update(at)}
	if sc.MoveAll {
		s.moving = append(s.moving, lead)
	}

	for i := 0; i < sc.EchoCount; i++ {
		echo := &simTarget{
			id:    fmt.Sprintf("%s%d", sc.EchoPrefix, i),
			label: "echo",
			x:     sc.LeadX + (s.rng.Float64()*2-1)*sc.EchoDX,
			y:     sc.LeadY + (s.rng.Float64()*2-1)*sc.EchoDY,
			r:     sc.EchoR.draw(s.rng),
			rssi:  sc.EchoRSSI.draw(s.rng),
			alt:   sc.LeadAlt + (s.rng.Float64()*2-1)*sc.EchoAlt,
		}
		out = append(out, echo.update(at))
		if sc.MoveAll {
			s.moving = append(s.moving, echo)
		}
	}
	return out
}

// SpawnBackground creates the drifting unknown targets.
func (s *Synthetic) SpawnBackground(at time.Time) []TrackUpdate {
	sc := s.Scenario
	out := make([]TrackUpdate, 0, sc.BackgroundCount)
	for i := 0; i < sc.BackgroundCount; i++ {
		bg := &simTarget{
			id:    fmt.Sprintf("%s%d", sc.BackgroundPrefix, i),
			label: "unknown",
			x:     (s.rng.Float64()*2 - 1) * sc.BackgroundPos,
			y:     (s.rng.Float64()*2 - 1) * sc.BackgroundPos,
			r:     sc.BackgroundR.draw(s.rng),
			rssi:  sc.BackgroundRSSI.draw(s.rng),
			alt:   sc.BackgroundAlt.draw(s.rng),
		}
		s.moving = append(s.moving, bg)
		out = append(out, bg.update(at))
	}
	return out
}

// Tick perturbs every moving target by a bounded random walk.
func (s *Synthetic) Tick(at time.Time) []TrackUpdate {
	sc := s.Scenario
	out := make([]TrackUpdate, 0, len(s.moving))
	for _, t := range s.moving {
		t.x = clamp(t.x+(s.rng.Float64()*2-1)*sc.Step, -1, 1)
		t.y = clamp(t.y+(s.rng.Float64()*2-1)*sc.Step, -1, 1)
		t.rssi += (s.rng.Float64()*2 - 1) * sc.RSSIStep
		out = append(out, t.update(at))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// sleep waits d or until ctx is done; it reports whether the wait completed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
