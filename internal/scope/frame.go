package scope

import (
	"math"
	"time"

	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/track"
)

// Style selects glyph presentation. Neutralized wins over threat.
type Style int

const (
	StyleNormal Style = iota
	StyleThreat
	StyleNeutralized
)

// Blip is the read-only projection of one track for a frame.
type Blip struct {
	ID          string
	Label       string
	Pos         Point
	Trail       []Point // oldest first, includes Pos
	Alpha       float64
	Size        float64 // glyph radius in columns
	Style       Style
	Locked      bool
	Highlighted bool
	Action      track.Action
	Heading     float64
	HasHeading  bool
}

// LockInfo summarizes the locked track for the side panel.
type LockInfo struct {
	Locked      bool
	ID          string
	Label       string
	Status      string
	Neutralized bool
	Threat      bool
	Source      string
	LastSeen    time.Time
	X, Y        float64
	Alt         float64
	HasAlt      bool
	RSSI        float64
	HasRSSI     bool
	Speed       float64
	HeadingDeg  float64
	HasHeading  bool
	Action      track.Action
	RSSIHistory []float64
	RSSITrend   float64 // dB per second, positive when closing
	HasTrend    bool
}

// Frame is everything the presentation layer needs to draw one frame.
type Frame struct {
	Sweep     float64
	Blips     []Blip
	Lock      LockInfo
	Banner    Banner
	Overlay   string
	Reticle   Point
	ShowRet   bool
	Particles []Particle
	Feed      []FeedEntry
	Tracks    int
	Threats   int
	Status    string
	Connected bool
	Running   bool
	Pending   *Confirmation
}

// Alpha is the decay opacity of a sample aged age: 1 when fresh, falling
// linearly to a floor of MinAlpha at the decay window.
func Alpha(age, decay time.Duration) float64 {
	if decay <= 0 {
		return 1
	}
	return math.Max(config.MinAlpha, 1-float64(age)/float64(decay))
}

// Frame projects the current state onto v. It does not mutate the scope.
func (s *Scope) Frame(v Viewport, now time.Time) Frame {
	f := Frame{
		Sweep:     s.sweep,
		Banner:    s.banner,
		Overlay:   s.overlay,
		Feed:      s.feed,
		Tracks:    s.store.Count(),
		Threats:   s.store.CountThreats(),
		Status:    s.status,
		Connected: s.connected,
		Running:   s.running,
		Pending:   s.pending,
		Lock:      s.lockInfo(),
	}
	if s.cfg.Reticle && v.Valid() {
		f.ShowRet = true
		f.Reticle = s.reticlePoint(v)
	}
	for _, p := range s.particles {
		f.Particles = append(f.Particles, Particle{X: p.x, Y: p.y, Alpha: p.alpha})
	}
	if !v.Valid() {
		return f
	}

	for _, t := range s.store.All() {
		f.Blips = append(f.Blips, s.blip(t, v, now))
	}
	return f
}

func (s *Scope) blip(t *track.Track, v Viewport, now time.Time) Blip {
	latest := t.Latest()
	b := Blip{
		ID:         t.ID,
		Label:      t.DisplayName(),
		Pos:        v.ToScreen(latest.X, latest.Y),
		Trail:      make([]Point, 0, len(t.Positions)),
		Alpha:      Alpha(t.Age(now), s.cfg.DecayWindow),
		Size:       math.Max(6, t.Radius*60) / config.CellPixels,
		Locked:     t.ID == s.lockedID,
		Action:     t.Action,
		Heading:    t.Heading,
		HasHeading: t.HasKinematics,
	}
	for _, p := range t.Positions {
		b.Trail = append(b.Trail, v.ToScreen(p.X, p.Y))
	}
	switch {
	case t.Neutralized:
		b.Style = StyleNeutralized
	case t.Threat:
		b.Style = StyleThreat
	}
	if until, ok := s.highlight[t.ID]; ok && now.Before(until) {
		b.Highlighted = true
	}
	return b
}

func (s *Scope) lockInfo() LockInfo {
	t := s.Locked()
	if t == nil {
		return LockInfo{Label: "No target locked", Status: "N/A"}
	}
	latest := t.Latest()
	info := LockInfo{
		Locked:      true,
		ID:          t.ID,
		Label:       t.DisplayName(),
		Status:      "Active",
		Neutralized: t.Neutralized,
		Threat:      t.Threat,
		Source:      t.Source,
		LastSeen:    latest.Time(),
		X:           latest.X,
		Y:           latest.Y,
		Alt:         t.Alt,
		HasAlt:      t.HasAlt,
		RSSI:        t.RSSI,
		HasRSSI:     t.HasRSSI,
		Speed:       t.Speed,
		HeadingDeg:  t.HeadingDeg,
		HasHeading:  t.HasKinematics,
		Action:      t.Action,
		RSSIHistory: t.Signal.Levels(),
	}
	info.RSSITrend, info.HasTrend = t.Signal.Trend()
	if t.Neutralized {
		info.Status = "Neutralized (" + time.UnixMilli(t.NeutralizedAt).Format("15:04:05") + ")"
	}
	return info
}
