// Package scope is the radar core: it owns the track store, the single lock,
// operator actions, the render-loop state and the scheduled banner tasks.
//
// A Scope is driven from one event loop. Every method takes the current time
// explicitly and none of them block or start goroutines; timers are returned
// as Effects for the caller to schedule.
package scope

import (
	"fmt"
	"math/rand"
	"time"

	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/feed"
	"skyshield.klederson.com/internal/track"
)

var log = config.Component("scope")

// FeedEntry is one line of the recent-events list.
type FeedEntry struct {
	At    time.Time
	ID    string
	Label string
}

// Scope is the single context object shared by the live and standalone
// variants. It is not safe for concurrent use.
type Scope struct {
	cfg   config.Scope
	store *track.Store

	lockedID string
	pending  *Confirmation

	banner      Banner
	bannerTask  Task
	overlay     string
	overlayTask Task

	running   bool
	loop      uint64 // render-loop generation, bumped by Start
	sweep     float64
	reticle   float64
	particles []particle
	highlight map[string]time.Time
	rng       *rand.Rand

	feed []FeedEntry

	connected   bool
	everOnline  bool
	status      string
	offlineDone bool
}

// New constructs a scope for cfg. It starts stopped.
func New(cfg config.Scope) *Scope {
	return &Scope{
		cfg:         cfg,
		store:       track.NewStore(cfg.HistoryLimit),
		bannerTask:  Task{kind: TaskBanner},
		overlayTask: Task{kind: TaskOverlay},
		highlight:   make(map[string]time.Time),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		status:      "Connecting",
	}
}

// Config returns the active tunables.
func (s *Scope) Config() config.Scope {
	return s.cfg
}

// Store exposes the track store for read access.
func (s *Scope) Store() *track.Store {
	return s.store
}

// Apply consumes one inbound message.
func (s *Scope) Apply(msg feed.Message, now time.Time) Effects {
	switch m := msg.(type) {
	case feed.Heartbeat:
		return Effects{}
	case feed.Status:
		s.setConnected(m)
		return Effects{}
	case feed.TrackUpdate:
		return s.applyUpdate(m, now)
	default:
		log.Warnf("ignoring unexpected message %T", msg)
		return Effects{}
	}
}

func (s *Scope) setConnected(m feed.Status) {
	s.connected = m.Connected
	if m.Connected {
		s.everOnline = true
		s.status = "Connected to backend"
		return
	}
	s.status = fmt.Sprintf("Disconnected, retrying in %v", config.ReconnectDelay)
}

func (s *Scope) applyUpdate(u feed.TrackUpdate, now time.Time) Effects {
	var fx Effects
	// Samples carry the local receive time so decay and reaping never depend
	// on the sender's clock.
	obs := u.Observation()
	obs.TS = now.UnixMilli()
	t, created := s.store.Upsert(obs)
	if created || s.cfg.FeedUpdates {
		s.record(now, t.ID, t.DisplayName())
	}

	if (u.Threat || u.ID == config.SentinelID) && !t.Neutralized {
		if created || s.cfg.AutoLock != config.AutoLockOnCreate {
			fx.add(s.lock(t, now))
		}
	}

	if s.cfg.StaleAfter > 0 {
		s.reap(now)
	}
	return fx
}

// reap evicts tracks whose newest sample is older than the staleness window.
// A reaped lock is left dangling and reads as "no target" on the next frame.
func (s *Scope) reap(now time.Time) {
	cutoff := now.Add(-s.cfg.StaleAfter).UnixMilli()
	for _, id := range s.store.EvictOlderThan(cutoff) {
		delete(s.highlight, id)
		log.WithField("track", id).Debug("reaped stale track")
	}
}

// CheckOffline runs the offline fallback: if no feed has connected yet it
// injects a simulated threat, locks it and flashes the detection overlay.
func (s *Scope) CheckOffline(now time.Time) Effects {
	if s.everOnline || s.offlineDone {
		return Effects{}
	}
	s.offlineDone = true
	s.status = "No backend, running local overlay"
	log.Warn("feed never connected, injecting simulated target")

	fx := s.applyUpdate(feed.TrackUpdate{
		ID:     "sim-1",
		Source: "sim",
		X:      0.35,
		Y:      0.5,
		R:      feed.Float(0.12),
		RSSI:   feed.Float(-18),
		Alt:    feed.Float(120),
		Label:  "Simulated UAV",
		Threat: true,
		At:     now,
	}, now)
	s.overlay = "Simulated UAV detected"
	fx.Schedules = append(fx.Schedules, s.overlayTask.Arm(config.OverlayDuration))
	return fx
}

// Expire delivers a scheduled task. Superseded schedules are ignored.
func (s *Scope) Expire(sc Schedule) {
	switch sc.Kind {
	case TaskBanner:
		if s.bannerTask.Fire(sc.Seq) {
			s.banner.Visible = false
		}
	case TaskOverlay:
		if s.overlayTask.Fire(sc.Seq) {
			s.overlay = ""
		}
	}
}

// Start sets the running flag and opens a new loop generation. It reports
// false if already running.
func (s *Scope) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	s.loop++
	return true
}

// Loop returns the current render-loop generation. A frame scheduled under an
// older generation must not reschedule.
func (s *Scope) Loop() uint64 {
	return s.loop
}

// Stop clears the running flag; the next frame does not reschedule.
func (s *Scope) Stop() {
	s.running = false
}

// Running reports the render-loop flag.
func (s *Scope) Running() bool {
	return s.running
}

// Connected reports whether the live feed is up.
func (s *Scope) Connected() bool {
	return s.connected
}

// Status is a one-line description of the feed connection.
func (s *Scope) Status() string {
	return s.status
}

// SetStatus overrides the connection line, for sources with no connection.
func (s *Scope) SetStatus(text string) {
	s.status = text
}

// Feed returns the recent-events list, newest first.
func (s *Scope) Feed() []FeedEntry {
	return s.feed
}

func (s *Scope) record(now time.Time, id, label string) {
	s.feed = append([]FeedEntry{{At: now, ID: id, Label: label}}, s.feed...)
	if limit := max(s.cfg.FeedLimit, 0); len(s.feed) > limit {
		s.feed = s.feed[:limit]
	}
}

// SetScanSpeed sets the per-frame sweep increment base.
func (s *Scope) SetScanSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	s.cfg.ScanSpeed = v
}

// SetParticleDensity sets the background particle density in [0, 1].
func (s *Scope) SetParticleDensity(v float64) {
	s.cfg.Particles = clamp(v, 0, 1)
}

// ToggleReticle enables or disables the orbiting scanner reticle.
func (s *Scope) ToggleReticle(on bool) {
	s.cfg.Reticle = on
}

// ToggleSound enables or disables the lock cue.
func (s *Scope) ToggleSound(on bool) {
	s.cfg.Sound = on
}

// SetQuickNeutralize skips the confirmation step for neutralize.
func (s *Scope) SetQuickNeutralize(on bool) {
	s.cfg.QuickNeutralize = on
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
