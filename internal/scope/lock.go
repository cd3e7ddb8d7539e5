package scope

import (
	"time"

	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/track"
)

// LockedID returns the locked track id. The track may have been reaped since;
// use Locked to resolve it.
func (s *Scope) LockedID() string {
	return s.lockedID
}

// Locked returns the locked track, or nil when nothing is locked or the lock
// dangles after reaping.
func (s *Scope) Locked() *track.Track {
	if s.lockedID == "" {
		return nil
	}
	return s.store.Get(s.lockedID)
}

// Lock focuses the track with id. Unknown ids are ignored.
func (s *Scope) Lock(id string, now time.Time) Effects {
	t := s.store.Get(id)
	if t == nil {
		return Effects{}
	}
	fx := s.lock(t, now)
	s.record(now, t.ID, t.DisplayName())
	return fx
}

// lock sets the lock and re-arms the banner. Re-locking the same track only
// restarts the banner timer.
func (s *Scope) lock(t *track.Track, now time.Time) Effects {
	changed := s.lockedID != t.ID
	s.lockedID = t.ID
	if changed {
		log.WithField("track", t.ID).Info("target locked")
	}

	var fx Effects
	if t.Neutralized {
		fx.add(s.showBanner(t.DisplayName()+" (Neutralized)", true))
	} else {
		fx.add(s.showBanner(t.DisplayName(), false))
	}
	fx.Beep = fx.Beep && changed
	return fx
}

// Unlock clears the lock and hides the banner.
func (s *Scope) Unlock() {
	s.lockedID = ""
	s.banner.Visible = false
	s.bannerTask.Cancel()
}

// LockNearest locks the track whose rendered position is closest to the
// given cell, if it lies within the pick radius. It reports whether the lock
// changed.
func (s *Scope) LockNearest(v Viewport, col, row float64, now time.Time) (Effects, bool) {
	if !v.Valid() {
		return Effects{}, false
	}
	click := Point{Col: col, Row: row}
	var (
		nearest *track.Track
		best    = config.PickRadiusPx
	)
	for _, t := range s.store.All() {
		p := t.Latest()
		if d := v.PixelDist(click, v.ToScreen(p.X, p.Y)); d < best {
			best = d
			nearest = t
		}
	}
	if nearest == nil {
		return Effects{}, false
	}
	return s.Lock(nearest.ID, now), true
}

// LockNext cycles the lock through tracks in store order.
func (s *Scope) LockNext(now time.Time) Effects {
	all := s.store.All()
	if len(all) == 0 {
		return Effects{}
	}
	next := 0
	for i, t := range all {
		if t.ID == s.lockedID {
			next = (i + 1) % len(all)
			break
		}
	}
	return s.Lock(all[next].ID, now)
}

func (s *Scope) showBanner(text string, muted bool) Effects {
	s.banner = Banner{Text: text, Muted: muted, Visible: true}
	after := config.BannerDuration
	if muted {
		after = config.MutedBannerDuration
	}
	return Effects{
		Schedules: []Schedule{s.bannerTask.Arm(after)},
		Beep:      s.cfg.Sound && !muted,
	}
}

// Banner returns the current lock banner.
func (s *Scope) Banner() Banner {
	return s.banner
}
