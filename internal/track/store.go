package track

import "skyshield.klederson.com/internal/config"

// Store maps track ids to tracks and owns the canonical target list.
//
// A Store is not safe for concurrent use; it is owned by the single event
// loop that drives the scope.
type Store struct {
	limit  int
	tracks map[string]*Track
	order  []string // insertion order, stable z-ordering for rendering
}

// NewStore creates a store that keeps at most limit samples per track.
func NewStore(limit int) *Store {
	if limit < 2 {
		limit = 2
	}
	return &Store{
		limit:  limit,
		tracks: make(map[string]*Track),
	}
}

// Upsert creates the track on first sight of obs.ID, otherwise appends a
// sample (dropping the oldest past the limit) and refreshes last-known values.
// Kinematics are recomputed whenever two or more samples exist.
func (s *Store) Upsert(obs Observation) (t *Track, created bool) {
	p := Sample{X: obs.X, Y: obs.Y, TS: obs.TS}

	t, ok := s.tracks[obs.ID]
	if !ok {
		t = &Track{
			ID:        obs.ID,
			Label:     obs.ID,
			Source:    obs.Source,
			Positions: make([]Sample, 0, s.limit),
			Radius:    config.DefaultRadius,
			Signal:    NewSignalHistory(config.RSSIHistoryLen),
		}
		if obs.Radius != nil {
			t.Radius = *obs.Radius
		}
		s.tracks[obs.ID] = t
		s.order = append(s.order, obs.ID)
		created = true
	}

	t.Positions = append(t.Positions, p)
	if len(t.Positions) > s.limit {
		t.Positions = append(t.Positions[:0], t.Positions[len(t.Positions)-s.limit:]...)
	}

	if obs.RSSI != nil {
		t.RSSI = *obs.RSSI
		t.HasRSSI = true
		t.Signal.Add(Reading{RSSI: t.RSSI, TS: obs.TS})
	}
	if obs.Alt != nil {
		t.Alt = *obs.Alt
		t.HasAlt = true
	}
	if obs.Label != "" {
		t.Label = obs.Label
	}
	if obs.Source != "" {
		t.Source = obs.Source
	}
	t.Threat = obs.Threat

	t.applyKinematics()
	return t, created
}

// Get returns the track for id, or nil.
func (s *Store) Get(id string) *Track {
	return s.tracks[id]
}

// All returns every track in insertion order.
func (s *Store) All() []*Track {
	result := make([]*Track, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.tracks[id])
	}
	return result
}

// EvictOlderThan removes tracks whose latest sample is strictly before
// cutoff (Unix milliseconds) and returns their ids.
func (s *Store) EvictOlderThan(cutoff int64) []string {
	var evicted []string
	kept := s.order[:0]
	for _, id := range s.order {
		if s.tracks[id].Latest().TS < cutoff {
			delete(s.tracks, id)
			evicted = append(evicted, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return evicted
}

// Count returns the number of tracks.
func (s *Store) Count() int {
	return len(s.tracks)
}

// CountThreats returns how many live (non-neutralized) tracks carry the threat flag.
func (s *Store) CountThreats() int {
	n := 0
	for _, t := range s.tracks {
		if t.Threat && !t.Neutralized {
			n++
		}
	}
	return n
}
