package track

import (
	"fmt"
	"time"
)

// Sample is one observed position in normalized display coordinates
// (x, y roughly within [-1, 1], y grows north) stamped in Unix milliseconds.
type Sample struct {
	X, Y float64
	TS   int64
}

// Time returns the sample timestamp as a time.Time.
func (s Sample) Time() time.Time {
	return time.UnixMilli(s.TS)
}

// Action is a passive operator tag applied to a locked track.
type Action string

const (
	ActionNone       Action = ""
	ActionMonitor    Action = "monitor"
	ActionReport     Action = "report"
	ActionMark       Action = "mark"
	ActionNeutralize Action = "neutralize"
)

// ParseAction maps an operator string to an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionMonitor, ActionReport, ActionMark, ActionNeutralize:
		return a, nil
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// Observation is one normalized sighting handed to the store. Optional
// scalars are nil when the sighting did not carry them.
type Observation struct {
	ID     string
	Label  string
	Source string
	X, Y   float64
	TS     int64
	Radius *float64
	RSSI   *float64
	Alt    *float64
	Threat bool
}

// Track represents one radar contact and its bounded position history.
type Track struct {
	ID     string
	Label  string
	Source string

	Positions []Sample // oldest first, never empty
	Radius    float64

	RSSI    float64
	HasRSSI bool
	Alt     float64
	HasAlt  bool
	Threat  bool

	Speed         float64 // normalized units per second
	Heading       float64 // radians, screen convention (0 = east, clockwise on screen)
	HeadingDeg    float64 // [0, 360)
	HasKinematics bool

	Action        Action
	ActionAt      int64
	Neutralized   bool
	NeutralizedAt int64

	Signal *SignalHistory
}

// Latest returns the most recent position sample.
func (t *Track) Latest() Sample {
	return t.Positions[len(t.Positions)-1]
}

// DisplayName returns the label, falling back to the id.
func (t *Track) DisplayName() string {
	if t.Label == "" {
		return t.ID
	}
	return t.Label
}

// Age returns how long ago the latest sample was taken.
func (t *Track) Age(now time.Time) time.Duration {
	return now.Sub(t.Latest().Time())
}
