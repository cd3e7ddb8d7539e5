package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"skyshield.klederson.com/internal/track"
)

var (
	// ErrNoTarget means an action was requested with nothing locked.
	ErrNoTarget = errors.New("no target locked")
	// ErrNeutralized means the locked target no longer accepts actions.
	ErrNeutralized = errors.New("target already neutralized")
	// ErrNoPending means Resolve was called with no confirmation open.
	ErrNoPending = errors.New("no action awaiting confirmation")
)

// Confirmation is an operator action waiting for a yes/no decision.
type Confirmation struct {
	Action   track.Action
	TargetID string
	Label    string
}

// Prompt is the question to show the operator.
func (c *Confirmation) Prompt() string {
	if c.Action == track.ActionNeutralize {
		return fmt.Sprintf("Mark %s as neutralized? This is a passive flag and cannot be undone.", c.Label)
	}
	return fmt.Sprintf("Apply %q to %s? This is a passive tag.", string(c.Action), c.Label)
}

// ApplyAction tags the locked track. Neutralize is routed to Neutralize.
// With nothing locked, or on a neutralized track, it does nothing.
func (s *Scope) ApplyAction(a track.Action, now time.Time) Effects {
	return s.applyTo(s.Locked(), a, now)
}

// Neutralize marks the locked track neutralized. It is terminal: the flag is
// never cleared and further actions are refused.
func (s *Scope) Neutralize(now time.Time) Effects {
	return s.neutralize(s.Locked(), now)
}

func (s *Scope) applyTo(t *track.Track, a track.Action, now time.Time) Effects {
	if a == track.ActionNeutralize {
		return s.neutralize(t, now)
	}
	if t == nil || t.Neutralized || a == track.ActionNone {
		return Effects{}
	}
	t.Action = a
	t.ActionAt = now.UnixMilli()
	s.record(now, t.ID, fmt.Sprintf("%s -> %s", t.DisplayName(), a))
	log.WithFields(logrus.Fields{"track": t.ID, "action": string(a)}).Info("action applied")
	return s.showBanner(fmt.Sprintf("%s : %s", t.DisplayName(), a), false)
}

func (s *Scope) neutralize(t *track.Track, now time.Time) Effects {
	if t == nil || t.Neutralized {
		return Effects{}
	}
	t.Neutralized = true
	t.NeutralizedAt = now.UnixMilli()
	t.Action = track.ActionNeutralize
	t.ActionAt = t.NeutralizedAt
	s.record(now, t.ID, t.DisplayName()+" marked neutralized")
	log.WithField("track", t.ID).Info("target neutralized")
	return s.showBanner(t.DisplayName()+" (Neutralized)", true)
}

// Request opens the confirmation step for an action on the locked track.
// Quick mode performs neutralize immediately and returns no confirmation.
func (s *Scope) Request(a track.Action, now time.Time) (*Confirmation, Effects, error) {
	t := s.Locked()
	if t == nil {
		return nil, Effects{}, ErrNoTarget
	}
	if t.Neutralized {
		return nil, Effects{}, ErrNeutralized
	}
	if a == track.ActionNeutralize && s.cfg.QuickNeutralize {
		return nil, s.Neutralize(now), nil
	}
	s.pending = &Confirmation{Action: a, TargetID: t.ID, Label: t.DisplayName()}
	return s.pending, Effects{}, nil
}

// Pending returns the open confirmation, if any.
func (s *Scope) Pending() *Confirmation {
	return s.pending
}

// Resolve closes the confirmation. An accepted action is applied to the
// track it was requested for, even if the lock has since moved; a track
// that has been reaped or neutralized in between is left alone.
func (s *Scope) Resolve(accept bool, now time.Time) (Effects, error) {
	c := s.pending
	if c == nil {
		return Effects{}, ErrNoPending
	}
	s.pending = nil
	if !accept {
		return Effects{}, nil
	}
	// Nil when reaped in the meantime.
	return s.applyTo(s.store.Get(c.TargetID), c.Action, now), nil
}
