// Package feed normalizes inbound track events from external push channels and
// internal generators into one tagged message type.
package feed

import (
	"time"

	"skyshield.klederson.com/internal/track"
)

// Message is a closed set of inbound events: TrackUpdate, Heartbeat and the
// local Status notification.
type Message interface {
	isMessage()
}

// TrackUpdate is one observation of a radar contact.
type TrackUpdate struct {
	ID     string
	Source string
	X, Y   float64
	R      *float64
	RSSI   *float64
	Alt    *float64
	Label  string
	Threat bool
	At     time.Time // local receive (or creation) time
	Sent   time.Time // sender's ts, informational; zero when absent
}

// Heartbeat is a keep-alive; it never mutates the track store.
type Heartbeat struct {
	At   time.Time
	Sent time.Time
}

// Status reports a change in the transport's connection state. It never
// crosses the wire.
type Status struct {
	Source    string
	Connected bool
	Err       error
}

func (TrackUpdate) isMessage() {}
func (Heartbeat) isMessage()   {}
func (Status) isMessage()      {}

// Observation converts the update into the store's input shape.
func (u TrackUpdate) Observation() track.Observation {
	return track.Observation{
		ID:     u.ID,
		Label:  u.Label,
		Source: u.Source,
		X:      u.X,
		Y:      u.Y,
		TS:     u.At.UnixMilli(),
		Radius: u.R,
		RSSI:   u.RSSI,
		Alt:    u.Alt,
		Threat: u.Threat,
	}
}

// Float returns a pointer to v, for optional TrackUpdate fields.
func Float(v float64) *float64 {
	return &v
}
