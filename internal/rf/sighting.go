// Package rf turns passive radio sightings (BLE advertisements, classic
// Bluetooth inquiry replies and WiFi beacons) into radar track updates.
package rf

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
	"sync"
	"time"

	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/feed"
)

var log = config.Component("rf")

// Kind distinguishes the radio a sighting came from.
type Kind int

const (
	KindBLE Kind = iota
	KindClassic
	KindWiFi
)

func (k Kind) String() string {
	switch k {
	case KindClassic:
		return "Classic"
	case KindWiFi:
		return "WiFi"
	default:
		return "BLE"
	}
}

// Sighting is one passive observation of a transmitter.
type Sighting struct {
	MAC       string
	Name      string
	RSSI      float64
	Kind      Kind
	Frequency int // MHz, zero for Bluetooth
	Channel   int
}

// Band returns the WiFi frequency band label ("2.4G", "5G", or "").
func (s Sighting) Band() string {
	if s.Frequency >= 5000 {
		return "5G"
	}
	if s.Frequency >= 2400 {
		return "2.4G"
	}
	return ""
}

// label picks a display name: advertised name first, then kind, band and the
// last two octets of the address.
func (s Sighting) label() string {
	if s.Name != "" {
		return s.Name
	}
	parts := []string{s.Kind.String()}
	if b := s.Band(); b != "" {
		parts = append(parts, b)
	}
	if len(s.MAC) >= 17 {
		parts = append(parts, s.MAC[12:])
	}
	return strings.Join(parts, " ")
}

// MacToBearing derives a stable bearing from an address. Radians in [0, 2π),
// 0 = north, increasing clockwise.
func MacToBearing(mac string) float64 {
	h := sha256.Sum256([]byte(mac))
	val := binary.BigEndian.Uint32(h[:4])
	return float64(val) / float64(math.MaxUint32) * 2 * math.Pi
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}

// Projector maps sightings onto the radar plane. Several scanners share one
// projector, so it is safe for concurrent use.
type Projector struct {
	MaxRange float64 // meters mapped to the radar edge
	Now      func() time.Time

	mu       sync.Mutex
	smoothed map[string]float64
}

// NewProjector creates a projector whose edge sits at maxRange meters.
func NewProjector(maxRange float64) *Projector {
	return &Projector{
		MaxRange: maxRange,
		Now:      time.Now,
		smoothed: make(map[string]float64),
	}
}

// Project converts a sighting to a track update. RSSI is EMA-smoothed per
// address so range does not jump on every advertisement.
func (p *Projector) Project(s Sighting) feed.TrackUpdate {
	p.mu.Lock()
	rssi := s.RSSI
	if prev, ok := p.smoothed[s.MAC]; ok {
		rssi = prev*(1-config.SmoothingAlpha) + s.RSSI*config.SmoothingAlpha
	}
	p.smoothed[s.MAC] = rssi
	p.mu.Unlock()

	dist := RSSIToDistance(rssi, config.MeasuredPower, config.PathLossExp)
	r := math.Min(dist/p.MaxRange, 1)
	bearing := MacToBearing(s.MAC)

	return feed.TrackUpdate{
		ID:     "rf-" + s.MAC,
		Source: "rf",
		X:      r * math.Sin(bearing),
		Y:      r * math.Cos(bearing),
		R:      feed.Float(0.03),
		RSSI:   feed.Float(rssi),
		Label:  s.label(),
		At:     p.Now(),
	}
}
