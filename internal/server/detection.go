package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"skyshield.klederson.com/internal/feed"
)

// ErrInvalidDetection wraps every rejected detection payload.
var ErrInvalidDetection = errors.New("invalid detection")

// Detection sources accepted by the API.
const (
	SourceVision = "vision"
	SourceRF     = "rf"
	SourceSim    = "sim"
	SourceOther  = "other"
)

// DetectionRequest is the POST /api/detections body.
type DetectionRequest struct {
	ID     string   `json:"id"`
	Source string   `json:"source,omitempty"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	R      *float64 `json:"r,omitempty"`
	RSSI   *float64 `json:"rssi,omitempty"`
	Alt    *float64 `json:"alt,omitempty"`
	Label  string   `json:"label,omitempty"`
	Threat bool     `json:"threat"`
}

// Detection is a stored, timestamped detection.
type Detection struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	R      *float64 `json:"r,omitempty"`
	RSSI   *float64 `json:"rssi,omitempty"`
	Alt    *float64 `json:"alt,omitempty"`
	Label  string   `json:"label,omitempty"`
	Threat bool     `json:"threat"`
	TS     int64    `json:"ts"` // Unix milliseconds
}

// Validate checks the request and fills the default source.
func (r *DetectionRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidDetection)
	}
	if r.X == nil || r.Y == nil {
		return fmt.Errorf("%w: x and y are required", ErrInvalidDetection)
	}
	if *r.X < -1 || *r.X > 1 || *r.Y < -1 || *r.Y > 1 {
		return fmt.Errorf("%w: x and y must be within [-1, 1]", ErrInvalidDetection)
	}
	switch r.Source {
	case "":
		r.Source = SourceOther
	case SourceVision, SourceRF, SourceSim, SourceOther:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidDetection, r.Source)
	}
	return nil
}

// Stamp turns a validated request into a stored detection.
func (r *DetectionRequest) Stamp(at time.Time) Detection {
	return Detection{
		ID:     r.ID,
		Source: r.Source,
		X:      *r.X,
		Y:      *r.Y,
		R:      r.R,
		RSSI:   r.RSSI,
		Alt:    r.Alt,
		Label:  r.Label,
		Threat: r.Threat,
		TS:     at.UnixMilli(),
	}
}

// FromUpdate stores a generated track update as a detection.
func FromUpdate(u feed.TrackUpdate) Detection {
	return Detection{
		ID:     u.ID,
		Source: u.Source,
		X:      u.X,
		Y:      u.Y,
		R:      u.R,
		RSSI:   u.RSSI,
		Alt:    u.Alt,
		Label:  u.Label,
		Threat: u.Threat,
		TS:     u.At.UnixMilli(),
	}
}

// Update converts the detection to the wire event broadcast to clients.
func (d Detection) Update() feed.TrackUpdate {
	return feed.TrackUpdate{
		ID:     d.ID,
		Source: d.Source,
		X:      d.X,
		Y:      d.Y,
		R:      d.R,
		RSSI:   d.RSSI,
		Alt:    d.Alt,
		Label:  d.Label,
		Threat: d.Threat,
		At:     time.UnixMilli(d.TS),
	}
}

// DetectionLog keeps the most recent detections in memory. It is safe for
// concurrent use.
type DetectionLog struct {
	mu    sync.Mutex
	buf   []Detection
	pos   int
	count int
}

// NewDetectionLog creates a log holding at most capacity detections.
func NewDetectionLog(capacity int) *DetectionLog {
	if capacity < 1 {
		capacity = 1
	}
	return &DetectionLog{buf: make([]Detection, capacity)}
}

// Add appends d, overwriting the oldest entry when full.
func (l *DetectionLog) Add(d Detection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf[l.pos] = d
	l.pos = (l.pos + 1) % len(l.buf)
	if l.count < len(l.buf) {
		l.count++
	}
}

// Recent returns up to limit detections, newest first.
func (l *DetectionLog) Recent(limit int) []Detection {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || limit > l.count {
		limit = l.count
	}
	out := make([]Detection, 0, limit)
	for i := 1; i <= limit; i++ {
		out = append(out, l.buf[(l.pos-i+len(l.buf))%len(l.buf)])
	}
	return out
}

// Len returns the number of stored detections.
func (l *DetectionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
