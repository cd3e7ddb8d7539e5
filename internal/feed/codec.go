package feed

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ErrMalformed wraps every inbound payload that does not decode into a Message.
var ErrMalformed = errors.New("malformed message")

const (
	typeTrack     = "track"
	typeHeartbeat = "heartbeat"
)

// wireEvent is the JSON shape exchanged with browsers and the backend.
// Optional numbers are pointers so absence is distinguishable from zero.
type wireEvent struct {
	Type   string   `json:"type,omitempty"`
	ID     string   `json:"id,omitempty"`
	Source string   `json:"source,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	R      *float64 `json:"r,omitempty"`
	RSSI   *float64 `json:"rssi,omitempty"`
	Alt    *float64 `json:"alt,omitempty"`
	Label  string   `json:"label,omitempty"`
	Threat bool     `json:"threat,omitempty"`

	// TS is the sender's clock: Unix milliseconds from this module and the
	// browser, float seconds from Python backends. Never trusted for timing.
	TS json.RawMessage `json:"ts,omitempty"`
}

// secondsCutoff separates float-second timestamps from millisecond ones.
// 1e11 ms is early 1973; 1e11 s is far past any real clock.
const secondsCutoff = 1e11

// parseTS reads a sender timestamp leniently. Anything unreadable yields the
// zero time rather than rejecting the message.
func parseTS(raw json.RawMessage) time.Time {
	raw = bytes.Trim(raw, `"`)
	if len(raw) == 0 {
		return time.Time{}
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return time.Time{}
	}
	if v < secondsCutoff {
		return time.UnixMilli(int64(math.Round(v * 1000)))
	}
	return time.UnixMilli(int64(v))
}

func formatTS(t time.Time) json.RawMessage {
	return json.RawMessage(strconv.FormatInt(t.UnixMilli(), 10))
}

// Decode parses one wire payload. Every message is stamped with received;
// the sender's ts is kept only as Sent.
func Decode(data []byte, received time.Time) (Message, error) {
	var ev wireEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	sent := parseTS(ev.TS)

	switch ev.Type {
	case typeHeartbeat:
		return Heartbeat{At: received, Sent: sent}, nil
	case "", typeTrack:
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformed, ev.Type)
	}

	if ev.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	if ev.X == nil || ev.Y == nil {
		return nil, fmt.Errorf("%w: track %q missing position", ErrMalformed, ev.ID)
	}

	return TrackUpdate{
		ID:     ev.ID,
		Source: ev.Source,
		X:      *ev.X,
		Y:      *ev.Y,
		R:      ev.R,
		RSSI:   ev.RSSI,
		Alt:    ev.Alt,
		Label:  ev.Label,
		Threat: ev.Threat,
		At:     received,
		Sent:   sent,
	}, nil
}

// Encode renders a track update in wire form. ts carries the original sender
// time when the update was relayed, otherwise the local time.
func Encode(u TrackUpdate) ([]byte, error) {
	ts := u.At
	if !u.Sent.IsZero() {
		ts = u.Sent
	}
	x, y := u.X, u.Y
	return json.Marshal(wireEvent{
		ID:     u.ID,
		Source: u.Source,
		X:      &x,
		Y:      &y,
		R:      u.R,
		RSSI:   u.RSSI,
		Alt:    u.Alt,
		Label:  u.Label,
		Threat: u.Threat,
		TS:     formatTS(ts),
	})
}

// EncodeHeartbeat renders a keep-alive in wire form.
func EncodeHeartbeat(at time.Time) ([]byte, error) {
	return json.Marshal(wireEvent{Type: typeHeartbeat, TS: formatTS(at)})
}
