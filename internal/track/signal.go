package track

// Reading is one received signal strength sample.
type Reading struct {
	RSSI float64 // dBm, after any smoothing upstream
	TS   int64   // Unix milliseconds
}

// SignalHistory keeps the newest readings of a track's signal strength,
// oldest first.
type SignalHistory struct {
	limit    int
	readings []Reading
}

// NewSignalHistory keeps at most limit readings.
func NewSignalHistory(limit int) *SignalHistory {
	return &SignalHistory{limit: max(limit, 2)}
}

// Add records r, dropping the oldest reading past the limit.
func (h *SignalHistory) Add(r Reading) {
	h.readings = append(h.readings, r)
	if len(h.readings) > h.limit {
		h.readings = append(h.readings[:0], h.readings[len(h.readings)-h.limit:]...)
	}
}

// Levels returns the RSSI values oldest first, or nil when empty.
func (h *SignalHistory) Levels() []float64 {
	if len(h.readings) == 0 {
		return nil
	}
	out := make([]float64, len(h.readings))
	for i, r := range h.readings {
		out[i] = r.RSSI
	}
	return out
}

// Len returns the number of readings held.
func (h *SignalHistory) Len() int {
	return len(h.readings)
}

// Trend is the mean change in dBm per second across the window. A rising
// signal usually means the emitter is closing. ok is false with fewer than
// two readings or no elapsed time.
func (h *SignalHistory) Trend() (dbPerSec float64, ok bool) {
	n := len(h.readings)
	if n < 2 {
		return 0, false
	}
	first, last := h.readings[0], h.readings[n-1]
	dt := float64(last.TS-first.TS) / 1000
	if dt <= 0 {
		return 0, false
	}
	return (last.RSSI - first.RSSI) / dt, true
}
