package radar

import (
	"time"

	"skyshield.klederson.com/internal/feed"
)

func msTime(v int64) time.Time { return time.UnixMilli(v) }

func feedUpdate(id string, x, y float64, threat bool) feed.TrackUpdate {
	return feed.TrackUpdate{ID: id, X: x, Y: y, Threat: threat, At: msTime(0)}
}
