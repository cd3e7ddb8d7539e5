package app

import (
	"time"

	"skyshield.klederson.com/internal/feed"
	"skyshield.klederson.com/internal/scope"
)

// FrameMsg triggers one render-loop frame of generation Loop.
type FrameMsg struct {
	At   time.Time
	Loop uint64
}

// FeedMsg carries one inbound message from the event sources.
type FeedMsg struct {
	Msg feed.Message
}

// ExpireMsg delivers a scheduled banner or overlay task.
type ExpireMsg struct {
	Schedule scope.Schedule
}

// OfflineCheckMsg fires once, a short grace period after startup.
type OfflineCheckMsg time.Time

// SourceErrorMsg reports that the event sources stopped with an error.
type SourceErrorMsg struct {
	Err error
}
