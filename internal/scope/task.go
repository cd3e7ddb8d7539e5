package scope

import "time"

// TaskKind names a scheduled task owned by the scope.
type TaskKind int

const (
	TaskBanner TaskKind = iota
	TaskOverlay
)

// Schedule asks the caller to deliver Expire(Schedule) after the delay.
type Schedule struct {
	Kind  TaskKind
	Seq   uint64
	After time.Duration
}

// Task is a cancel-and-replace scheduled task. Arming it again supersedes any
// pending expiry, so at most one expiry is ever live.
type Task struct {
	kind  TaskKind
	seq   uint64
	armed bool
}

// Arm (re)starts the task and returns the schedule to deliver.
func (t *Task) Arm(after time.Duration) Schedule {
	t.seq++
	t.armed = true
	return Schedule{Kind: t.kind, Seq: t.seq, After: after}
}

// Cancel drops any pending expiry.
func (t *Task) Cancel() {
	t.seq++
	t.armed = false
}

// Fire consumes the expiry for seq. Stale sequences report false.
func (t *Task) Fire(seq uint64) bool {
	if !t.armed || seq != t.seq {
		return false
	}
	t.armed = false
	return true
}

// Pending reports whether an expiry is outstanding.
func (t *Task) Pending() bool {
	return t.armed
}
