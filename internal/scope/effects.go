package scope

// Effects are the side effects an operation asks the surrounding program to
// carry out: timers to schedule and an optional audio cue.
type Effects struct {
	Schedules []Schedule
	Beep      bool
}

func (e *Effects) add(o Effects) {
	e.Schedules = append(e.Schedules, o.Schedules...)
	e.Beep = e.Beep || o.Beep
}

// Empty reports whether there is nothing to do.
func (e Effects) Empty() bool {
	return len(e.Schedules) == 0 && !e.Beep
}

// Banner is the transient lock alert.
type Banner struct {
	Text    string
	Muted   bool // neutralized presentation
	Visible bool
}
