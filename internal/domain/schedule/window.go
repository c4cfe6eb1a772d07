package schedule

import "time"

// State classifies an instant against an attendance window.
type State string

const (
	StateNotYetOpen State = "not_yet_open"
	StateOnTime     State = "on_time"
	StateLate       State = "late"
	StateClosed     State = "closed"
)

// Policy holds the window offsets around a scheduled instant. The defaults
// (5/10/15 minutes) are product policy; deployments may override them via
// config but the defaults must stay put.
type Policy struct {
	EarlyOpen  time.Duration // accepted as on-time this long before the scheduled instant
	OnTimeSpan time.Duration // accepted as on-time this long after the scheduled instant
	LateGrace  time.Duration // accepted as late this long after the on-time span ends
}

// DefaultPolicy returns the standard attendance window offsets.
func DefaultPolicy() Policy {
	return Policy{
		EarlyOpen:  5 * time.Minute,
		OnTimeSpan: 10 * time.Minute,
		LateGrace:  15 * time.Minute,
	}
}

// Window is the attendance acceptance interval derived from one firing of a
// schedule. It is recomputed on every evaluation and never stored.
type Window struct {
	ScheduledAt    time.Time
	EarliestOnTime time.Time
	LatestOnTime   time.Time
	LatestLate     time.Time
}

// WindowFor derives the attendance window around a scheduled instant.
func (p Policy) WindowFor(scheduledAt time.Time) Window {
	latestOnTime := scheduledAt.Add(p.OnTimeSpan)
	return Window{
		ScheduledAt:    scheduledAt,
		EarliestOnTime: scheduledAt.Add(-p.EarlyOpen),
		LatestOnTime:   latestOnTime,
		LatestLate:     latestOnTime.Add(p.LateGrace),
	}
}

// Classify places now inside the window. Both the on-time and late boundaries
// are inclusive.
func (w Window) Classify(now time.Time) State {
	switch {
	case now.Before(w.EarliestOnTime):
		return StateNotYetOpen
	case !now.After(w.LatestOnTime):
		return StateOnTime
	case !now.After(w.LatestLate):
		return StateLate
	default:
		return StateClosed
	}
}

// EvaluateAt resolves today's firing of the schedule and classifies now
// against its window. ok is false when the schedule does not fire on now's
// day; callers treat that the same as a closed window.
func (d Descriptor) EvaluateAt(now time.Time, p Policy) (Window, State, bool) {
	scheduledAt, ok := d.OccurrenceOn(now)
	if !ok {
		return Window{}, StateClosed, false
	}
	w := p.WindowFor(scheduledAt)
	return w, w.Classify(now), true
}
