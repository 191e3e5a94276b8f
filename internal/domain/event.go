package domain

import "time"

// RawEvent is one append-only record of an operator acting on a launch.
// Events are never mutated or reordered after append; Seq is assigned by the
// store and breaks ties between events sharing the same date and time of day.
type RawEvent struct {
	Seq          int64
	OperatorCode string
	LaunchCode   string
	Kind         EventKind
	Date         Date
	TimeOfDay    *ClockTime
	CreatedAt    time.Time
}

// EffectiveClock returns the recorded time of day, falling back to the clock
// component of the append timestamp when the operator terminal sent none.
func (e RawEvent) EffectiveClock() ClockTime {
	if e.TimeOfDay != nil {
		return *e.TimeOfDay
	}
	return ClockOf(e.CreatedAt.UTC())
}

// EventStamp is the caller-supplied position of a new event: the civil date
// plus an optional time of day.
type EventStamp struct {
	Date  Date
	Clock *ClockTime
}

// StampNow builds an EventStamp from the current UTC wall clock.
func StampNow(now time.Time) EventStamp {
	now = now.UTC()
	c := ClockOf(now)
	return EventStamp{Date: DateOf(now), Clock: &c}
}
