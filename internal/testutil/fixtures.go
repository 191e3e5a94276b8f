package testutil

import (
	"sync/atomic"
	"time"

	"github.com/mlevasseur/pointage/internal/domain"
)

var testSeqCounter atomic.Int64

// Event options
type EventOption func(*domain.RawEvent)

func WithClock(hour, min, sec int) EventOption {
	return func(e *domain.RawEvent) {
		c := domain.NewClockTime(hour, min, sec)
		e.TimeOfDay = &c
	}
}

func WithNoClock() EventOption {
	return func(e *domain.RawEvent) {
		e.TimeOfDay = nil
	}
}

func WithDate(year int, month time.Month, day int) EventOption {
	return func(e *domain.RawEvent) {
		e.Date = domain.Date{Year: year, Month: month, Day: day}
	}
}

func WithSeq(seq int64) EventOption {
	return func(e *domain.RawEvent) {
		e.Seq = seq
	}
}

func WithCreatedAt(t time.Time) EventOption {
	return func(e *domain.RawEvent) {
		e.CreatedAt = t
	}
}

// NewTestEvent builds a raw event for operator/launch with a fresh sequence
// id. The default stamp is 2025-03-10 08:00 with a fixed created-at, so
// derived rows are fully deterministic unless a test overrides them.
func NewTestEvent(operatorCode, launchCode string, kind domain.EventKind, opts ...EventOption) domain.RawEvent {
	clock := domain.NewClockTime(8, 0, 0)
	e := domain.RawEvent{
		Seq:          testSeqCounter.Add(1),
		OperatorCode: operatorCode,
		LaunchCode:   launchCode,
		Kind:         kind,
		Date:         domain.Date{Year: 2025, Month: time.March, Day: 10},
		TimeOfDay:    &clock,
		CreatedAt:    time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewTestStamp builds an EventStamp for the default fixture date.
func NewTestStamp(hour, min int) domain.EventStamp {
	c := domain.NewClockTime(hour, min, 0)
	return domain.EventStamp{
		Date:  domain.Date{Year: 2025, Month: time.March, Day: 10},
		Clock: &c,
	}
}
