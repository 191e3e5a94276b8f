package domain

import "time"

// PauseInterval pairs a PAUSE event with the RESUME that closed it. Resume is
// nil while the pause is still open.
type PauseInterval struct {
	Pause  RawEvent
	Resume *RawEvent
}

// Closed reports whether the pause has been closed by a resume.
func (p PauseInterval) Closed() bool { return p.Resume != nil }

// Minutes returns the pause span in whole minutes, floored. ok is false for
// an open pause or a span that cannot be explained by a midnight rollover.
func (p PauseInterval) Minutes() (int, bool) {
	if p.Resume == nil {
		return 0, false
	}
	return DurationMinutes(p.Pause.Date, p.Pause.EffectiveClock(), p.Resume.Date, p.Resume.EffectiveClock())
}

// SessionView is one derived display row, recomputed from the event log on
// every read and never stored. A session produces one main row (status
// in_progress or finished) plus one row per pause interval.
type SessionView struct {
	ID           string
	OperatorCode string
	LaunchCode   string
	Status       SessionStatus
	Date         Date
	Start        *ClockTime
	End          *ClockTime
	// DurationMin is nil when the span cannot be computed (missing finish,
	// or an end-before-start gap no rollover explains).
	DurationMin *int
	EventCount  int
	LastUpdate  time.Time
}
