package domain

import "time"

// ConsolidatedSummary is the one-time duration rollup written when a session
// finishes. Exactly one summary ever exists per (operator, launch) pair;
// once written it is immutable.
type ConsolidatedSummary struct {
	ID            string
	OperatorCode  string
	LaunchCode    string
	Date          Date
	Start         *ClockTime
	End           *ClockTime
	TotalMin      *int
	PauseMin      int
	ProductiveMin *int
	EventCount    int
	CreatedAt     time.Time
}
