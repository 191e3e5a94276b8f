package timeline

import "github.com/mlevasseur/pointage/internal/domain"

// MatchPauses pairs each PAUSE event with the earliest RESUME that follows it.
// The input must already be in reconstruction order (SortEvents) and belong to
// a single (launch, operator) group.
//
// A RESUME is eligible for a PAUSE when it sits strictly later in the total
// order: a later (date, time), or the same timestamp with a greater sequence
// id. Each RESUME closes at most one PAUSE; once consumed it leaves the
// candidate pool. A PAUSE with no eligible RESUME stays open, which is a
// valid state (the operator is currently paused), not an error.
//
// There is deliberately no upper bound on the pause-to-resume gap; a resume
// hours after the pause still closes it.
func MatchPauses(events []domain.RawEvent) []domain.PauseInterval {
	var pauses, resumes []domain.RawEvent
	for _, e := range events {
		switch e.Kind {
		case domain.EventPause:
			pauses = append(pauses, e)
		case domain.EventResume:
			resumes = append(resumes, e)
		}
	}

	intervals := make([]domain.PauseInterval, 0, len(pauses))
	consumed := make([]bool, len(resumes))

	for _, p := range pauses {
		interval := domain.PauseInterval{Pause: p}
		for i, r := range resumes {
			if consumed[i] {
				continue
			}
			if CompareEvents(r, p) > 0 {
				resume := r
				interval.Resume = &resume
				consumed[i] = true
				break
			}
		}
		intervals = append(intervals, interval)
	}
	return intervals
}
