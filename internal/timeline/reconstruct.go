package timeline

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mlevasseur/pointage/internal/domain"
)

// Reconstructor derives display rows from the raw event stream. It is a pure
// transformation: no I/O, no clock reads, identical input yields identical
// output.
type Reconstructor struct {
	logger *slog.Logger
}

func NewReconstructor(logger *slog.Logger) *Reconstructor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconstructor{logger: logger}
}

type groupKey struct {
	launch   string
	operator string
}

// Reconstruct groups events by (launch, operator) and derives one main row
// per session plus one row per pause interval.
//
// The main row's status is only ever in_progress or finished, even while a
// pause is open; an open pause surfaces solely as its own paused row. That
// asymmetry is deliberate and mirrors how the floor display has always read.
//
// A group with no START event is malformed: it is skipped and logged as a
// data-integrity problem, but the rest of the reconstruction proceeds.
func (r *Reconstructor) Reconstruct(events []domain.RawEvent) []domain.SessionView {
	groups := make(map[groupKey][]domain.RawEvent)
	var order []groupKey
	for _, e := range events {
		k := groupKey{launch: e.LaunchCode, operator: e.OperatorCode}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	var rows []domain.SessionView
	for _, k := range order {
		rows = append(rows, r.reconstructGroup(k, groups[k])...)
	}

	// Freshest activity first; the id tie-break keeps the order stable when
	// events share an append timestamp.
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].LastUpdate.Equal(rows[j].LastUpdate) {
			return rows[i].LastUpdate.After(rows[j].LastUpdate)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func (r *Reconstructor) reconstructGroup(k groupKey, group []domain.RawEvent) []domain.SessionView {
	SortEvents(group)

	start := findKind(group, domain.EventStart)
	if start == nil {
		r.logger.Warn("event group has no start event, skipping",
			"launch", k.launch,
			"operator", k.operator,
			"events", len(group))
		return nil
	}
	finish := findKind(group, domain.EventFinish)

	main := domain.SessionView{
		ID:           fmt.Sprintf("%s/%s", k.launch, k.operator),
		OperatorCode: k.operator,
		LaunchCode:   k.launch,
		Status:       domain.SessionInProgress,
		Date:         start.Date,
		Start:        clockPtr(start.EffectiveClock()),
		EventCount:   len(group),
		LastUpdate:   lastCreated(group),
	}
	if finish != nil {
		main.Status = domain.SessionFinished
		end := finish.EffectiveClock()
		main.End = clockPtr(end)
		if min, ok := domain.DurationMinutes(start.Date, start.EffectiveClock(), finish.Date, end); ok {
			main.DurationMin = &min
		}
	}

	rows := []domain.SessionView{main}
	for i, interval := range MatchPauses(group) {
		rows = append(rows, pauseRow(k, i, interval))
	}
	return rows
}

func pauseRow(k groupKey, index int, interval domain.PauseInterval) domain.SessionView {
	row := domain.SessionView{
		ID:           fmt.Sprintf("%s/%s/pause/%d", k.launch, k.operator, index+1),
		OperatorCode: k.operator,
		LaunchCode:   k.launch,
		Status:       domain.SessionPaused,
		Date:         interval.Pause.Date,
		Start:        clockPtr(interval.Pause.EffectiveClock()),
		EventCount:   1,
		LastUpdate:   interval.Pause.CreatedAt,
	}
	if interval.Closed() {
		row.Status = domain.SessionPauseClosed
		row.End = clockPtr(interval.Resume.EffectiveClock())
		row.EventCount = 2
		if interval.Resume.CreatedAt.After(row.LastUpdate) {
			row.LastUpdate = interval.Resume.CreatedAt
		}
		if min, ok := interval.Minutes(); ok {
			row.DurationMin = &min
		}
	}
	return row
}

// findKind returns the first event of the given kind in reconstruction order.
func findKind(events []domain.RawEvent, kind domain.EventKind) *domain.RawEvent {
	for i := range events {
		if events[i].Kind == kind {
			return &events[i]
		}
	}
	return nil
}

func lastCreated(events []domain.RawEvent) time.Time {
	var last time.Time
	for _, e := range events {
		if e.CreatedAt.After(last) {
			last = e.CreatedAt
		}
	}
	return last
}

func clockPtr(c domain.ClockTime) *domain.ClockTime {
	return &c
}
