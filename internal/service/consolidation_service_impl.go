package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/repository"
	"github.com/mlevasseur/pointage/internal/timeline"
)

type consolidationService struct {
	events    repository.EventRepo
	summaries repository.SummaryRepo
	logger    *slog.Logger
	observer  UseCaseObserver
}

func NewConsolidationService(events repository.EventRepo, summaries repository.SummaryRepo, logger *slog.Logger, observers ...UseCaseObserver) ConsolidationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &consolidationService{
		events:    events,
		summaries: summaries,
		logger:    logger,
		observer:  observerOrNoop(observers),
	}
}

func (s *consolidationService) Consolidate(ctx context.Context, operatorCode, launchCode string) (summary *domain.ConsolidatedSummary, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "consolidation.consolidate", started, err, map[string]any{
			"operator": operatorCode, "launch": launchCode,
		})
	}()

	events, err := s.events.ListByGroup(ctx, launchCode, operatorCode)
	if err != nil {
		return nil, err
	}
	return consolidateGroup(ctx, s.summaries, s.logger, operatorCode, launchCode, events)
}

// consolidateGroup persists the summary for a finished group exactly once.
// The pre-check makes the common repeated call a cheap no-op; the unique
// index catches the remaining insert race, which is then resolved by reading
// the winner back.
func consolidateGroup(ctx context.Context, summaries repository.SummaryRepo, logger *slog.Logger, operatorCode, launchCode string, events []domain.RawEvent) (*domain.ConsolidatedSummary, error) {
	built, err := buildSummary(operatorCode, launchCode, events)
	if err != nil {
		return nil, err
	}

	existing, err := summaries.GetByKey(ctx, operatorCode, launchCode)
	switch {
	case err == nil:
		logger.Debug("summary already exists, skipping consolidation",
			"operator", operatorCode, "launch", launchCode)
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if err := summaries.Create(ctx, built); err != nil {
		if errors.Is(err, repository.ErrDuplicateSummary) {
			logger.Debug("summary created concurrently, skipping",
				"operator", operatorCode, "launch", launchCode)
			return summaries.GetByKey(ctx, operatorCode, launchCode)
		}
		return nil, err
	}
	return built, nil
}

// buildSummary derives the duration rollup from a group's events. The group
// must contain both a START and a FINISH event.
func buildSummary(operatorCode, launchCode string, events []domain.RawEvent) (*domain.ConsolidatedSummary, error) {
	group := make([]domain.RawEvent, len(events))
	copy(group, events)
	timeline.SortEvents(group)

	var start, finish *domain.RawEvent
	for i := range group {
		switch group[i].Kind {
		case domain.EventStart:
			if start == nil {
				start = &group[i]
			}
		case domain.EventFinish:
			if finish == nil {
				finish = &group[i]
			}
		}
	}
	if start == nil {
		return nil, fmt.Errorf("consolidating %s/%s: %w", launchCode, operatorCode, ErrNoActiveSession)
	}
	if finish == nil {
		return nil, fmt.Errorf("consolidating %s/%s: %w", launchCode, operatorCode, ErrSessionNotFinished)
	}

	startClock := start.EffectiveClock()
	endClock := finish.EffectiveClock()

	summary := &domain.ConsolidatedSummary{
		ID:           uuid.New().String(),
		OperatorCode: operatorCode,
		LaunchCode:   launchCode,
		Date:         start.Date,
		Start:        &startClock,
		End:          &endClock,
		EventCount:   len(group),
		CreatedAt:    time.Now().UTC(),
	}

	if total, ok := domain.DurationMinutes(start.Date, startClock, finish.Date, endClock); ok {
		summary.TotalMin = &total
	}

	// Pause time is the sum of matched intervals, each floored to the
	// minute; open pauses contribute nothing.
	pauseMin := 0
	for _, interval := range timeline.MatchPauses(group) {
		if min, ok := interval.Minutes(); ok {
			pauseMin += min
		}
	}
	summary.PauseMin = pauseMin

	if summary.TotalMin != nil {
		productive := *summary.TotalMin - pauseMin
		summary.ProductiveMin = &productive
	}
	return summary, nil
}

func observerOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
