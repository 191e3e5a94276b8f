package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mlevasseur/pointage/internal/db"
	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/repository"
	"github.com/mlevasseur/pointage/internal/reservation"
)

type workService struct {
	events       repository.EventRepo
	reservations *reservation.Manager
	uow          db.UnitOfWork
	logger       *slog.Logger
	observer     UseCaseObserver
}

func NewWorkService(events repository.EventRepo, reservations *reservation.Manager, uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) WorkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &workService{
		events:       events,
		reservations: reservations,
		uow:          uow,
		logger:       logger,
		observer:     observerOrNoop(observers),
	}
}

func (s *workService) Start(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) (res *domain.Reservation, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "work.start", started, err, map[string]any{
			"operator": operatorCode, "launch": launchCode,
		})
	}()

	if err = s.checkState(ctx, operatorCode, launchCode, domain.EventStart); err != nil {
		return nil, err
	}

	// Admission is decided before the event is appended, not after.
	res, err = s.reservations.Reserve(operatorCode, launchCode, uuid.New().String())
	if err != nil {
		return nil, err
	}

	if err = s.append(ctx, operatorCode, launchCode, domain.EventStart, at); err != nil {
		// The claim must not outlive a failed append.
		s.reservations.Release(operatorCode, launchCode, res.OperationID)
		return nil, err
	}
	return res, nil
}

func (s *workService) Pause(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "work.pause", started, err, map[string]any{
			"operator": operatorCode, "launch": launchCode,
		})
	}()

	if err = s.checkState(ctx, operatorCode, launchCode, domain.EventPause); err != nil {
		return err
	}
	return s.append(ctx, operatorCode, launchCode, domain.EventPause, at)
}

func (s *workService) Resume(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "work.resume", started, err, map[string]any{
			"operator": operatorCode, "launch": launchCode,
		})
	}()

	if err = s.checkState(ctx, operatorCode, launchCode, domain.EventResume); err != nil {
		return err
	}
	return s.append(ctx, operatorCode, launchCode, domain.EventResume, at)
}

func (s *workService) Finish(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) (summary *domain.ConsolidatedSummary, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "work.finish", started, err, map[string]any{
			"operator": operatorCode, "launch": launchCode,
		})
	}()

	if err = s.checkState(ctx, operatorCode, launchCode, domain.EventFinish); err != nil {
		return nil, err
	}

	// The finish event and its summary land in one transaction: a session is
	// either finished and consolidated, or neither.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEvents := repository.NewSQLiteEventRepo(tx)
		txSummaries := repository.NewSQLiteSummaryRepo(tx)

		if err := appendEvent(ctx, txEvents, operatorCode, launchCode, domain.EventFinish, at); err != nil {
			return err
		}
		events, err := txEvents.ListByGroup(ctx, launchCode, operatorCode)
		if err != nil {
			return err
		}
		summary, err = consolidateGroup(ctx, txSummaries, s.logger, operatorCode, launchCode, events)
		return err
	})
	if err != nil {
		return nil, err
	}

	if held, ok := s.reservations.Held(operatorCode, launchCode); ok {
		s.reservations.Release(operatorCode, launchCode, held.OperationID)
	}
	return summary, nil
}

// checkState validates the requested transition against the group's current
// shape. The rules are deliberately coarse: a session must exist to pause,
// resume or finish, and a finished session accepts nothing further. Pause
// and resume do not cross-check each other; the matcher tolerates unbalanced
// sequences by design.
func (s *workService) checkState(ctx context.Context, operatorCode, launchCode string, kind domain.EventKind) error {
	events, err := s.events.ListByGroup(ctx, launchCode, operatorCode)
	if err != nil {
		return err
	}

	hasStart, hasFinish := false, false
	for _, e := range events {
		switch e.Kind {
		case domain.EventStart:
			hasStart = true
		case domain.EventFinish:
			hasFinish = true
		}
	}

	if hasFinish {
		return fmt.Errorf("launch %s operator %s: %w", launchCode, operatorCode, ErrSessionFinished)
	}
	if kind == domain.EventStart {
		if hasStart {
			return fmt.Errorf("launch %s operator %s: %w", launchCode, operatorCode, ErrSessionAlreadyOpen)
		}
		return nil
	}
	if !hasStart {
		return fmt.Errorf("launch %s operator %s: %w", launchCode, operatorCode, ErrNoActiveSession)
	}
	return nil
}

func (s *workService) append(ctx context.Context, operatorCode, launchCode string, kind domain.EventKind, at domain.EventStamp) error {
	return appendEvent(ctx, s.events, operatorCode, launchCode, kind, at)
}

func appendEvent(ctx context.Context, events repository.EventRepo, operatorCode, launchCode string, kind domain.EventKind, at domain.EventStamp) error {
	date := at.Date
	if date.IsZero() {
		date = domain.DateOf(time.Now().UTC())
	}
	e := &domain.RawEvent{
		OperatorCode: operatorCode,
		LaunchCode:   launchCode,
		Kind:         kind,
		Date:         date,
		TimeOfDay:    at.Clock,
		CreatedAt:    time.Now().UTC(),
	}
	return events.Append(ctx, e)
}
