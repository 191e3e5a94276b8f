package service

import (
	"context"
	"log/slog"

	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/repository"
	"github.com/mlevasseur/pointage/internal/reservation"
	"github.com/mlevasseur/pointage/internal/timeline"
)

type Views struct {
	events        repository.EventRepo
	summaries     repository.SummaryRepo
	reservations  *reservation.Manager
	reconstructor *timeline.Reconstructor
}

func NewViews(events repository.EventRepo, summaries repository.SummaryRepo, reservations *reservation.Manager, logger *slog.Logger) *Views {
	return &Views{
		events:        events,
		summaries:     summaries,
		reservations:  reservations,
		reconstructor: timeline.NewReconstructor(logger),
	}
}

// Sessions pulls matching events, puts them into reconstruction order and
// derives display rows. Views are recomputed on every call; nothing derived
// is ever read back from storage.
func (s *Views) Sessions(ctx context.Context, f SessionFilter) ([]domain.SessionView, error) {
	events, err := s.events.List(ctx, repository.EventFilter{
		OperatorCode: f.OperatorCode,
		LaunchCode:   f.LaunchCode,
		From:         f.From,
		To:           f.To,
	})
	if err != nil {
		return nil, err
	}
	timeline.SortEvents(events)
	return s.reconstructor.Reconstruct(events), nil
}

func (s *Views) ActiveReservations() []domain.Reservation {
	return s.reservations.Active()
}

// ListRecent returns summaries consolidated within the last N days.
func (s *Views) ListRecent(ctx context.Context, days int) ([]domain.ConsolidatedSummary, error) {
	return s.summaries.ListRecent(ctx, days)
}

var (
	_ ViewService         = (*Views)(nil)
	_ SummaryQueryService = (*Views)(nil)
)
