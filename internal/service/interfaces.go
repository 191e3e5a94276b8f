package service

import (
	"context"
	"errors"

	"github.com/mlevasseur/pointage/internal/domain"
)

// Session-state errors surfaced to callers. Reservation conflicts are a
// separate type (reservation.ConflictError) because they carry the holder.
var (
	ErrNoActiveSession    = errors.New("no active session for this operator and launch")
	ErrSessionAlreadyOpen = errors.New("session already started")
	ErrSessionFinished    = errors.New("session already finished")
	ErrSessionNotFinished = errors.New("session has no finish event")
)

// SessionFilter narrows which event groups a view query covers.
// Zero-value fields are ignored.
type SessionFilter struct {
	OperatorCode string
	LaunchCode   string
	From         *domain.Date
	To           *domain.Date
}

// WorkService records operator transitions against the append-only event log.
// Start is gated by the reservation manager; a denied admission comes back as
// a *reservation.ConflictError and is never queued or retried.
type WorkService interface {
	Start(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) (*domain.Reservation, error)
	Pause(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) error
	Resume(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) error
	Finish(ctx context.Context, operatorCode, launchCode string, at domain.EventStamp) (*domain.ConsolidatedSummary, error)
}

// ViewService reconstructs display rows from raw events on every read.
type ViewService interface {
	Sessions(ctx context.Context, f SessionFilter) ([]domain.SessionView, error)
	ActiveReservations() []domain.Reservation
}

// ConsolidationService derives the one-time summary for a finished session.
// Calling it on an already-consolidated session is a logged no-op that
// returns the existing summary.
type ConsolidationService interface {
	Consolidate(ctx context.Context, operatorCode, launchCode string) (*domain.ConsolidatedSummary, error)
}

// SummaryQueryService reads back persisted summaries.
type SummaryQueryService interface {
	ListRecent(ctx context.Context, days int) ([]domain.ConsolidatedSummary, error)
}
