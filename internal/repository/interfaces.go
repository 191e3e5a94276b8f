package repository

import (
	"context"
	"errors"

	"github.com/mlevasseur/pointage/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSummary is returned when a summary already exists for the
// (operator, launch) pair; the unique index is the last line of defense
// behind the service-level pre-check.
var ErrDuplicateSummary = errors.New("summary already exists")

// EventFilter narrows an event query. Zero-value fields are ignored.
type EventFilter struct {
	OperatorCode string
	LaunchCode   string
	From         *domain.Date
	To           *domain.Date
}

// EventRepo is the append-only event store. Append assigns the monotonic
// sequence id; queries return rows in insertion order only, callers needing
// reconstruction order sort themselves.
type EventRepo interface {
	Append(ctx context.Context, e *domain.RawEvent) error
	ListByGroup(ctx context.Context, launchCode, operatorCode string) ([]domain.RawEvent, error)
	List(ctx context.Context, f EventFilter) ([]domain.RawEvent, error)
}

type SummaryRepo interface {
	Create(ctx context.Context, s *domain.ConsolidatedSummary) error
	GetByKey(ctx context.Context, operatorCode, launchCode string) (*domain.ConsolidatedSummary, error)
	ListRecent(ctx context.Context, days int) ([]domain.ConsolidatedSummary, error)
}
