package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mlevasseur/pointage/internal/db"
	"github.com/mlevasseur/pointage/internal/repository"
	"github.com/mlevasseur/pointage/internal/reservation"
	"github.com/mlevasseur/pointage/internal/testutil"
)

type testEnv struct {
	events    *repository.SQLiteEventRepo
	summaries *repository.SQLiteSummaryRepo
	manager   *reservation.Manager
	uow       db.UnitOfWork
	logger    *slog.Logger
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return testEnv{
		events:    repository.NewSQLiteEventRepo(database),
		summaries: repository.NewSQLiteSummaryRepo(database),
		manager:   reservation.NewManager(reservation.DefaultMaxPerOperator, reservation.DefaultTTL, logger),
		uow:       testutil.NewTestUoW(database),
		logger:    logger,
	}
}

func (e testEnv) workService() WorkService {
	return NewWorkService(e.events, e.manager, e.uow, e.logger)
}

func (e testEnv) consolidationService() ConsolidationService {
	return NewConsolidationService(e.events, e.summaries, e.logger)
}

func (e testEnv) views() *Views {
	return NewViews(e.events, e.summaries, e.manager, e.logger)
}
