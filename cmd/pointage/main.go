package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mlevasseur/pointage/internal/cli"
	"github.com/mlevasseur/pointage/internal/config"
	"github.com/mlevasseur/pointage/internal/db"
	"github.com/mlevasseur/pointage/internal/repository"
	"github.com/mlevasseur/pointage/internal/reservation"
	"github.com/mlevasseur/pointage/internal/service"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	summaryRepo := repository.NewSQLiteSummaryRepo(database)

	// Wire unit of work for transactional finish+consolidate
	uow := db.NewSQLiteUnitOfWork(database)

	// Reservation manager with its background expiry sweep
	manager := reservation.NewManager(cfg.MaxConcurrentPerOperator, cfg.ReservationTTL, logger)
	sweeper := reservation.NewSweeper(manager, cfg.SweepInterval, logger)
	sweeper.Start()
	defer sweeper.Stop()

	observer := service.NewLogUseCaseObserver(os.Stderr)
	views := service.NewViews(eventRepo, summaryRepo, manager, logger)

	app := &cli.App{
		Work:          service.NewWorkService(eventRepo, manager, uow, logger, observer),
		Views:         views,
		Summaries:     views,
		Consolidation: service.NewConsolidationService(eventRepo, summaryRepo, logger, observer),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
