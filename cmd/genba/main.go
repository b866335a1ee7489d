package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/genba/internal/calendar"
	"github.com/alexanderramin/genba/internal/cli"
	"github.com/alexanderramin/genba/internal/config"
	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/mattn/go-isatty"
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

	// Use-case and drag logs go to stderr only when GENBA_LOG is set.
	logger := slog.New(slog.DiscardHandler)
	if cfg.Log {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	observer := service.NewSlogUseCaseObserver(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	workerRepo := repository.NewSQLiteWorkerRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	feed := service.NewFeed()

	app := &cli.App{
		Projects:    service.NewProjectService(projectRepo, uow, feed, observer),
		Tasks:       service.NewTaskService(taskRepo, projectRepo, feed, observer),
		Workers:     service.NewWorkerService(workerRepo, uow, feed, observer),
		Assignments: service.NewAssignmentService(assignmentRepo, uow, feed, observer),
		Schedule:    service.NewScheduleService(projectRepo, taskRepo, uow, feed, observer),
		Boards:      service.NewBoardService(projectRepo, taskRepo, workerRepo, assignmentRepo, observer),
		Import:      service.NewImportService(uow, feed, observer),
		Store:       service.NewDocumentStore(database, uow, feed),
		Feed:        feed,

		Holidays: calendar.NewHolidayClient(cfg.HolidaysURL, cfg.HTTPTimeout()),
		Weather:  calendar.NewWeatherClient(cfg.WeatherURL, cfg.WeatherAPIKey, cfg.Lat, cfg.Lon, cfg.HTTPTimeout()),

		DayWidth: cfg.DayWidth,
		Days:     cfg.Days,
		Logger:   logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
