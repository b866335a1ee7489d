package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/genba/internal/calendar"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all services and collaborators used by CLI
// commands.
type App struct {
	Projects    service.ProjectService
	Tasks       service.TaskService
	Workers     service.WorkerService
	Assignments service.AssignmentService
	Schedule    service.ScheduleService
	Boards      service.BoardService
	Import      service.ImportService
	Store       service.DocumentStore
	Feed        *service.Feed

	Holidays calendar.HolidaySource
	Weather  calendar.WeatherSource

	DayWidth int
	Days     int
	Logger   *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether forms may prompt on the terminal.
	IsInteractive func() bool
}

func (a *App) today() time.Time {
	if a.Now != nil {
		return domain.Day(a.Now())
	}
	return domain.Day(time.Now())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) dayWidth() int {
	if a.DayWidth < 1 {
		return 4
	}
	return a.DayWidth
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// loadCalendar fetches holidays and weather, reporting failures to
// notifier. Missing sources yield empty maps.
func (a *App) loadCalendar(ctx context.Context, notifier domain.Notifier) calendar.Calendar {
	return calendar.Load(ctx, a.Holidays, a.Weather, notifier, a.logger())
}

// NewRootCmd creates the top-level "genba" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "genba",
		Short:         "Construction site scheduling board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newWorkerCmd(app),
		newAssignCmd(app),
		newGanttCmd(app),
		newBoardCmd(app),
		newImportCmd(app),
		newCalendarCmd(app),
		newExportCmd(app),
	)

	return root
}
