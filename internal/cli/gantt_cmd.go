package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/spf13/cobra"
)

func newGanttCmd(app *App) *cobra.Command {
	var wf windowFlags
	var term string
	var workers, withCalendar bool

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Print the project timeline with task lanes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := app.Boards.Snapshot(ctx, wf.window(app))
			if err != nil {
				return err
			}
			if term != "" {
				board = board.Filtered(term)
			}

			opts := formatter.GanttOptions{DayWidth: app.dayWidth(), Today: app.today(), Workers: workers}
			if withCalendar {
				opts.Calendar = app.loadCalendar(ctx, domain.NotifyFunc(func(n domain.Notification) {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.NotificationLine(n))
				}))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderGantt(board, opts).String())
			return nil
		},
	}

	wf.register(cmd.Flags())
	cmd.Flags().StringVar(&term, "project", "", "Only projects (and workers) matching this text")
	cmd.Flags().BoolVar(&workers, "workers", false, "Include the worker assignment grid")
	cmd.Flags().BoolVar(&withCalendar, "calendar", false, "Fetch holidays and weather for the header")

	return cmd
}
