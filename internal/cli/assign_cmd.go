package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Edit the worker/day assignment grid",
	}

	cmd.AddCommand(
		newAssignSetCmd(app),
		newAssignClearCmd(app),
		newAssignPasteCmd(app),
		newAssignShowCmd(app),
	)

	return cmd
}

// cellArgs resolves a worker reference and a date argument.
func cellArgs(ctx context.Context, app *App, workerRef, date string) (domain.CellKey, *domain.Worker, error) {
	w, err := resolveWorker(ctx, app, workerRef)
	if err != nil {
		return domain.CellKey{}, nil, err
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.CellKey{}, nil, err
	}
	return domain.CellKey{WorkerID: w.ID, Date: d}, w, nil
}

// runKeys expands a start cell through an optional last day into one key
// per day.
func runKeys(key domain.CellKey, through *time.Time) ([]domain.CellKey, error) {
	if through == nil {
		return []domain.CellKey{key}, nil
	}
	if err := domain.ValidateRange(key.Date, *through); err != nil {
		return nil, err
	}
	dates := domain.NewDateRange(key.Date, *through).Dates()
	keys := make([]domain.CellKey, len(dates))
	for i, d := range dates {
		keys[i] = domain.CellKey{WorkerID: key.WorkerID, Date: d}
	}
	return keys, nil
}

func newAssignSetCmd(app *App) *cobra.Command {
	var projectRefs []string
	var status string
	var through *time.Time

	cmd := &cobra.Command{
		Use:   "set WORKER DATE",
		Short: "Replace a worker's entries for a day (or a run of days with --to)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, w, err := cellArgs(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			var entries []domain.Assignment
			for _, ref := range projectRefs {
				p, err := resolveProject(ctx, app, ref)
				if err != nil {
					return err
				}
				entries = append(entries, domain.ProjectAssignment{ProjectID: p.ID})
			}
			if status != "" {
				entries = append(entries, domain.StatusAssignment{Status: domain.WorkerStatus(status)})
			}
			if len(entries) == 0 {
				return fmt.Errorf("give at least one --project or a --status")
			}

			keys, err := runKeys(key, through)
			if err != nil {
				return err
			}
			if len(keys) == 1 {
				err = app.Assignments.Set(ctx, key, entries)
			} else {
				err = app.Assignments.Paste(ctx, entries, keys)
			}
			if err != nil {
				return err
			}

			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s on %d day(s) from %s\n",
				w.Name, formatter.FormatEntries(entries, names), len(keys), domain.FormatDate(key.Date))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projectRefs, "project", nil, "Project ID or name (repeatable)")
	cmd.Flags().StringVar(&status, "status", "", "day_off or half_day_off")
	dateFlag(cmd.Flags(), &through, "to", "Last day of the run")

	return cmd
}

func newAssignClearCmd(app *App) *cobra.Command {
	var through *time.Time

	cmd := &cobra.Command{
		Use:   "clear WORKER DATE",
		Short: "Remove a worker's entries for a day (or a run of days with --to)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			key, w, err := cellArgs(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			keys, err := runKeys(key, through)
			if err != nil {
				return err
			}
			if len(keys) == 1 {
				err = app.Assignments.Clear(ctx, key)
			} else {
				err = app.Assignments.Paste(ctx, nil, keys)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d day(s) for %s\n", len(keys), w.Name)
			return nil
		},
	}

	dateFlag(cmd.Flags(), &through, "to", "Last day of the run")

	return cmd
}

func newAssignPasteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paste SRC_WORKER SRC_DATE FROM_WORKER FROM_DATE [TO_WORKER TO_DATE]",
		Short: "Copy one cell's entries onto a rectangle of cells",
		Long: "Copies the entries of the source cell onto every cell of the rectangle\n" +
			"spanned by the two corner cells, workers in board order. With one corner\n" +
			"only that cell is written. An empty source clears the rectangle.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 4 && len(args) != 6 {
				return fmt.Errorf("accepts 4 or 6 args, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			src, _, err := cellArgs(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			from, _, err := cellArgs(ctx, app, args[2], args[3])
			if err != nil {
				return err
			}
			to := from
			if len(args) == 6 {
				if to, _, err = cellArgs(ctx, app, args[4], args[5]); err != nil {
					return err
				}
			}

			entries, err := app.Assignments.Get(ctx, src)
			if err != nil {
				return err
			}
			workers, err := app.Workers.List(ctx)
			if err != nil {
				return err
			}
			lo, hi := from.Date, to.Date
			if hi.Before(lo) {
				lo, hi = hi, lo
			}
			keys := service.Selection(workers, domain.NewDateRange(lo, hi).Dates(), from, to)
			if err := app.Assignments.Paste(ctx, entries, keys); err != nil {
				return err
			}

			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pasted %s onto %d cell(s)\n", formatter.FormatEntries(entries, names), len(keys))
			return nil
		},
	}
}

func newAssignShowCmd(app *App) *cobra.Command {
	var wf windowFlags

	cmd := &cobra.Command{
		Use:   "show [WORKER DATE]",
		Short: "Show the assignment grid, or one cell's entries",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 args, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 2 {
				key, w, err := cellArgs(ctx, app, args[0], args[1])
				if err != nil {
					return err
				}
				entries, err := app.Assignments.Get(ctx, key)
				if err != nil {
					return err
				}
				names, err := projectNames(ctx, app)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", w.Name, domain.FormatDate(key.Date), formatter.FormatEntries(entries, names))
				return nil
			}

			board, err := app.Boards.Snapshot(ctx, wf.window(app))
			if err != nil {
				return err
			}
			g := formatter.RenderWorkerGrid(board, formatter.GanttOptions{DayWidth: app.dayWidth(), Today: app.today()})
			fmt.Fprintln(cmd.OutOrStdout(), g.String())
			return nil
		},
	}

	wf.register(cmd.Flags())

	return cmd
}
