package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/timeline"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskRemoveCmd(app),
		newTaskMoveCmd(app),
		newTaskResizeCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectRef, text, color string
	var start, end *time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if text == "" {
				if !app.interactive() {
					return fmt.Errorf("--text is required")
				}
				projects, err := app.Projects.List(ctx)
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					return fmt.Errorf("create a project first")
				}
				v := taskFormValues{}
				if err := taskForm(&v, projects).Run(); err != nil {
					return err
				}
				if start, end, err = parseDates(v.Start, v.End); err != nil {
					return err
				}
				projectRef, text = v.ProjectID, v.Text
			}

			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			t := &domain.Task{ProjectID: p.ID, Text: text, Start: start, End: end, Color: color}
			if err := app.Tasks.Save(ctx, t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added task %q to %s [%s]\n", t.Text, p.Name, formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID or name")
	cmd.Flags().StringVar(&text, "text", "", "Task description")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (default: lighter project color)")
	dateFlag(cmd.Flags(), &start, "start", "Start date")
	dateFlag(cmd.Flags(), &end, "end", "End date")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var tasks []*domain.Task
			var err error
			if projectRef != "" {
				p, rerr := resolveProject(ctx, app, projectRef)
				if rerr != nil {
					return rerr
				}
				tasks, err = app.Tasks.ListByProject(ctx, p.ID)
			} else {
				tasks, err = app.Tasks.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}

			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Only tasks of this project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var text, color string
	var start, end *time.Time

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a task's text, color or dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("text") {
				t.Text = text
			}
			if cmd.Flags().Changed("color") {
				t.Color = color
			}
			if cmd.Flags().Changed("start") {
				t.Start = start
			}
			if cmd.Flags().Changed("end") {
				t.End = end
			}

			if err := app.Tasks.Save(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %q: %s\n", t.Text, formatter.RangeLabel(t.Start, t.End))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Task description")
	cmd.Flags().StringVar(&color, "color", "", "Bar color")
	dateFlag(cmd.Flags(), &start, "start", "Start date")
	dateFlag(cmd.Flags(), &end, "end", "End date")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %q\n", t.Text)
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a task by whole days, keeping its length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rescheduleTask(cmd, app, args[0], timeline.HandleMove, days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move (negative moves earlier)")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskResizeCmd(app *App) *cobra.Command {
	var days int
	var edge string

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Move one edge of a task; the range never inverts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if edge == "" {
				return fmt.Errorf("--edge is required (start or end)")
			}
			handle, err := handleForEdge(edge)
			if err != nil {
				return err
			}
			return rescheduleTask(cmd, app, args[0], handle, days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move the edge")
	cmd.Flags().StringVar(&edge, "edge", "end", "Edge to move: start or end")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func rescheduleTask(cmd *cobra.Command, app *App, ref string, handle timeline.Handle, days int) error {
	ctx := context.Background()
	t, err := resolveTask(ctx, app, ref)
	if err != nil {
		return err
	}
	changes, err := app.Schedule.Reschedule(ctx, timeline.KindTask, t.ID, handle, days)
	if err != nil {
		return err
	}
	printChanges(cmd, changes)
	return nil
}
