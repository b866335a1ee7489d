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

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectReorderCmd(app),
		newProjectShiftCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, color string
	var start, end *time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				v := projectFormValues{Color: color}
				if err := projectForm(&v).Run(); err != nil {
					return err
				}
				var err error
				if start, end, err = parseDates(v.Start, v.End); err != nil {
					return err
				}
				name, color = v.Name, v.Color
			}

			p := &domain.Project{Name: name, Color: color, StartDate: start, EndDate: end}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "", "Palette color (default: random)")
	dateFlag(cmd.Flags(), &start, "start", "Start date")
	dateFlag(cmd.Flags(), &end, "end", "End date")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projects, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			if term != "" {
				projects = filterProjects(projects, term)
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return err
			}
			counts := make(map[string]int)
			for _, t := range tasks {
				counts[t.ProjectID]++
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, counts))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "filter", "", "Only projects whose name contains this text")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, color string
	var start, end *time.Time

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a project's name, color or dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("color") {
				p.Color, p.BorderColor = color, ""
			}
			if cmd.Flags().Changed("start") {
				p.StartDate = start
			}
			if cmd.Flags().Changed("end") {
				p.EndDate = end
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s: %s\n", p.Name, formatter.RangeLabel(p.StartDate, p.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "", "Palette color")
	dateFlag(cmd.Flags(), &start, "start", "Start date, empty to clear")
	dateFlag(cmd.Flags(), &end, "end", "End date, empty to clear")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete %s and all of its tasks?", p.Name), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newProjectReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder ID [ID...]",
		Short: "Move projects to the top of the board in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var ids []string
			for _, a := range args {
				p, err := resolveProject(ctx, app, a)
				if err != nil {
					return err
				}
				ids = append(ids, p.ID)
			}

			projects, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			current := make([]string, len(projects))
			for i, p := range projects {
				current[i] = p.ID
			}
			if err := app.Projects.Reorder(ctx, withRest(ids, current)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d projects\n", len(projects))
			return nil
		},
	}
}

// withRest appends the IDs of rest not already in first, keeping their
// relative order.
func withRest(first, rest []string) []string {
	seen := make(map[string]bool, len(first))
	out := append([]string(nil), first...)
	for _, id := range first {
		seen[id] = true
	}
	for _, id := range rest {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

func newProjectShiftCmd(app *App) *cobra.Command {
	var days int
	var edge string

	cmd := &cobra.Command{
		Use:   "shift ID",
		Short: "Move a project (with its tasks) or one of its edges by whole days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			handle, err := handleForEdge(edge)
			if err != nil {
				return err
			}
			changes, err := app.Schedule.Reschedule(ctx, timeline.KindProject, p.ID, handle, days)
			if err != nil {
				return err
			}
			printChanges(cmd, changes)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to shift (negative moves earlier)")
	cmd.Flags().StringVar(&edge, "edge", "", "Only move this edge: start or end")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func handleForEdge(edge string) (timeline.Handle, error) {
	switch edge {
	case "":
		return timeline.HandleMove, nil
	case "start":
		return timeline.HandleResizeLeft, nil
	case "end":
		return timeline.HandleResizeRight, nil
	default:
		return "", fmt.Errorf("invalid --edge %q (expected start or end)", edge)
	}
}

func printChanges(cmd *cobra.Command, changes []timeline.DateChange) {
	for _, c := range changes {
		fmt.Fprintf(cmd.OutOrStdout(), "%-7s %s  %s\n", c.Kind, formatter.TruncID(c.ID), c.Range)
	}
}

func filterProjects(projects []*domain.Project, term string) []*domain.Project {
	var out []*domain.Project
	for _, p := range projects {
		if containsFold(p.Name, term) {
			out = append(out, p)
		}
	}
	return out
}
