package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage crew members",
	}

	cmd.AddCommand(
		newWorkerAddCmd(app),
		newWorkerListCmd(app),
		newWorkerRemoveCmd(app),
	)

	return cmd
}

func newWorkerAddCmd(app *App) *cobra.Command {
	var name, kana string
	var birth *time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a worker row to the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				v := workerFormValues{}
				if err := workerForm(&v).Run(); err != nil {
					return err
				}
				b, err := domain.ParseOptionalDate(v.Birth)
				if err != nil {
					return err
				}
				name, kana, birth = v.Name, v.Kana, b
			}

			w := &domain.Worker{Name: name, NameKana: kana, BirthDate: birth}
			if err := app.Workers.Save(context.Background(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added worker %s [%s]\n", w.Name, formatter.TruncID(w.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Worker name")
	cmd.Flags().StringVar(&kana, "kana", "", "Reading used for search")
	dateFlag(cmd.Flags(), &birth, "birth", "Birth date")

	return cmd
}

func newWorkerListCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workers in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := app.Workers.List(context.Background())
			if err != nil {
				return err
			}
			if term != "" {
				var kept []*domain.Worker
				for _, w := range workers {
					if containsFold(w.Name, term) || containsFold(w.NameKana, term) {
						kept = append(kept, w)
					}
				}
				workers = kept
			}
			if len(workers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workers found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkerList(workers, app.today()))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "filter", "", "Only workers whose name or kana contains this text")

	return cmd
}

func newWorkerRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a worker and their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorker(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Workers.Delete(ctx, w.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted worker %s\n", w.Name)
			return nil
		},
	}
}
