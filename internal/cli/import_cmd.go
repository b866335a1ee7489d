package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import projects, tasks, workers and assignments from a YAML or JSON site file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects, %d tasks, %d workers, %d assignment cells\n",
				result.ProjectCount, result.TaskCount, result.WorkerCount, result.AssignmentCount)
			return nil
		},
	}
}
