package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive scheduling board",
		Long: `Open the full-screen board. Drag a project or task bar with the mouse
to move it by whole days, or drag its first or last cell to move one edge.
Moving a project carries its tasks along. Changes are saved when the
button is released.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board needs an interactive terminal; use 'genba gantt' instead")
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			m, err := newBoardModel(ctx, app, timeline.GoDispatcher)
			if err != nil {
				return err
			}
			defer m.close()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
			_, err = p.Run()
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}
