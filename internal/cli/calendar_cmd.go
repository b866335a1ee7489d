package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var wf windowFlags

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show holidays and the weather forecast for the visible window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal := app.loadCalendar(context.Background(), domain.NotifyFunc(func(n domain.Notification) {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.NotificationLine(n))
			}))
			w := wf.window(app)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(fmt.Sprintf("Calendar %s..%s", domain.FormatDate(w.Start), domain.FormatDate(w.End()))))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(w.Dates(), cal))
			return nil
		},
	}

	wf.register(cmd.Flags())

	return cmd
}
