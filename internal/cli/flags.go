package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding an optional YYYY-MM-DD date. An empty
// string clears it.
type dateValue struct {
	t **time.Time
}

var _ pflag.Value = dateValue{}

func (v dateValue) String() string {
	if v.t == nil || *v.t == nil {
		return ""
	}
	return domain.FormatDate(**v.t)
}

func (v dateValue) Set(s string) error {
	t, err := domain.ParseOptionalDate(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD: %w", err)
	}
	*v.t = t
	return nil
}

func (dateValue) Type() string { return "date" }

// dateFlag registers an optional date flag on fs.
func dateFlag(fs *pflag.FlagSet, dst **time.Time, name, usage string) {
	fs.Var(dateValue{t: dst}, name, usage+" (YYYY-MM-DD)")
}

// windowFlags are the --from/--days pair shared by grid-rendering commands.
type windowFlags struct {
	from *time.Time
	days int
}

func (w *windowFlags) register(fs *pflag.FlagSet) {
	dateFlag(fs, &w.from, "from", "First visible day (default: Monday of this week)")
	fs.IntVar(&w.days, "days", 0, "Number of days to show")
}

func (w *windowFlags) window(app *App) service.Window {
	days := w.days
	if days <= 0 {
		days = app.Days
	}
	win := service.DefaultWindow(app.today(), days)
	if w.from != nil {
		win.Start = domain.Day(*w.from)
	}
	return win
}
