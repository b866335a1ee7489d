package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/genba/internal/cli/formatter"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// genbaHuhTheme returns a huh theme using the formatter palette.
func genbaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(genbaHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if _, err := domain.ParseOptionalDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// dateInput returns a huh.Input for an optional date field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

func colorOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("random", "")}
	for _, c := range domain.ColorOptions {
		opts = append(opts, huh.NewOption(formatter.Swatch(c.Color), c.Color))
	}
	return opts
}

// projectFormValues is the text the project form edits.
type projectFormValues struct {
	Name, Color, Start, End string
}

func projectForm(v *projectFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(&v.Color),
			dateInput("Start Date (blank for unscheduled)", &v.Start),
			dateInput("End Date", &v.End),
		),
	)
}

type taskFormValues struct {
	ProjectID, Text, Start, End string
}

func taskForm(v *taskFormValues, projects []*domain.Project) *huh.Form {
	opts := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Project").Options(opts...).Value(&v.ProjectID),
			huh.NewInput().Title("Task").Value(&v.Text).Validate(validateRequired("task text")),
			dateInput("Start Date", &v.Start),
			dateInput("End Date", &v.End),
		),
	)
}

type workerFormValues struct {
	Name, Kana, Birth string
}

func workerForm(v *workerFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewInput().Title("Kana (for search)").Value(&v.Kana),
			dateInput("Birth Date", &v.Birth),
		),
	)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}

// parseDates converts form text into optional dates.
func parseDates(start, end string) (*time.Time, *time.Time, error) {
	s, err := domain.ParseOptionalDate(start)
	if err != nil {
		return nil, nil, fmt.Errorf("start date: %w", err)
	}
	e, err := domain.ParseOptionalDate(end)
	if err != nil {
		return nil, nil, fmt.Errorf("end date: %w", err)
	}
	return s, e, nil
}
