package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/genba/internal/calendar"
	"github.com/alexanderramin/genba/internal/domain"
)

// FormatProjectList renders projects in their board order. taskCounts may
// be nil.
func FormatProjectList(projects []*domain.Project, taskCounts map[string]int) string {
	rows := make([][]string, 0, len(projects))
	for i, p := range projects {
		tasks := "--"
		if taskCounts != nil {
			tasks = fmt.Sprintf("%d", taskCounts[p.ID])
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			TruncID(p.ID),
			Bold(p.Name),
			Swatch(p.Color),
			RangeLabel(p.StartDate, p.EndDate),
			tasks,
		})
	}
	return RenderTable([]string{"#", "ID", "NAME", "COLOR", "SCHEDULE", "TASKS"}, rows)
}

// FormatTaskList renders tasks with their project's name.
func FormatTaskList(tasks []*domain.Task, projectNames map[string]string) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		project := projectNames[t.ProjectID]
		if project == "" {
			project = TruncID(t.ProjectID)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			project,
			t.Text,
			RangeLabel(t.Start, t.End),
			Swatch(t.Color),
		})
	}
	return RenderTable([]string{"ID", "PROJECT", "TASK", "SCHEDULE", "COLOR"}, rows)
}

func FormatWorkerList(workers []*domain.Worker, today time.Time) string {
	rows := make([][]string, 0, len(workers))
	for i, w := range workers {
		age := Dim("--")
		if n, ok := w.Age(today); ok {
			age = fmt.Sprintf("%d", n)
		}
		kana := w.NameKana
		if kana == "" {
			kana = Dim("--")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			TruncID(w.ID),
			Bold(w.Name),
			kana,
			DateOrDash(w.BirthDate),
			age,
		})
	}
	return RenderTable([]string{"#", "ID", "NAME", "KANA", "BORN", "AGE"}, rows)
}

// FormatCalendar lists each day with its holiday and forecast, if any.
func FormatCalendar(days []time.Time, cal calendar.Calendar) string {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		holiday := ""
		if name, ok := cal.Holidays.Name(d); ok {
			holiday = StyleRed.Render(name)
		}
		temp, rain := Dim("--"), Dim("--")
		if w, ok := cal.Weather.On(d); ok {
			temp = StyleYellow.Render(fmt.Sprintf("%d°C", w.Temp))
			rain = StyleBlue.Render(fmt.Sprintf("%d%%", w.Precip))
		}
		day := domain.FormatDate(d) + " " + WeekdayLabel(d)
		if d.Weekday() == time.Sunday || holiday != "" {
			day = StyleRed.Render(day)
		} else if d.Weekday() == time.Saturday {
			day = StyleBlue.Render(day)
		}
		rows = append(rows, []string{day, holiday, temp, rain})
	}
	return RenderTable([]string{"DATE", "HOLIDAY", "HIGH", "RAIN"}, rows)
}

// FormatEntries renders a cell's entries as a comma-separated list.
func FormatEntries(entries []domain.Assignment, names map[string]string) string {
	if len(entries) == 0 {
		return Dim("(empty)")
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = domain.DescribeAssignment(e, names)
	}
	return strings.Join(parts, ", ")
}
