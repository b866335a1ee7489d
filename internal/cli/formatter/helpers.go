package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateOrDash formats an optional date, "--" when unset.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return domain.FormatDate(*t)
}

// RangeLabel renders "2025-06-02 → 2025-06-06 (5d)", or "unscheduled".
func RangeLabel(start, end *time.Time) string {
	if start == nil || end == nil {
		return Dim("unscheduled")
	}
	r := domain.NewDateRange(*start, *end)
	return fmt.Sprintf("%s → %s %s", domain.FormatDate(r.Start), domain.FormatDate(r.End),
		Dim(fmt.Sprintf("(%dd)", r.Days()+1)))
}

// Fit truncates s to width display cells and pads it with spaces to
// exactly width. Wide runes that would straddle the edge are dropped.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString(strings.Repeat(" ", width-used))
	return b.String()
}

var weekdayLabels = [...]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// WeekdayLabel is the two-letter weekday of day.
func WeekdayLabel(day time.Time) string {
	return weekdayLabels[day.Weekday()]
}
