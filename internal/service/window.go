package service

import (
	"time"

	"github.com/alexanderramin/genba/internal/domain"
)

// DefaultDays is the number of day columns shown at once.
const DefaultDays = 35

// Window is the visible run of days on the board.
type Window struct {
	Start time.Time
	Days  int
}

// DefaultWindow starts on the Monday of today's week.
func DefaultWindow(today time.Time, days int) Window {
	if days <= 0 {
		days = DefaultDays
	}
	d := domain.Day(today)
	back := (int(d.Weekday()) + 6) % 7
	return Window{Start: domain.AddDays(d, -back), Days: days}
}

// End is the last visible day.
func (w Window) End() time.Time {
	return domain.AddDays(w.Start, w.Days-1)
}

func (w Window) Range() domain.DateRange {
	return domain.NewDateRange(w.Start, w.End())
}

// Dates lists every visible day in order.
func (w Window) Dates() []time.Time {
	return w.Range().Dates()
}

func (w Window) Contains(day time.Time) bool {
	return w.Range().Contains(day)
}

// Column returns the index of day in the window, or -1 when outside.
func (w Window) Column(day time.Time) int {
	if !w.Contains(day) {
		return -1
	}
	return domain.DaysBetween(w.Start, day)
}

// Scroll moves the window by days, keeping it within one year either side
// of today.
func (w Window) Scroll(days int, today time.Time) Window {
	minStart := domain.Day(today).AddDate(-1, 0, 0)
	maxEnd := domain.Day(today).AddDate(1, 0, 0)

	start := domain.AddDays(w.Start, days)
	switch {
	case start.Before(minStart):
		start = minStart
	case domain.AddDays(start, w.Days-1).After(maxEnd):
		start = domain.AddDays(maxEnd, -(w.Days - 1))
	}
	return Window{Start: start, Days: w.Days}
}
