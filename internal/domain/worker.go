package domain

import (
	"sort"
	"time"
)

// Worker is a crew member shown as a row of day cells.
type Worker struct {
	ID        string
	Name      string
	NameKana  string
	BirthDate *time.Time
	Order     *int
}

// Age returns the worker's age in whole years at now.
func (w *Worker) Age(now time.Time) (int, bool) {
	if w.BirthDate == nil {
		return 0, false
	}
	b := *w.BirthDate
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	if years < 0 {
		return 0, false
	}
	return years, true
}

// SortWorkers orders workers by display rank; unranked workers go last.
func SortWorkers(workers []*Worker) {
	sort.SliceStable(workers, func(i, j int) bool {
		return orderKey(workers[i].Order) < orderKey(workers[j].Order)
	})
}
