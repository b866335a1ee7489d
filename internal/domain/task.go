package domain

import (
	"fmt"
	"time"
)

// Task is a dated piece of work belonging to one project.
// Start and End are pointers so that incomplete records can still be loaded;
// they are skipped by the lane layout.
type Task struct {
	ID        string
	ProjectID string
	Text      string
	Start     *time.Time
	End       *time.Time
	Color     string
}

// Range returns the task's span when both dates are present.
func (t *Task) Range() (DateRange, bool) {
	if t.Start == nil || t.End == nil {
		return DateRange{}, false
	}
	return NewDateRange(*t.Start, *t.End), true
}

// SetRange overwrites both task dates.
func (t *Task) SetRange(r DateRange) {
	s, e := r.Start, r.End
	t.Start, t.End = &s, &e
}

// Validate checks direct-edit invariants: both dates are required and
// start must not be after end.
func (t *Task) Validate() error {
	if t.Start == nil || t.End == nil {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	return ValidateRange(*t.Start, *t.End)
}

// PositionedTask is a task with its computed lane. It is derived on every
// layout pass and never persisted.
type PositionedTask struct {
	Task
	Level int
}
