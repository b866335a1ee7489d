package testutil

import (
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/google/uuid"
)

// Date parses a YYYY-MM-DD literal and panics on bad input.
func Date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DatePtr is Date returning a pointer.
func DatePtr(s string) *time.Time {
	d := Date(s)
	return &d
}

// Project options
type ProjectOption func(*domain.Project)

func WithSchedule(start, end string) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = DatePtr(start)
		p.EndDate = DatePtr(end)
	}
}

func WithColor(c domain.ColorOption) ProjectOption {
	return func(p *domain.Project) {
		p.Color = c.Color
		p.BorderColor = c.BorderColor
	}
}

func WithOrder(n int) ProjectOption {
	return func(p *domain.Project) {
		p.Order = &n
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Color:       domain.ColorOptions[0].Color,
		BorderColor: domain.ColorOptions[0].BorderColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskColor(c string) TaskOption {
	return func(t *domain.Task) {
		t.Color = c
	}
}

// Unscheduled clears both task dates.
func Unscheduled() TaskOption {
	return func(t *domain.Task) {
		t.Start, t.End = nil, nil
	}
}

func NewTestTask(projectID, text, start, end string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Text:      text,
		Start:     DatePtr(start),
		End:       DatePtr(end),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Worker options
type WorkerOption func(*domain.Worker)

func WithKana(k string) WorkerOption {
	return func(w *domain.Worker) {
		w.NameKana = k
	}
}

func WithBirthDate(d string) WorkerOption {
	return func(w *domain.Worker) {
		w.BirthDate = DatePtr(d)
	}
}

func WithWorkerOrder(n int) WorkerOption {
	return func(w *domain.Worker) {
		w.Order = &n
	}
}

func NewTestWorker(name string, opts ...WorkerOption) *domain.Worker {
	w := &domain.Worker{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}
