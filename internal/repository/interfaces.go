package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
)

// ErrNotFound is returned by Get lookups for missing rows.
var ErrNotFound = domain.ErrNotFound

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	UpdateDates(ctx context.Context, id string, r domain.DateRange) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateDates(ctx context.Context, id string, r domain.DateRange) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}

type WorkerRepo interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
	Update(ctx context.Context, w *domain.Worker) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepo stores one list of assignments per worker/day cell.
type AssignmentRepo interface {
	Put(ctx context.Context, key domain.CellKey, entries []domain.Assignment) error
	Get(ctx context.Context, key domain.CellKey) ([]domain.Assignment, error)
	List(ctx context.Context) (map[string][]domain.Assignment, error)
	ListRange(ctx context.Context, from, to time.Time) (map[string][]domain.Assignment, error)
	Delete(ctx context.Context, key domain.CellKey) error
	DeleteByWorker(ctx context.Context, workerID string) (int, error)
}
