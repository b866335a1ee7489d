package service

import (
	"context"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/importer"
	"github.com/alexanderramin/genba/internal/timeline"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type TaskService interface {
	Save(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type WorkerService interface {
	Save(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type AssignmentService interface {
	Set(ctx context.Context, key domain.CellKey, entries []domain.Assignment) error
	Get(ctx context.Context, key domain.CellKey) ([]domain.Assignment, error)
	ListRange(ctx context.Context, from, to time.Time) (map[string][]domain.Assignment, error)
	Clear(ctx context.Context, key domain.CellKey) error
	Paste(ctx context.Context, entries []domain.Assignment, keys []domain.CellKey) error
}

// ScheduleService moves bars outside of a pointer drag and persists drag
// commits. It satisfies timeline.Persister.
type ScheduleService interface {
	timeline.Persister
	Reschedule(ctx context.Context, kind timeline.ItemKind, id string, handle timeline.Handle, offset int) ([]timeline.DateChange, error)
}

type BoardService interface {
	Snapshot(ctx context.Context, w Window) (*Board, error)
}

// ImportResult holds the outcome of a site import.
type ImportResult struct {
	ProjectCount    int
	TaskCount       int
	WorkerCount     int
	AssignmentCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.SiteSchema) (*ImportResult, error)
}
