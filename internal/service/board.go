package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/layout"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/alexanderramin/genba/internal/timeline"
)

// Board is an in-memory snapshot of everything one window shows. It feeds
// the timeline editor (child tasks) and receives its local date changes.
// It is owned by a single event loop and is not safe for concurrent use.
type Board struct {
	Window      Window
	Projects    []*domain.Project
	Tasks       map[string][]domain.Task
	Workers     []*domain.Worker
	Assignments map[string][]domain.Assignment
	Layout      map[string]layout.Result
}

var (
	_ timeline.Source     = (*Board)(nil)
	_ timeline.LocalState = (*Board)(nil)
)

// ChildTasks returns a copy of the project's tasks.
func (b *Board) ChildTasks(projectID string) []domain.Task {
	return append([]domain.Task(nil), b.Tasks[projectID]...)
}

// ApplyLocal overwrites dates in the snapshot and in the current layout.
// Every task keeps its lane until Relayout.
func (b *Board) ApplyLocal(changes []timeline.DateChange) {
	for _, c := range changes {
		switch c.Kind {
		case timeline.KindProject:
			if p, ok := b.Project(c.ID); ok {
				s, e := c.Range.Start, c.Range.End
				p.StartDate, p.EndDate = &s, &e
			}
		case timeline.KindTask:
			for pid, tasks := range b.Tasks {
				for i := range tasks {
					if tasks[i].ID == c.ID {
						b.Tasks[pid][i].SetRange(c.Range)
					}
				}
				positioned := b.Layout[pid].Positioned
				for i := range positioned {
					if positioned[i].ID == c.ID {
						positioned[i].SetRange(c.Range)
					}
				}
			}
		}
	}
}

// Relayout recomputes lanes for every project from the current dates.
func (b *Board) Relayout() {
	var all []domain.Task
	for _, p := range b.Projects {
		all = append(all, b.Tasks[p.ID]...)
	}
	b.Layout = layout.ByProject(b.Projects, all)
}

func (b *Board) Project(id string) (*domain.Project, bool) {
	for _, p := range b.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ProjectNames maps project IDs to names for assignment labels.
func (b *Board) ProjectNames() map[string]string {
	names := make(map[string]string, len(b.Projects))
	for _, p := range b.Projects {
		names[p.ID] = p.Name
	}
	return names
}

// Cell returns the entries of one worker/day cell.
func (b *Board) Cell(workerID string, day time.Time) []domain.Assignment {
	return b.Assignments[domain.CellKey{WorkerID: workerID, Date: day}.String()]
}

// Filtered keeps projects whose name and workers whose name or kana
// contain term. Tasks and assignments are shared with b.
func (b *Board) Filtered(term string) *Board {
	out := *b
	out.Projects = nil
	for _, p := range b.Projects {
		if matchesTerm(term, p.Name) {
			out.Projects = append(out.Projects, p)
		}
	}
	out.Workers = nil
	for _, w := range b.Workers {
		if matchesTerm(term, w.Name, w.NameKana) {
			out.Workers = append(out.Workers, w)
		}
	}
	return &out
}

type boardService struct {
	projects    repository.ProjectRepo
	tasks       repository.TaskRepo
	workers     repository.WorkerRepo
	assignments repository.AssignmentRepo
	observer    UseCaseObserver
}

func NewBoardService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	workers repository.WorkerRepo,
	assignments repository.AssignmentRepo,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		projects:    projects,
		tasks:       tasks,
		workers:     workers,
		assignments: assignments,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Snapshot loads the board for w and lays out every project's tasks.
func (s *boardService) Snapshot(ctx context.Context, w Window) (board *Board, err error) {
	fields := map[string]any{"from": domain.FormatDate(w.Start), "days": w.Days}
	defer observe(ctx, s.observer, "board-snapshot", fields)(&err)

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	domain.SortProjects(projects)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	byProject := make(map[string][]domain.Task)
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], *t)
	}

	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading workers: %w", err)
	}
	domain.SortWorkers(workers)

	cells, err := s.assignments.ListRange(ctx, w.Start, w.End())
	if err != nil {
		return nil, fmt.Errorf("loading assignments: %w", err)
	}

	board = &Board{
		Window:      w,
		Projects:    projects,
		Tasks:       byProject,
		Workers:     workers,
		Assignments: cells,
	}
	board.Relayout()
	fields["projects"] = len(projects)
	fields["tasks"] = len(tasks)
	return board, nil
}
