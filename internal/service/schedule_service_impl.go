package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/alexanderramin/genba/internal/timeline"
)

type scheduleService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	feed     *Feed
	observer UseCaseObserver
}

func NewScheduleService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	feed *Feed,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		projects: projects,
		tasks:    tasks,
		uow:      uow,
		feed:     feed,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ApplyDateChanges writes a drag commit as one transaction.
func (s *scheduleService) ApplyDateChanges(ctx context.Context, changes []timeline.DateChange) (err error) {
	defer observe(ctx, s.observer, "apply-date-changes", map[string]any{"changes": len(changes)})(&err)

	for _, c := range changes {
		if !c.Range.Valid() {
			return fmt.Errorf("%s %s: %w", c.Kind, c.ID, domain.ErrInvalidRange)
		}
	}

	var projectIDs, taskIDs []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for _, c := range changes {
			switch c.Kind {
			case timeline.KindProject:
				if err := txProjects.UpdateDates(ctx, c.ID, c.Range); err != nil {
					return err
				}
				projectIDs = append(projectIDs, c.ID)
			case timeline.KindTask:
				if err := txTasks.UpdateDates(ctx, c.ID, c.Range); err != nil {
					return err
				}
				taskIDs = append(taskIDs, c.ID)
			default:
				return fmt.Errorf("unknown item kind %q", c.Kind)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.feed.put(CollectionProjects, projectIDs...)
	s.feed.put(CollectionTasks, taskIDs...)
	return nil
}

// Reschedule applies a handle and whole-day offset to a stored bar with the
// same date math as a pointer drag, children included for a project move.
// An offset of zero writes nothing.
func (s *scheduleService) Reschedule(ctx context.Context, kind timeline.ItemKind, id string, handle timeline.Handle, offset int) ([]timeline.DateChange, error) {
	if _, err := timeline.ParseHandle(string(handle)); err != nil {
		return nil, err
	}

	var drag timeline.DragState
	switch kind {
	case timeline.KindProject:
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r, ok := p.Range()
		if !ok {
			return nil, timeline.ErrUnschedulable
		}
		drag = timeline.DragState{Item: timeline.Item{Kind: kind, ID: id, Range: r}, Handle: handle, Original: r}
		if handle == timeline.HandleMove {
			children, err := s.tasks.ListByProject(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, t := range children {
				if cr, ok := t.Range(); ok {
					drag.Children = append(drag.Children, timeline.ChildBaseline{ID: t.ID, Original: cr})
				}
			}
		}
	case timeline.KindTask:
		t, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r, ok := t.Range()
		if !ok {
			return nil, timeline.ErrUnschedulable
		}
		drag = timeline.DragState{Item: timeline.Item{Kind: kind, ID: id, Range: r}, Handle: handle, Original: r}
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	changes := timeline.Changes(drag, offset)
	if offset == 0 {
		return changes, nil
	}
	if err := s.ApplyDateChanges(ctx, changes); err != nil {
		return nil, err
	}
	return changes, nil
}
