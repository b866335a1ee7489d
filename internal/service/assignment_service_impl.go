package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/repository"
)

// ErrInvalidAssignment is returned for entries that cannot be stored.
var ErrInvalidAssignment = errors.New("invalid assignment")

type assignmentService struct {
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	feed        *Feed
	observer    UseCaseObserver
}

func NewAssignmentService(assignments repository.AssignmentRepo, uow db.UnitOfWork, feed *Feed, observers ...UseCaseObserver) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		uow:         uow,
		feed:        feed,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func validateEntries(entries []domain.Assignment) error {
	for i, a := range entries {
		switch v := a.(type) {
		case domain.ProjectAssignment:
			if v.ProjectID == "" {
				return fmt.Errorf("%w: entry %d has no project", ErrInvalidAssignment, i)
			}
		case domain.StatusAssignment:
			if !domain.ValidWorkerStatuses[v.Status] {
				return fmt.Errorf("%w: entry %d has unknown status %q", ErrInvalidAssignment, i, v.Status)
			}
		default:
			return fmt.Errorf("%w: entry %d has type %T", ErrInvalidAssignment, i, a)
		}
	}
	return nil
}

// Set replaces the entries of one cell.
func (s *assignmentService) Set(ctx context.Context, key domain.CellKey, entries []domain.Assignment) (err error) {
	defer observe(ctx, s.observer, "set-assignment", map[string]any{"cell": key.String(), "entries": len(entries)})(&err)

	if err = validateEntries(entries); err != nil {
		return err
	}
	if err = s.assignments.Put(ctx, key, entries); err != nil {
		return err
	}
	s.feed.put(CollectionAssignments, key.String())
	return nil
}

func (s *assignmentService) Get(ctx context.Context, key domain.CellKey) ([]domain.Assignment, error) {
	return s.assignments.Get(ctx, key)
}

func (s *assignmentService) ListRange(ctx context.Context, from, to time.Time) (map[string][]domain.Assignment, error) {
	return s.assignments.ListRange(ctx, from, to)
}

func (s *assignmentService) Clear(ctx context.Context, key domain.CellKey) (err error) {
	defer observe(ctx, s.observer, "clear-assignment", map[string]any{"cell": key.String()})(&err)

	if err = s.assignments.Delete(ctx, key); err != nil {
		return err
	}
	s.feed.remove(CollectionAssignments, key.String())
	return nil
}

// Paste writes the same entries to every key in one batch.
func (s *assignmentService) Paste(ctx context.Context, entries []domain.Assignment, keys []domain.CellKey) (err error) {
	defer observe(ctx, s.observer, "paste-assignments", map[string]any{"cells": len(keys)})(&err)

	if err = validateEntries(entries); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		for _, k := range keys {
			if err := txAssignments.Put(ctx, k, entries); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.String()
	}
	s.feed.put(CollectionAssignments, ids...)
	return nil
}

// Selection expands two corner cells into the rectangle of cells between
// them, rows ordered like workers and columns like dates. The result is
// empty when either corner names a worker or day outside the grid.
func Selection(workers []*domain.Worker, dates []time.Time, start, end domain.CellKey) []domain.CellKey {
	wi := func(id string) int {
		for i, w := range workers {
			if w.ID == id {
				return i
			}
		}
		return -1
	}
	di := func(d time.Time) int {
		day := domain.FormatDate(d)
		for i, x := range dates {
			if domain.FormatDate(x) == day {
				return i
			}
		}
		return -1
	}

	w0, w1 := wi(start.WorkerID), wi(end.WorkerID)
	d0, d1 := di(start.Date), di(end.Date)
	if w0 < 0 || w1 < 0 || d0 < 0 || d1 < 0 {
		return nil
	}
	w0, w1 = min(w0, w1), max(w0, w1)
	d0, d1 = min(d0, d1), max(d0, d1)

	keys := make([]domain.CellKey, 0, (w1-w0+1)*(d1-d0+1))
	for w := w0; w <= w1; w++ {
		for d := d0; d <= d1; d++ {
			keys = append(keys, domain.CellKey{WorkerID: workers[w].ID, Date: domain.Day(dates[d])})
		}
	}
	return keys
}
