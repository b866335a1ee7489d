package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/google/uuid"
)

type workerService struct {
	workers  repository.WorkerRepo
	uow      db.UnitOfWork
	feed     *Feed
	observer UseCaseObserver
}

func NewWorkerService(workers repository.WorkerRepo, uow db.UnitOfWork, feed *Feed, observers ...UseCaseObserver) WorkerService {
	return &workerService{
		workers:  workers,
		uow:      uow,
		feed:     feed,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Save creates or updates a worker. New workers are ranked last; updates
// never change the rank.
func (s *workerService) Save(ctx context.Context, w *domain.Worker) (err error) {
	defer observe(ctx, s.observer, "save-worker", map[string]any{"worker": w.Name})(&err)

	if w.Name == "" {
		return fmt.Errorf("worker name is required")
	}
	if w.ID != "" {
		if err = s.workers.Update(ctx, w); err != nil {
			return err
		}
		s.feed.put(CollectionWorkers, w.ID)
		return nil
	}

	w.ID = uuid.New().String()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkers := repository.NewSQLiteWorkerRepo(tx)
		if w.Order == nil {
			existing, err := txWorkers.List(ctx)
			if err != nil {
				return err
			}
			n := len(existing)
			w.Order = &n
		}
		return txWorkers.Create(ctx, w)
	})
	if err != nil {
		w.ID = ""
		return err
	}
	s.feed.put(CollectionWorkers, w.ID)
	return nil
}

func (s *workerService) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	return s.workers.GetByID(ctx, id)
}

func (s *workerService) List(ctx context.Context) ([]*domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortWorkers(workers)
	return workers, nil
}

// Delete removes a worker together with every cell assigned to them.
func (s *workerService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "delete-worker", fields)(&err)

	var cells []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		all, err := txAssignments.List(ctx)
		if err != nil {
			return err
		}
		for key := range all {
			if k, err := domain.ParseCellKey(key); err == nil && k.WorkerID == id {
				cells = append(cells, key)
			}
		}
		if _, err := txAssignments.DeleteByWorker(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteWorkerRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	fields["cells"] = len(cells)
	s.feed.remove(CollectionWorkers, id)
	s.feed.remove(CollectionAssignments, cells...)
	return nil
}

func (s *workerService) Reorder(ctx context.Context, ids []string) (err error) {
	defer observe(ctx, s.observer, "reorder-workers", map[string]any{"count": len(ids)})(&err)

	if err = checkUnique(ids); err != nil {
		return err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkers := repository.NewSQLiteWorkerRepo(tx)
		for i, id := range ids {
			if err := txWorkers.UpdateOrder(ctx, id, i); err != nil {
				return fmt.Errorf("ranking worker %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.feed.put(CollectionWorkers, ids...)
	return nil
}
