package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	feed     *Feed
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, feed *Feed, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		feed:     feed,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create stores a new project. A project without a color gets a random
// palette entry, and new projects are ranked after all existing ones.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	fields := map[string]any{"project": p.Name}
	defer observe(ctx, s.observer, "create-project", fields)(&err)

	if err = p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Color == "" {
		c := randomColor()
		p.Color, p.BorderColor = c.Color, c.BorderColor
	} else if p.BorderColor == "" {
		p.BorderColor = borderFor(p.Color)
	}
	now := nowUTC()
	p.CreatedAt, p.UpdatedAt = now, now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		if p.Order == nil {
			existing, err := txProjects.List(ctx)
			if err != nil {
				return err
			}
			n := len(existing)
			p.Order = &n
		}
		return txProjects.Create(ctx, p)
	})
	if err != nil {
		return err
	}
	fields["id"] = p.ID
	s.feed.put(CollectionProjects, p.ID)
	return nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortProjects(projects)
	return projects, nil
}

// Update is a direct edit. An inverted range is rejected before any write.
func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "update-project", map[string]any{"id": p.ID})(&err)

	if err = p.Validate(); err != nil {
		return err
	}
	if p.BorderColor == "" && p.Color != "" {
		p.BorderColor = borderFor(p.Color)
	}
	p.UpdatedAt = nowUTC()
	if err = s.projects.Update(ctx, p); err != nil {
		return err
	}
	s.feed.put(CollectionProjects, p.ID)
	return nil
}

// Delete removes a project and all of its tasks in one batch.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "delete-project", fields)(&err)

	var taskIDs []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		tasks, err := txTasks.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			taskIDs = append(taskIDs, t.ID)
		}
		if _, err := txTasks.DeleteByProject(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	fields["tasks"] = len(taskIDs)
	s.feed.remove(CollectionProjects, id)
	s.feed.remove(CollectionTasks, taskIDs...)
	return nil
}

// Reorder ranks projects by their position in ids, in one batch.
func (s *projectService) Reorder(ctx context.Context, ids []string) (err error) {
	defer observe(ctx, s.observer, "reorder-projects", map[string]any{"count": len(ids)})(&err)

	if err = checkUnique(ids); err != nil {
		return err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		for i, id := range ids {
			if err := txProjects.UpdateOrder(ctx, id, i); err != nil {
				return fmt.Errorf("ranking project %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.feed.put(CollectionProjects, ids...)
	return nil
}
