package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	projects repository.ProjectRepo
	feed     *Feed
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo, feed *Feed, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		feed:     feed,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Save creates the task when it has no ID yet and updates it otherwise.
// Both dates are required and start must not be after end; an invalid
// task is rejected without a write.
func (s *taskService) Save(ctx context.Context, t *domain.Task) (err error) {
	fields := map[string]any{"project": t.ProjectID}
	defer observe(ctx, s.observer, "save-task", fields)(&err)

	if err = t.Validate(); err != nil {
		return err
	}
	if _, err = s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return fmt.Errorf("task project: %w", err)
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
		fields["created"] = true
		err = s.tasks.Create(ctx, t)
	} else {
		err = s.tasks.Update(ctx, t)
	}
	if err != nil {
		return err
	}
	fields["id"] = t.ID
	s.feed.put(CollectionTasks, t.ID)
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-task", map[string]any{"id": id})(&err)

	if err = s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.remove(CollectionTasks, id)
	return nil
}
