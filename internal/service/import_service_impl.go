package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/importer"
	"github.com/alexanderramin/genba/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	feed     *Feed
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, feed *Feed, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, feed: feed, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadSiteSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates, converts and stores a site in one transaction.
// Imported projects and workers are ranked after the existing ones.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.SiteSchema) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-site", fields)(&err)

	if errs := importer.ValidateSiteSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	site, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting site file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txWorkers := repository.NewSQLiteWorkerRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		existingProjects, err := txProjects.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range site.Projects {
			*p.Order += len(existingProjects)
			if p.Color == "" {
				c := randomColor()
				p.Color, p.BorderColor = c.Color, c.BorderColor
			} else {
				p.BorderColor = borderFor(p.Color)
			}
			if err := txProjects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
		}
		for _, t := range site.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Text, err)
			}
		}

		existingWorkers, err := txWorkers.List(ctx)
		if err != nil {
			return err
		}
		for _, w := range site.Workers {
			*w.Order += len(existingWorkers)
			if err := txWorkers.Create(ctx, w); err != nil {
				return fmt.Errorf("creating worker %q: %w", w.Name, err)
			}
		}
		for _, c := range site.Cells {
			if err := txAssignments.Put(ctx, c.Key, c.Entries); err != nil {
				return fmt.Errorf("assigning %s: %w", c.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.feed.put(CollectionProjects, ids(site.Projects, func(p *domain.Project) string { return p.ID })...)
	s.feed.put(CollectionTasks, ids(site.Tasks, func(t *domain.Task) string { return t.ID })...)
	s.feed.put(CollectionWorkers, ids(site.Workers, func(w *domain.Worker) string { return w.ID })...)
	s.feed.put(CollectionAssignments, ids(site.Cells, func(c importer.Cell) string { return c.Key.String() })...)

	result = &ImportResult{
		ProjectCount:    len(site.Projects),
		TaskCount:       len(site.Tasks),
		WorkerCount:     len(site.Workers),
		AssignmentCount: len(site.Cells),
	}
	fields["projects"] = result.ProjectCount
	fields["tasks"] = result.TaskCount
	fields["workers"] = result.WorkerCount
	fields["cells"] = result.AssignmentCount
	return result, nil
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
