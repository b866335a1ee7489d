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

// ErrUnknownCollection is returned for collection names the store lacks.
var ErrUnknownCollection = errors.New("unknown collection")

// Record is one document's fields keyed by their stored names.
type Record map[string]any

// DocumentStore is the collection-keyed view of the board store: whole
// collection reads, merge writes by ID, deletes and change subscriptions.
type DocumentStore interface {
	Get(ctx context.Context, c Collection) (map[string]Record, error)
	Put(ctx context.Context, c Collection, id string, fields Record) error
	Delete(ctx context.Context, c Collection, id string) error
	Subscribe(c Collection, fn func(Change)) (unsubscribe func())
}

type documentStore struct {
	db   db.DBTX
	uow  db.UnitOfWork
	feed *Feed
}

func NewDocumentStore(conn db.DBTX, uow db.UnitOfWork, feed *Feed) DocumentStore {
	return &documentStore{db: conn, uow: uow, feed: feed}
}

func (s *documentStore) Subscribe(c Collection, fn func(Change)) func() {
	return s.feed.Subscribe(c, fn)
}

func (s *documentStore) Get(ctx context.Context, c Collection) (map[string]Record, error) {
	out := make(map[string]Record)
	switch c {
	case CollectionProjects:
		projects, err := repository.NewSQLiteProjectRepo(s.db).List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			out[p.ID] = projectRecord(p)
		}
	case CollectionTasks:
		tasks, err := repository.NewSQLiteTaskRepo(s.db).List(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			out[t.ID] = Record{
				"projectId": t.ProjectID,
				"text":      t.Text,
				"start":     domain.FormatOptionalDate(t.Start),
				"end":       domain.FormatOptionalDate(t.End),
				"color":     t.Color,
			}
		}
	case CollectionWorkers:
		workers, err := repository.NewSQLiteWorkerRepo(s.db).List(ctx)
		if err != nil {
			return nil, err
		}
		for _, w := range workers {
			out[w.ID] = Record{
				"name":      w.Name,
				"nameKana":  w.NameKana,
				"birthDate": domain.FormatOptionalDate(w.BirthDate),
				"order":     orderValue(w.Order),
			}
		}
	case CollectionAssignments:
		cells, err := repository.NewSQLiteAssignmentRepo(s.db).List(ctx)
		if err != nil {
			return nil, err
		}
		for key, entries := range cells {
			out[key] = Record{"assignments": entries}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return out, nil
}

func projectRecord(p *domain.Project) Record {
	return Record{
		"name":        p.Name,
		"color":       p.Color,
		"borderColor": p.BorderColor,
		"startDate":   domain.FormatOptionalDate(p.StartDate),
		"endDate":     domain.FormatOptionalDate(p.EndDate),
		"order":       orderValue(p.Order),
	}
}

func orderValue(o *int) any {
	if o == nil {
		return nil
	}
	return *o
}

// Put merges fields into the document with id, creating it when missing.
// Only the fields present are changed.
func (s *documentStore) Put(ctx context.Context, c Collection, id string, fields Record) error {
	if id == "" {
		return fmt.Errorf("document id is required")
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		switch c {
		case CollectionProjects:
			return putProject(ctx, repository.NewSQLiteProjectRepo(tx), id, fields)
		case CollectionTasks:
			return putTask(ctx, repository.NewSQLiteTaskRepo(tx), id, fields)
		case CollectionWorkers:
			return putWorker(ctx, repository.NewSQLiteWorkerRepo(tx), id, fields)
		case CollectionAssignments:
			return putCell(ctx, repository.NewSQLiteAssignmentRepo(tx), id, fields)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
		}
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", c, id, err)
	}
	s.feed.put(c, id)
	return nil
}

// Delete removes one document. A project takes its tasks with it and a
// worker its assignment cells; subscribers hear about those removals too.
func (s *documentStore) Delete(ctx context.Context, c Collection, id string) error {
	var cascaded []string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		switch c {
		case CollectionProjects:
			tasks := repository.NewSQLiteTaskRepo(tx)
			children, err := tasks.ListByProject(ctx, id)
			if err != nil {
				return err
			}
			for _, t := range children {
				cascaded = append(cascaded, t.ID)
			}
			if _, err := tasks.DeleteByProject(ctx, id); err != nil {
				return err
			}
			return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
		case CollectionTasks:
			return repository.NewSQLiteTaskRepo(tx).Delete(ctx, id)
		case CollectionWorkers:
			assignments := repository.NewSQLiteAssignmentRepo(tx)
			all, err := assignments.List(ctx)
			if err != nil {
				return err
			}
			for key := range all {
				if k, err := domain.ParseCellKey(key); err == nil && k.WorkerID == id {
					cascaded = append(cascaded, key)
				}
			}
			if _, err := assignments.DeleteByWorker(ctx, id); err != nil {
				return err
			}
			return repository.NewSQLiteWorkerRepo(tx).Delete(ctx, id)
		case CollectionAssignments:
			key, err := domain.ParseCellKey(id)
			if err != nil {
				return err
			}
			return repository.NewSQLiteAssignmentRepo(tx).Delete(ctx, key)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
		}
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", c, id, err)
	}
	s.feed.remove(c, id)
	switch {
	case len(cascaded) == 0:
	case c == CollectionProjects:
		s.feed.remove(CollectionTasks, cascaded...)
	case c == CollectionWorkers:
		s.feed.remove(CollectionAssignments, cascaded...)
	}
	return nil
}

func putProject(ctx context.Context, repo *repository.SQLiteProjectRepo, id string, f Record) error {
	p, err := repo.GetByID(ctx, id)
	create := errors.Is(err, repository.ErrNotFound)
	if err != nil && !create {
		return err
	}
	if create {
		p = &domain.Project{ID: id, CreatedAt: nowUTC()}
	}
	if err := mergeFields(f, map[string]func(any) error{
		"name":        stringField(&p.Name),
		"color":       stringField(&p.Color),
		"borderColor": stringField(&p.BorderColor),
		"startDate":   dateField(&p.StartDate),
		"endDate":     dateField(&p.EndDate),
		"order":       intField(&p.Order),
	}); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = nowUTC()
	if create {
		return repo.Create(ctx, p)
	}
	return repo.Update(ctx, p)
}

func putTask(ctx context.Context, repo *repository.SQLiteTaskRepo, id string, f Record) error {
	t, err := repo.GetByID(ctx, id)
	create := errors.Is(err, repository.ErrNotFound)
	if err != nil && !create {
		return err
	}
	if create {
		t = &domain.Task{ID: id}
	}
	if err := mergeFields(f, map[string]func(any) error{
		"projectId": stringField(&t.ProjectID),
		"text":      stringField(&t.Text),
		"start":     dateField(&t.Start),
		"end":       dateField(&t.End),
		"color":     stringField(&t.Color),
	}); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if create {
		return repo.Create(ctx, t)
	}
	return repo.Update(ctx, t)
}

func putWorker(ctx context.Context, repo *repository.SQLiteWorkerRepo, id string, f Record) error {
	w, err := repo.GetByID(ctx, id)
	create := errors.Is(err, repository.ErrNotFound)
	if err != nil && !create {
		return err
	}
	if create {
		w = &domain.Worker{ID: id}
	}
	before := w.Order
	if err := mergeFields(f, map[string]func(any) error{
		"name":      stringField(&w.Name),
		"nameKana":  stringField(&w.NameKana),
		"birthDate": dateField(&w.BirthDate),
		"order":     intField(&w.Order),
	}); err != nil {
		return err
	}
	if create {
		return repo.Create(ctx, w)
	}
	if err := repo.Update(ctx, w); err != nil {
		return err
	}
	if w.Order != nil && (before == nil || *before != *w.Order) {
		return repo.UpdateOrder(ctx, id, *w.Order)
	}
	return nil
}

func putCell(ctx context.Context, repo *repository.SQLiteAssignmentRepo, id string, f Record) error {
	key, err := domain.ParseCellKey(id)
	if err != nil {
		return err
	}
	raw, ok := f["assignments"]
	if !ok {
		return nil
	}
	var entries []domain.Assignment
	switch v := raw.(type) {
	case []domain.Assignment:
		entries = v
	case nil:
	default:
		return fmt.Errorf("assignments: unsupported value %T", raw)
	}
	if err := validateEntries(entries); err != nil {
		return err
	}
	return repo.Put(ctx, key, entries)
}

func mergeFields(f Record, setters map[string]func(any) error) error {
	for name, v := range f {
		set, ok := setters[name]
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		if err := set(v); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}
	return nil
}

func stringField(dst *string) func(any) error {
	return func(v any) error {
		switch s := v.(type) {
		case string:
			*dst = s
		case nil:
			*dst = ""
		default:
			return fmt.Errorf("want string, got %T", v)
		}
		return nil
	}
}

func dateField(dst **time.Time) func(any) error {
	return func(v any) error {
		switch d := v.(type) {
		case string:
			t, err := domain.ParseOptionalDate(d)
			if err != nil {
				return err
			}
			*dst = t
		case time.Time:
			day := domain.Day(d)
			*dst = &day
		case nil:
			*dst = nil
		default:
			return fmt.Errorf("want date, got %T", v)
		}
		return nil
	}
}

func intField(dst **int) func(any) error {
	return func(v any) error {
		switch n := v.(type) {
		case int:
			*dst = &n
		case float64:
			i := int(n)
			*dst = &i
		case nil:
			*dst = nil
		default:
			return fmt.Errorf("want number, got %T", v)
		}
		return nil
	}
}
